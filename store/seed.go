package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/afero"
)

const (
	SeedTasksFile   = "tasks.json"
	SeedArchiveFile = "archive.json"

	// KeySeeded marks a store that was bootstrapped, in the same batch as the
	// seed data.
	KeySeeded = "seeded"
)

// Seeder bootstraps a fresh store from read-only tasks.json and archive.json
// documents. A store that was seeded before, or that has tasks or archived
// tasks of its own, is never touched.
type Seeder struct {
	fs  afero.Fs
	dir string
}

// NewSeeder reads seed documents from dir on fsys.
func NewSeeder(fsys afero.Fs, dir string) *Seeder {
	return &Seeder{fs: fsys, dir: dir}
}

// SeedIfEmpty copies the seed documents into kv when it has never held data.
// Missing or malformed seed files are skipped.
func (s *Seeder) SeedIfEmpty(kv planner.KV) (bool, error) {
	if _, ok, err := kv.Get(KeySeeded); err != nil {
		return false, fmt.Errorf("failed to check seed marker: %w", err)
	} else if ok {
		return false, nil
	}
	for _, key := range []string{planner.KeyTasks, planner.KeyArchive} {
		has, err := hasTasks(kv, key)
		if err != nil {
			return false, err
		}
		if has {
			return false, nil
		}
	}

	entries := map[string][]byte{}
	if tasks, ok := s.load(SeedTasksFile); ok && len(tasks) > 0 {
		data, err := json.Marshal(tasks)
		if err != nil {
			return false, fmt.Errorf("failed to encode seed tasks: %w", err)
		}
		entries[planner.KeyTasks] = data
	}
	if archive, ok := s.load(SeedArchiveFile); ok {
		data, err := json.Marshal(archive)
		if err != nil {
			return false, fmt.Errorf("failed to encode seed archive: %w", err)
		}
		entries[planner.KeyArchive] = data
	}
	if len(entries) == 0 {
		return false, nil
	}
	entries[KeySeeded] = []byte("true")
	if err := kv.PutAll(entries); err != nil {
		return false, fmt.Errorf("failed to write seed data: %w", err)
	}
	slog.Debug("seeded store", "dir", s.dir, "keys", len(entries))
	return true, nil
}

// hasTasks reports whether key holds a non-empty task list.
func hasTasks(kv planner.KV, key string) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to check existing %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	var existing []models.Task
	return json.Unmarshal(raw, &existing) == nil && len(existing) > 0, nil
}

// load accepts a bare array or a {"tasks": [...]} document.
func (s *Seeder) load(name string) ([]models.Task, bool) {
	path := filepath.Join(s.dir, name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read seed file", "path", path, "error", err)
		}
		return nil, false
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var list models.TaskList
		if err := json.Unmarshal(data, &list); err != nil {
			slog.Warn("failed to parse seed file", "path", path, "error", err)
			return nil, false
		}
		return list.Tasks, true
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		slog.Warn("failed to parse seed file", "path", path, "error", err)
		return nil, false
	}
	return tasks, true
}
