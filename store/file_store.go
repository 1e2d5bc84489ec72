package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTOML     = "toml"
	checksumSuffix = ".checksum"
	lockSuffix     = ".lock"
)

// ErrChecksumMismatch means the data file does not match its checksum sidecar.
var ErrChecksumMismatch = errors.New("checksum mismatch")

type locker interface {
	Lock() error
	Unlock() error
}

// mutexLocker serializes access when the filesystem cannot hold an OS lock.
type mutexLocker struct{ mu sync.Mutex }

func (m *mutexLocker) Lock() error   { m.mu.Lock(); return nil }
func (m *mutexLocker) Unlock() error { m.mu.Unlock(); return nil }

// FileKV keeps every key in one document. Values are stored as JSON text, the
// document itself is JSON, YAML or TOML. Writes go to a temp file plus
// checksum and are renamed into place.
type FileKV struct {
	fs       afero.Fs
	filePath string
	format   string
	lk       locker
}

// NewOsFileKV opens a file store on disk, guarded by an OS file lock so the
// CLI and a running server can share it.
func NewOsFileKV(path, format string) (*FileKV, error) {
	kv, err := NewFileKV(afero.NewOsFs(), path, format)
	if err != nil {
		return nil, err
	}
	kv.lk = flock.New(kv.filePath + lockSuffix)
	return kv, nil
}

// NewFileKV opens a file store on any afero filesystem.
func NewFileKV(fsys afero.Fs, path, format string) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}
	if format == "" {
		format = formatFromExt(path)
	}
	format = strings.ToLower(format)
	switch format {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return nil, fmt.Errorf("unsupported data format: %s. Supported formats are json, yaml, toml", format)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &FileKV{fs: fsys, filePath: path, format: format, lk: &mutexLocker{}}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// Path is the data file location.
func (s *FileKV) Path() string { return s.filePath }

// Get returns the value stored under key.
func (s *FileKV) Get(key string) ([]byte, bool, error) {
	if err := s.lk.Lock(); err != nil {
		return nil, false, fmt.Errorf("could not lock %s for read: %w", s.filePath, err)
	}
	defer func() { _ = s.lk.Unlock() }()

	doc, err := s.readDoc()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// PutAll merges entries into the document and replaces the file in one step.
// A document that cannot be read is moved aside and replaced.
func (s *FileKV) PutAll(entries map[string][]byte) error {
	if err := s.lk.Lock(); err != nil {
		return fmt.Errorf("could not lock %s for write: %w", s.filePath, err)
	}
	defer func() { _ = s.lk.Unlock() }()

	doc, err := s.readDoc()
	if err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", s.filePath, time.Now().Unix())
		slog.Warn("unreadable data file moved aside", "path", s.filePath, "backup", backup, "error", err)
		if renameErr := s.fs.Rename(s.filePath, backup); renameErr != nil {
			return fmt.Errorf("failed to move unreadable data file %s: %w", s.filePath, renameErr)
		}
		_ = s.fs.Remove(s.filePath + checksumSuffix)
		doc = map[string]string{}
	}
	for k, v := range entries {
		doc[k] = string(v)
	}
	return s.writeDoc(doc)
}

// Close is a no-op; the lock is only held for the duration of a call.
func (s *FileKV) Close() error { return nil }

func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *FileKV) readDoc() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	checksumPath := s.filePath + checksumSuffix
	if expected, err := afero.ReadFile(s.fs, checksumPath); err == nil {
		if actual := calculateChecksum(data); actual != strings.TrimSpace(string(expected)) {
			return nil, fmt.Errorf("%w for %s - file is corrupt or was edited by hand", ErrChecksumMismatch, s.filePath)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumPath, err)
	}

	doc := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	switch s.format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s from %s: %w", strings.ToUpper(s.format), s.filePath, err)
	}
	return doc, nil
}

func (s *FileKV) writeDoc(doc map[string]string) error {
	var data []byte
	var err error
	switch s.format {
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	case FormatTOML:
		buf := new(bytes.Buffer)
		err = toml.NewEncoder(buf).Encode(doc)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal data to %s: %w", s.format, err)
	}

	tempPath := s.filePath + ".tmp"
	checksumPath := s.filePath + checksumSuffix
	tempChecksumPath := checksumPath + ".tmp"
	defer func() { _ = s.fs.Remove(tempPath) }()
	defer func() { _ = s.fs.Remove(tempChecksumPath) }()

	if err := afero.WriteFile(s.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempPath, err)
	}
	if err := afero.WriteFile(s.fs, tempChecksumPath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tempChecksumPath, err)
	}
	if err := s.fs.Rename(tempPath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, s.filePath, err)
	}
	if err := s.fs.Rename(tempChecksumPath, checksumPath); err != nil {
		// The data file is already replaced; drop the stale checksum so the
		// next read does not reject good data.
		_ = s.fs.Remove(checksumPath)
		slog.Warn("data file written without checksum", "path", s.filePath, "error", err)
	}
	return nil
}
