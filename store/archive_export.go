package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// ExportArchive writes tasks as a {"tasks": [...]} document. The format
// follows the file extension (.json, .yaml/.yml, .toml).
func ExportArchive(fsys afero.Fs, path string, tasks []models.Task) error {
	list := models.TaskList{Tasks: tasks}
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}

	var data []byte
	var err error
	switch formatFromExt(path) {
	case FormatYAML:
		data, err = yaml.Marshal(list)
	case FormatTOML:
		buf := new(bytes.Buffer)
		err = toml.NewEncoder(buf).Encode(list)
		data = buf.Bytes()
	default:
		data, err = json.MarshalIndent(list, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive export %s: %w", path, err)
	}
	return nil
}
