// Package store provides the durable key/value backends the planner persists
// through: a single-document file store and a SQLite table.
package store

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/planner"
)

// Store is a planner.KV that holds resources.
type Store interface {
	planner.KV
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	Format  string
}

// Open returns the configured backend on the OS filesystem.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		return NewOsFileKV(opts.Path, opts.Format)
	case BackendSQLite:
		return NewSQLiteKV(opts.Path)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s. Supported backends are file, sqlite", opts.Backend)
	}
}

var (
	_ Store = (*FileKV)(nil)
	_ Store = (*SQLiteKV)(nil)
)
