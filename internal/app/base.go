// Package app is the layer every adapter goes through. The CLI, the HTTP API
// and the MCP server stay thin: they parse input, call an app operation and
// render its Result.
package app

import (
	"fmt"
	"log/slog"

	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/store"
	"github.com/spf13/afero"
)

// Options configures Open.
type Options struct {
	Storage       config.StorageConfig
	SeedDir       string
	Clock         planner.Clock
	Suggestions   int
	HistogramDays int
}

// Context holds the shared dependencies of all app operations.
type Context struct {
	Store         store.Store
	Planner       *planner.Planner
	Suggestions   int
	HistogramDays int
	// RolledOver is set when opening flushed a stale plan into the overdue set.
	RolledOver bool
}

// Open wires storage, seeds an empty store, loads the planner and runs the
// session-start rollover.
func Open(opts Options) (*Context, error) {
	path := opts.Storage.StoragePath()
	kv, err := store.Open(store.Options{Backend: opts.Storage.Backend, Path: path, Format: opts.Storage.Format})
	if err != nil {
		return nil, fmt.Errorf("open storage at %s: %w", path, err)
	}

	seedDir := opts.SeedDir
	if seedDir == "" {
		seedDir = config.SeedConfig{}.SeedDir(path)
	}
	if _, err := store.NewSeeder(afero.NewOsFs(), seedDir).SeedIfEmpty(kv); err != nil {
		slog.Warn("seeding skipped", "dir", seedDir, "error", err)
	}

	var popts []planner.Option
	if opts.Clock != nil {
		popts = append(popts, planner.WithClock(opts.Clock))
	}
	c := NewContext(kv, planner.New(kv, popts...))
	if opts.Suggestions > 0 {
		c.Suggestions = opts.Suggestions
	}
	if opts.HistogramDays > 0 {
		c.HistogramDays = opts.HistogramDays
	}

	rolled, err := c.Planner.Rollover()
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("daily rollover: %w", err)
	}
	c.RolledOver = rolled
	if rolled {
		slog.Debug("moved unfinished plan to overdue", "overdue", len(c.Planner.OverdueIDs()))
	}
	return c, nil
}

// NewContext wraps an already opened store and planner.
func NewContext(s store.Store, p *planner.Planner) *Context {
	return &Context{
		Store:         s,
		Planner:       p,
		Suggestions:   config.DefaultSuggestions,
		HistogramDays: config.DefaultHistogramDays,
	}
}

// Close releases the store.
func (c *Context) Close() error {
	return c.Store.Close()
}
