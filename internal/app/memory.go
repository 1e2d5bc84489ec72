package app

import (
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/store"
	"github.com/spf13/afero"
)

// NewMemoryContext builds a Context over an in-memory file store. It backs
// the adapter tests.
func NewMemoryContext(opts ...planner.Option) *Context {
	kv, err := store.NewFileKV(afero.NewMemMapFs(), "/plan.json", "json")
	if err != nil {
		// NewFileKV only fails on an unknown format.
		panic(err)
	}
	return NewContext(kv, planner.New(kv, opts...))
}
