// Package planner owns the task collections and the day plan. Every mutation
// is applied to a copy of the state, persisted as one batch, and only then
// committed, so a failed write leaves memory and storage untouched.
package planner

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/dayplan/models"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Planner is the single owner of tasks, archive, overdue set, notes and the day plan.
type Planner struct {
	mu    sync.Mutex
	kv    KV
	clock Clock
	newID func() string
	state State
}

// Option configures a Planner.
type Option func(*Planner)

// WithClock injects the clock used for timestamps, urgency and rollover.
func WithClock(c Clock) Option {
	return func(p *Planner) { p.clock = c }
}

// WithIDGenerator replaces uuid generation, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(p *Planner) { p.newID = fn }
}

// New loads the persisted state from kv. Read failures never abort: the
// affected collections start empty.
func New(kv KV, opts ...Option) *Planner {
	p := &Planner{
		kv:    kv,
		clock: SystemClock,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.state = loadState(kv)
	return p
}

// Reload re-reads the persisted state, e.g. after another process wrote it.
func (p *Planner) Reload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = loadState(p.kv)
}

// Now returns the injected clock's time.
func (p *Planner) Now() time.Time {
	return p.clock.Now()
}

func (p *Planner) today() string {
	return models.FormatDate(p.clock.Now())
}

// mutate runs fn on a copy of the state. fn reports which keys it touched;
// those are written in one batch before the copy replaces the live state.
// Callers must hold p.mu.
func (p *Planner) mutate(fn func(s *State) ([]string, error)) error {
	next := p.state.clone()
	dirty, err := fn(&next)
	if err != nil {
		return err
	}
	if len(dirty) == 0 {
		return nil
	}
	entries, err := encodeKeys(&next, dirty)
	if err != nil {
		return err
	}
	if err := p.kv.PutAll(entries); err != nil {
		return fmt.Errorf("failed to persist %s: %w", strings.Join(dirty, ", "), err)
	}
	p.state = next
	return nil
}

// State returns a deep copy of the current snapshot.
func (p *Planner) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

// Tasks returns the open set in insertion order.
func (p *Planner) Tasks() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(p.state.Tasks)
}

// Archive returns the archive in completion order.
func (p *Planner) Archive() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(p.state.Archive)
}

// OverdueIDs returns the overdue id set.
func (p *Planner) OverdueIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneIDs(p.state.OverdueIDs)
}

// Task looks up an open task.
func (p *Planner) Task(id string) (models.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := indexOfTask(p.state.Tasks, id)
	if i < 0 {
		return models.Task{}, false
	}
	return cloneTasks(p.state.Tasks[i : i+1])[0], true
}

// ArchivedTask looks up a task in the archive.
func (p *Planner) ArchivedTask(id string) (models.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := indexOfTask(p.state.Archive, id)
	if i < 0 {
		return models.Task{}, false
	}
	return cloneTasks(p.state.Archive[i : i+1])[0], true
}

func indexOfTask(tasks []models.Task, id string) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
}

func removeID(ids []string, id string) ([]string, bool) {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids, false
	}
	return slices.Delete(ids, i, i+1), true
}
