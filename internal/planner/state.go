package planner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/josephgoksu/dayplan/models"
)

// Persisted keys.
const (
	KeyTasks        = "tasks"
	KeyArchive      = "archive"
	KeyOverdueIDs   = "overdueIds"
	KeyDayPlan      = "dayPlan"
	KeyDayPlanLock  = "dayPlanLocked"
	KeyLastPlanDate = "lastPlanDate"
	KeyNotes        = "notes"
)

// Keys lists every persisted key in load order.
var Keys = []string{KeyTasks, KeyArchive, KeyOverdueIDs, KeyDayPlan, KeyDayPlanLock, KeyLastPlanDate, KeyNotes}

// KV is the durable key/value port. PutAll must write every entry or none.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	PutAll(entries map[string][]byte) error
}

// State is a full snapshot of the planner's collections.
type State struct {
	Tasks        []models.Task `json:"tasks"`
	Archive      []models.Task `json:"archive"`
	OverdueIDs   []string      `json:"overdueIds"`
	DayPlan      []string      `json:"dayPlan"`
	Locked       bool          `json:"dayPlanLocked"`
	LastPlanDate string        `json:"lastPlanDate,omitempty"`
	Notes        []models.Note `json:"notes"`
}

func (s State) clone() State {
	return State{
		Tasks:        cloneTasks(s.Tasks),
		Archive:      cloneTasks(s.Archive),
		OverdueIDs:   cloneIDs(s.OverdueIDs),
		DayPlan:      cloneIDs(s.DayPlan),
		Locked:       s.Locked,
		LastPlanDate: s.LastPlanDate,
		Notes:        cloneNotes(s.Notes),
	}
}

func cloneTasks(in []models.Task) []models.Task {
	out := make([]models.Task, len(in))
	for i, t := range in {
		if t.CompletedAt != nil {
			c := *t.CompletedAt
			t.CompletedAt = &c
		}
		out[i] = t
	}
	return out
}

func cloneIDs(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

func cloneNotes(in []models.Note) []models.Note {
	if in == nil {
		return []models.Note{}
	}
	return slices.Clone(in)
}

func (s *State) field(key string) any {
	switch key {
	case KeyTasks:
		return &s.Tasks
	case KeyArchive:
		return &s.Archive
	case KeyOverdueIDs:
		return &s.OverdueIDs
	case KeyDayPlan:
		return &s.DayPlan
	case KeyDayPlanLock:
		return &s.Locked
	case KeyLastPlanDate:
		return &s.LastPlanDate
	case KeyNotes:
		return &s.Notes
	}
	return nil
}

// loadState reads every key. Missing, unreadable or malformed values fall
// back to their zero collection; a bad key never spoils the others.
func loadState(kv KV) State {
	var s State
	for _, key := range Keys {
		raw, ok, err := kv.Get(key)
		if err != nil {
			slog.Warn("failed to read persisted key, using default", "key", key, "error", err)
			continue
		}
		if !ok || len(raw) == 0 {
			continue
		}
		if err := json.Unmarshal(raw, s.field(key)); err != nil {
			slog.Warn("failed to parse persisted key, using default", "key", key, "error", err)
			// Unmarshal may have partially filled the target.
			reset := State{}
			s.setFrom(&reset, key)
		}
	}
	s.normalize()
	return s
}

func (s *State) setFrom(o *State, key string) {
	switch key {
	case KeyTasks:
		s.Tasks = o.Tasks
	case KeyArchive:
		s.Archive = o.Archive
	case KeyOverdueIDs:
		s.OverdueIDs = o.OverdueIDs
	case KeyDayPlan:
		s.DayPlan = o.DayPlan
	case KeyDayPlanLock:
		s.Locked = o.Locked
	case KeyLastPlanDate:
		s.LastPlanDate = o.LastPlanDate
	case KeyNotes:
		s.Notes = o.Notes
	}
}

// normalize replaces nil collections and collapses duplicate ids.
func (s *State) normalize() {
	if s.Tasks == nil {
		s.Tasks = []models.Task{}
	}
	if s.Archive == nil {
		s.Archive = []models.Task{}
	}
	if s.Notes == nil {
		s.Notes = []models.Note{}
	}
	s.OverdueIDs = uniqueIDs(s.OverdueIDs)
	s.DayPlan = uniqueIDs(s.DayPlan)
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func encodeKeys(s *State, keys []string) (map[string][]byte, error) {
	entries := make(map[string][]byte, len(keys))
	for _, key := range keys {
		v := s.field(key)
		if v == nil {
			return nil, fmt.Errorf("unknown key %q", key)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = data
	}
	return entries, nil
}
