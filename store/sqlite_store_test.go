package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKV_GetPut(t *testing.T) {
	kv, err := NewSQLiteKV(":memory:")
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(planner.KeyNotes)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.PutAll(map[string][]byte{
		planner.KeyNotes:   []byte(`[]`),
		planner.KeyDayPlan: []byte(`["x"]`),
	}))
	require.NoError(t, kv.PutAll(map[string][]byte{planner.KeyDayPlan: []byte(`[]`)}))

	v, ok, err := kv.Get(planner.KeyDayPlan)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))
}

func TestSQLiteKV_MatchesFileBackend(t *testing.T) {
	dir := t.TempDir()
	sqliteKV, err := NewSQLiteKV(filepath.Join(dir, "db", "plan.db"))
	require.NoError(t, err)
	defer sqliteKV.Close()
	fileKV, err := NewOsFileKV(filepath.Join(dir, "plan.json"), FormatJSON)
	require.NoError(t, err)

	fixed := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	run := func(kv planner.KV) planner.State {
		seq := 0
		p := planner.New(kv,
			planner.WithClock(planner.ClockFunc(func() time.Time { return fixed })),
			planner.WithIDGenerator(func() string { seq++; return string(rune('a' + seq)) }),
		)
		a, err := p.AddTask(models.TaskDraft{Title: "A", Deadline: "2025-01-02"})
		require.NoError(t, err)
		b, err := p.AddTask(models.TaskDraft{Title: "B", Deadline: "2025-01-03"})
		require.NoError(t, err)
		require.NoError(t, p.AddToPlan(a.ID))
		require.NoError(t, p.AddToPlan(b.ID))
		_, err = p.CompleteTask(a.ID)
		require.NoError(t, err)
		_, err = p.AddNote("n", "", "")
		require.NoError(t, err)
		return planner.New(kv).State()
	}

	assert.Equal(t, run(fileKV), run(sqliteKV))
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Backend: "sqlite", Path: filepath.Join(dir, "plan.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, s)
	require.NoError(t, s.Close())

	s, err = Open(Options{Path: filepath.Join(dir, "plan.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, s)

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)
}
