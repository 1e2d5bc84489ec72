package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMemStore(t *testing.T, format string) (*FileKV, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	kv, err := NewFileKV(fsys, "/data/plan."+format, format)
	require.NoError(t, err)
	return kv, fsys
}

func TestFileKV_RoundTripAllFormats(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			kv, _ := setupMemStore(t, format)

			_, ok, err := kv.Get(planner.KeyTasks)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.PutAll(map[string][]byte{
				planner.KeyDayPlan:     []byte(`["a","b"]`),
				planner.KeyDayPlanLock: []byte(`true`),
			}))
			require.NoError(t, kv.PutAll(map[string][]byte{
				planner.KeyDayPlan: []byte(`["b"]`),
			}))

			v, ok, err := kv.Get(planner.KeyDayPlan)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `["b"]`, string(v))

			v, ok, err = kv.Get(planner.KeyDayPlanLock)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "true", string(v))
		})
	}
}

func TestFileKV_WritesChecksumAndNoTempFiles(t *testing.T) {
	kv, fsys := setupMemStore(t, FormatJSON)
	require.NoError(t, kv.PutAll(map[string][]byte{planner.KeyNotes: []byte(`[]`)}))

	data, err := afero.ReadFile(fsys, kv.Path())
	require.NoError(t, err)
	sum, err := afero.ReadFile(fsys, kv.Path()+checksumSuffix)
	require.NoError(t, err)
	assert.Equal(t, calculateChecksum(data), string(sum))

	for _, leftover := range []string{kv.Path() + ".tmp", kv.Path() + checksumSuffix + ".tmp"} {
		exists, err := afero.Exists(fsys, leftover)
		require.NoError(t, err)
		assert.False(t, exists, leftover)
	}
}

func TestFileKV_ChecksumMismatch(t *testing.T) {
	kv, fsys := setupMemStore(t, FormatJSON)
	require.NoError(t, kv.PutAll(map[string][]byte{planner.KeyLastPlanDate: []byte(`"2025-01-01"`)}))
	require.NoError(t, afero.WriteFile(fsys, kv.Path(), []byte(`{"lastPlanDate":"\"2030-01-01\""}`), 0o644))

	_, _, err := kv.Get(planner.KeyLastPlanDate)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	// The planner falls back to defaults and its next write replaces the file.
	p := planner.New(kv)
	assert.Empty(t, p.LastPlanDate())
	_, err = p.RolloverIfNewDay(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	v, ok, err := kv.Get(planner.KeyLastPlanDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"2025-02-01"`, string(v))

	backups, err := afero.Glob(fsys, kv.Path()+".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestFileKV_MalformedDocument(t *testing.T) {
	kv, fsys := setupMemStore(t, FormatYAML)
	require.NoError(t, afero.WriteFile(fsys, kv.Path(), []byte("tasks: [unclosed"), 0o644))

	_, _, err := kv.Get(planner.KeyTasks)
	assert.Error(t, err)
}

func TestNewFileKV_Validation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, err := NewFileKV(fsys, "", FormatJSON)
	assert.Error(t, err)

	_, err = NewFileKV(fsys, "/x/plan.xml", "xml")
	assert.Error(t, err)

	kv, err := NewFileKV(fsys, "/x/plan.yml", "")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, kv.format)
}

func TestOsFileKV_WithPlanner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plan.json")
	kv, err := NewOsFileKV(path, "")
	require.NoError(t, err)

	fixed := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	p := planner.New(kv, planner.WithClock(planner.ClockFunc(func() time.Time { return fixed })))
	task, err := p.AddTask(models.TaskDraft{Title: "Persist me", Deadline: "2025-01-02"})
	require.NoError(t, err)
	require.NoError(t, p.AddToPlan(task.ID))
	require.NoError(t, p.Lock())

	again, err := NewOsFileKV(path, FormatJSON)
	require.NoError(t, err)
	reloaded := planner.New(again)
	assert.Equal(t, p.State(), reloaded.State())
}

func TestExportArchive(t *testing.T) {
	fsys := afero.NewMemMapFs()
	done := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	tasks := []models.Task{{ID: "a", Title: "A", Deadline: "2025-01-02", Done: true, CompletedAt: &done}}

	for _, name := range []string{"/out/archive.json", "/out/archive.yaml", "/out/archive.toml"} {
		require.NoError(t, ExportArchive(fsys, name, tasks))
		data, err := afero.ReadFile(fsys, name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "2025-01-02", name)
	}
}
