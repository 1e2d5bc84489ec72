package store

import (
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedTasks = `[{"id":"s1","title":"Seeded","deadline":"2025-01-05"}]`

func TestSeeder_SeedsEmptyStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/seed/tasks.json", []byte(seedTasks), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/seed/archive.json", []byte(`{"tasks":[{"id":"old","title":"Old","deadline":"2024-12-01","done":true}]}`), 0o644))
	kv, err := NewFileKV(fsys, "/data/plan.json", "")
	require.NoError(t, err)

	seeded, err := NewSeeder(fsys, "/seed").SeedIfEmpty(kv)
	require.NoError(t, err)
	assert.True(t, seeded)

	p := planner.New(kv)
	require.Len(t, p.Tasks(), 1)
	assert.Equal(t, "Seeded", p.Tasks()[0].Title)
	require.Len(t, p.Archive(), 1)
	assert.Equal(t, "old", p.Archive()[0].ID)
}

func TestSeeder_SkipsWhenTasksExist(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/seed/tasks.json", []byte(seedTasks), 0o644))
	kv, err := NewFileKV(fsys, "/data/plan.json", "")
	require.NoError(t, err)
	require.NoError(t, kv.PutAll(map[string][]byte{planner.KeyTasks: []byte(`[{"id":"mine","title":"Mine","deadline":"2025-01-01"}]`)}))

	seeded, err := NewSeeder(fsys, "/seed").SeedIfEmpty(kv)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, "mine", planner.New(kv).Tasks()[0].ID)
}

func TestSeeder_MissingOrBrokenFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	kv, err := NewFileKV(fsys, "/data/plan.json", "")
	require.NoError(t, err)

	seeded, err := NewSeeder(fsys, "/nowhere").SeedIfEmpty(kv)
	require.NoError(t, err)
	assert.False(t, seeded)

	require.NoError(t, afero.WriteFile(fsys, "/seed/tasks.json", []byte(`[{broken`), 0o644))
	seeded, err = NewSeeder(fsys, "/seed").SeedIfEmpty(kv)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Empty(t, planner.New(kv).Tasks())
}

func TestSeeder_DoesNotReseedAfterAllTasksCompleted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/seed/tasks.json", []byte(seedTasks), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/seed/archive.json", []byte(`[]`), 0o644))
	kv, err := NewFileKV(fsys, "/data/plan.json", "")
	require.NoError(t, err)
	seeder := NewSeeder(fsys, "/seed")

	seeded, err := seeder.SeedIfEmpty(kv)
	require.NoError(t, err)
	require.True(t, seeded)

	p := planner.New(kv)
	_, err = p.CompleteTask("s1")
	require.NoError(t, err)
	require.Empty(t, p.Tasks())

	seeded, err = seeder.SeedIfEmpty(kv)
	require.NoError(t, err)
	assert.False(t, seeded)

	reopened := planner.New(kv)
	assert.Empty(t, reopened.Tasks())
	require.Len(t, reopened.Archive(), 1)
	assert.Equal(t, "s1", reopened.Archive()[0].ID)
	assert.True(t, reopened.Archive()[0].Done)
}

func TestSeeder_SkipsStoreWithOnlyArchive(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/seed/tasks.json", []byte(seedTasks), 0o644))
	kv, err := NewFileKV(fsys, "/data/plan.json", "")
	require.NoError(t, err)
	require.NoError(t, kv.PutAll(map[string][]byte{
		planner.KeyTasks:   []byte(`[]`),
		planner.KeyArchive: []byte(`[{"id":"mine","title":"Mine","deadline":"2025-01-01","done":true}]`),
	}))

	seeded, err := NewSeeder(fsys, "/seed").SeedIfEmpty(kv)
	require.NoError(t, err)
	assert.False(t, seeded)
	p := planner.New(kv)
	assert.Empty(t, p.Tasks())
	assert.Equal(t, "mine", p.Archive()[0].ID)
}

func TestSeeder_KeepsUrgencyOverride(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := `[{"id":"s1","title":"Pinned","deadline":"2099-01-01","urgencyOverride":"urgent"}]`
	require.NoError(t, afero.WriteFile(fsys, "/seed/tasks.json", []byte(doc), 0o644))
	kv, err := NewFileKV(fsys, "/data/plan.json", "")
	require.NoError(t, err)

	_, err = NewSeeder(fsys, "/seed").SeedIfEmpty(kv)
	require.NoError(t, err)

	clock := planner.ClockFunc(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) })
	p := planner.New(kv, planner.WithClock(clock))
	require.Len(t, p.Tasks(), 1)
	task := p.Tasks()[0]
	assert.Equal(t, models.TierUrgent, task.UrgencyOverride)
	assert.Equal(t, models.TierUrgent, p.Classify(task))
}
