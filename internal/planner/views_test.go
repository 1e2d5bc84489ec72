package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesOf(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestSuggestions_PolicyOrderAndLimit(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	for _, d := range []string{"2025-02-01", "2025-01-02", "2025-01-20", "2025-01-03"} {
		mustAdd(t, p, d, d)
	}
	assert.Equal(t, []string{"2025-01-02", "2025-01-03", "2025-01-20", "2025-02-01"}, titlesOf(p.Suggestions(0)))
	assert.Equal(t, []string{"2025-01-02", "2025-01-03"}, titlesOf(p.Suggestions(2)))

	for i := 0; i < 10; i++ {
		mustAdd(t, p, "filler", "2025-06-01")
	}
	assert.Len(t, p.Suggestions(0), DefaultSuggestions)
}

func TestFilter(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	_, err := p.AddTask(models.TaskDraft{Title: "w1", Deadline: "2025-03-01", Category: "werk", Type: "mail"})
	require.NoError(t, err)
	_, err = p.AddTask(models.TaskDraft{Title: "w2", Deadline: "2025-01-02", Category: "werk"})
	require.NoError(t, err)
	_, err = p.AddTask(models.TaskDraft{Title: "h1", Deadline: "2025-01-02", Category: "thuis", Type: "mail"})
	require.NoError(t, err)

	assert.Equal(t, []string{"w2", "w1"}, titlesOf(p.Filter(TaskFilter{Category: "werk"})))
	assert.Equal(t, []string{"h1", "w1"}, titlesOf(p.Filter(TaskFilter{Type: "mail"})))
	assert.Equal(t, []string{"w2", "h1"}, titlesOf(p.Filter(TaskFilter{Tier: models.TierUrgent})))
	assert.Equal(t, []string{"w1"}, titlesOf(p.Filter(TaskFilter{Category: "werk", Tier: models.TierSafe})))
	assert.Len(t, p.Filter(TaskFilter{}), 3)
}

func TestCategories(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	for _, c := range []string{"werk", "", "thuis", "werk", "  "} {
		_, err := p.AddTask(models.TaskDraft{Title: "t", Deadline: "2025-01-05", Category: c})
		require.NoError(t, err)
	}
	assert.Equal(t, []CategoryCount{
		{Category: UncategorizedLabel, Count: 2},
		{Category: "thuis", Count: 1},
		{Category: "werk", Count: 2},
	}, p.Categories())
}

func TestDayCellAndUrgentAlert(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	assert.False(t, p.HasUrgent())

	mustAdd(t, p, "later", "2025-01-20")
	assert.False(t, p.HasUrgent())

	_, err := p.AddTask(models.TaskDraft{Title: "b", Deadline: "2025-01-20", UrgencyOverride: models.TierUrgent})
	require.NoError(t, err)
	assert.True(t, p.HasUrgent())

	assert.Equal(t, []string{"b", "later"}, titlesOf(p.DayCell("2025-01-20")))
	assert.Empty(t, p.DayCell("2025-01-21"))
}

func TestOverdueTasks_SortedAndOpenOnly(t *testing.T) {
	kv := newMemKV()
	kv.data[KeyTasks] = []byte(`[
		{"id":"late","title":"late","deadline":"2025-03-01"},
		{"id":"soon","title":"soon","deadline":"2025-01-01"}
	]`)
	kv.data[KeyOverdueIDs] = []byte(`["late","gone","soon"]`)
	p := New(kv, WithClock(&fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}))

	assert.Equal(t, []string{"soon", "late"}, titlesOf(p.OverdueTasks()))
}

func TestArchiveNewestFirst(t *testing.T) {
	p, _, clock := newTestPlanner(t)
	a := mustAdd(t, p, "A", "2025-01-02")
	b := mustAdd(t, p, "B", "2025-01-02")
	_, err := p.CompleteTask(a.ID)
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Hour)
	_, err = p.CompleteTask(b.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, titlesOf(p.ArchiveNewestFirst()))
	assert.Equal(t, []string{"A", "B"}, titlesOf(p.Archive()))
}

func TestStats(t *testing.T) {
	p, _, clock := newTestPlanner(t)
	empty := p.Stats(0)
	assert.Zero(t, empty.Completed)
	assert.Zero(t, empty.OnTimePercent)
	assert.Zero(t, empty.AvgHours)
	assert.Len(t, empty.Histogram, DefaultHistogramDays)

	// Created 2025-01-01 09:00.
	onTime := mustAdd(t, p, "on time", "2025-01-01")
	late := mustAdd(t, p, "late", "2025-01-01")
	edge := mustAdd(t, p, "edge", "2025-01-03")

	clock.t = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) // +3h
	_, err := p.CompleteTask(onTime.ID)
	require.NoError(t, err)

	clock.t = time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC) // +24h
	_, err = p.CompleteTask(late.ID)
	require.NoError(t, err)

	clock.t = time.Date(2025, 1, 3, 23, 59, 59, 0, time.UTC) // last second of the deadline day
	_, err = p.CompleteTask(edge.ID)
	require.NoError(t, err)

	st := p.Stats(3)
	assert.Equal(t, 3, st.Completed)
	assert.Equal(t, 67, st.OnTimePercent)
	// (3 + 24 + 62.99972) / 3 = 29.99... -> 30.0
	assert.Equal(t, 30.0, st.AvgHours)
	assert.Equal(t, []DayCount{
		{Date: "2025-01-01", Count: 1},
		{Date: "2025-01-02", Count: 1},
		{Date: "2025-01-03", Count: 1},
	}, st.Histogram)
}

func TestNotes(t *testing.T) {
	p, _, clock := newTestPlanner(t)

	_, err := p.AddNote(" ", "werk", "")
	assert.ErrorIs(t, err, ErrValidation)

	titled, err := p.AddNote("Bel Piet", "werk", "over de offerte")
	require.NoError(t, err)
	assert.Equal(t, clock.t, titled.CreatedAt)

	long := strings.Repeat("é", 70)
	untitled, err := p.AddNote("", "thuis", long)
	require.NoError(t, err)

	draft, ok := p.PromoteNote(titled.ID)
	require.True(t, ok)
	assert.Equal(t, models.TaskDraft{Title: "Bel Piet", Category: "werk"}, draft)

	draft, ok = p.PromoteNote(untitled.ID)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("é", 60), draft.Title)
	assert.Equal(t, "thuis", draft.Category)
	assert.Empty(t, p.Tasks(), "promotion does not create a task")

	_, ok = p.PromoteNote("missing")
	assert.False(t, ok)

	deleted, err := p.DeleteNote(titled.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = p.DeleteNote(titled.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	notes := p.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, untitled.ID, notes[0].ID)
}
