package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time { return c.t }

func newTestApp(t *testing.T) (*PlanApp, *stepClock) {
	t.Helper()
	clock := &stepClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	seq := 0
	ctx := NewMemoryContext(planner.WithClock(clock), planner.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("task-%02d", seq)
	}))
	t.Cleanup(func() { _ = ctx.Close() })
	return NewPlanApp(ctx), clock
}

func add(t *testing.T, a *PlanApp, title, deadline string) string {
	t.Helper()
	res, err := a.AddTask(models.TaskDraft{Title: title, Deadline: deadline})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return res.Task.ID
}

func TestAddTask_ValidationIsAResult(t *testing.T) {
	a, _ := newTestApp(t)

	res, err := a.AddTask(models.TaskDraft{Title: "  ", Deadline: "2025-03-11"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, KindValidation, res.Kind)

	res, err = a.AddTask(models.TaskDraft{Title: "Essay", Deadline: "11-03-2025"})
	require.NoError(t, err)
	assert.Equal(t, KindValidation, res.Kind)
	assert.Empty(t, a.ListTasks(planner.TaskFilter{}))
}

func TestAddTask_ViewCarriesTier(t *testing.T) {
	a, _ := newTestApp(t)
	res, err := a.AddTask(models.TaskDraft{Title: "Essay", Deadline: "2025-03-11"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, models.TierUrgent, res.Task.Tier)
	assert.Equal(t, "Rood", res.Task.TierLabel)
	assert.Equal(t, models.DefaultType, res.Task.Type)
}

func TestResolveID(t *testing.T) {
	a, _ := newTestApp(t)
	add(t, a, "one", "2025-03-20")
	add(t, a, "two", "2025-03-20")

	id, err := a.ResolveID("task-01", false)
	require.NoError(t, err)
	assert.Equal(t, "task-01", id)

	_, err = a.ResolveID("task-0", false)
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = a.ResolveID("nope", false)
	assert.ErrorIs(t, err, planner.ErrTaskNotFound)
}

func TestCompleteAndUncomplete(t *testing.T) {
	a, _ := newTestApp(t)
	id := add(t, a, "Essay", "2025-03-20")

	res, err := a.CompleteTask(id)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, res.Task.Done)

	res, err = a.CompleteTask(id)
	require.NoError(t, err)
	assert.True(t, res.Success, "completing an archived task is a no-op")
	assert.Len(t, a.Archive(0), 1)

	res, err = a.UncompleteTask(id)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, KindArchived, res.Kind)
	assert.NotEmpty(t, res.Hint)
}

func TestUpdateTask(t *testing.T) {
	a, _ := newTestApp(t)
	id := add(t, a, "Essay", "2025-03-20")

	title := "Final essay"
	progress := 250
	res, err := a.UpdateTask(id, models.TaskPatch{Title: &title, Progress: &progress})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Final essay", res.Task.Title)
	assert.Equal(t, 100, res.Task.Progress)

	bad := "tomorrow"
	res, err = a.UpdateTask(id, models.TaskPatch{Deadline: &bad})
	require.NoError(t, err)
	assert.Equal(t, KindValidation, res.Kind)

	res, err = a.UpdateTask("missing", models.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, res.Kind)
}

func TestSaveDetail_BlankFieldsKeepValues(t *testing.T) {
	a, _ := newTestApp(t)
	id := add(t, a, "Essay", "2025-03-20")

	res, err := a.SaveDetail(id, "", "", "outline first")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "Essay", res.Task.Title)
	assert.Equal(t, "2025-03-20", res.Task.Deadline)
	assert.Equal(t, "outline first", res.Task.Description)
}

func TestPlanLifecycle(t *testing.T) {
	a, _ := newTestApp(t)
	first := add(t, a, "first", "2025-03-20")
	second := add(t, a, "second", "2025-03-20")

	_, err := a.AddToPlan(first)
	require.NoError(t, err)
	res, err := a.MovePlanItem(second, 0)
	require.NoError(t, err)
	require.Len(t, res.Plan, 2)
	assert.Equal(t, second, res.Plan[0].ID)
	assert.True(t, res.Plan[0].Planned)

	res, err = a.LockPlan()
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = a.RemoveFromPlan(first)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, KindLocked, res.Kind)

	res, err = a.UnlockPlan()
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = a.RemoveFromPlan(first)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Plan, 1)
}

func TestLockPlan_EmptyPlanHint(t *testing.T) {
	a, _ := newTestApp(t)
	res, err := a.LockPlan()
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Hint)
}

func TestRollover_MovesPlanToOverdue(t *testing.T) {
	a, clock := newTestApp(t)
	id := add(t, a, "carry", "2025-03-20")
	_, err := a.AddToPlan(id)
	require.NoError(t, err)
	_, err = a.LockPlan()
	require.NoError(t, err)

	res, err := a.Rollover()
	require.NoError(t, err)
	assert.Contains(t, res.Message, "current")

	clock.t = clock.t.AddDate(0, 0, 1)
	res, err = a.Rollover()
	require.NoError(t, err)
	assert.Contains(t, res.Message, "1 unfinished")

	snap := a.Snapshot()
	assert.Empty(t, snap.Plan)
	assert.False(t, snap.Locked)
	require.Len(t, snap.Overdue, 1)
	assert.True(t, snap.Overdue[0].Overdue)
	assert.Equal(t, "2025-03-11", snap.Today)
}

func TestOperationsCrossMidnightWithoutExplicitRollover(t *testing.T) {
	a, clock := newTestApp(t)
	carried := add(t, a, "carry", "2025-03-20")
	_, err := a.AddToPlan(carried)
	require.NoError(t, err)
	_, err = a.LockPlan()
	require.NoError(t, err)

	clock.t = clock.t.AddDate(0, 0, 1)
	fresh := add(t, a, "fresh", "2025-03-20")
	res, err := a.AddToPlan(fresh)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.Len(t, res.Plan, 1)
	assert.Equal(t, fresh, res.Plan[0].ID)

	snap := a.Snapshot()
	assert.False(t, snap.Locked)
	require.Len(t, snap.Overdue, 1)
	assert.Equal(t, carried, snap.Overdue[0].ID)

	res, err = a.Rollover()
	require.NoError(t, err)
	assert.Contains(t, res.Message, "current")
}

func TestNotes(t *testing.T) {
	a, _ := newTestApp(t)
	res, err := a.AddNote("", "school", "read chapter four before the seminar on thursday")
	require.NoError(t, err)
	require.True(t, res.Success)
	id := res.Note.ID

	res, err = a.PromoteNote(id)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "school", res.Draft.Category)
	assert.NotEmpty(t, res.Draft.Title)

	res, err = a.PromoteNote("missing")
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, res.Kind)

	res, err = a.DeleteNote(id)
	require.NoError(t, err)
	assert.Equal(t, "Note deleted", res.Message)
	res, err = a.DeleteNote(id)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, a.Notes())
}

func TestClassify(t *testing.T) {
	a, _ := newTestApp(t)

	c, err := a.Classify("2025-03-12", "")
	require.NoError(t, err)
	assert.Equal(t, models.TierWarning, c.Tier)
	assert.InDelta(t, 1.625, c.DaysRemaining, 0.001)

	c, err = a.Classify("2025-03-12", "Groen")
	require.NoError(t, err)
	assert.Equal(t, models.TierSafe, c.Tier)

	c, err = a.Classify("garbage", "")
	require.NoError(t, err)
	assert.Equal(t, models.TierSafe, c.Tier)

	_, err = a.Classify("2025-03-12", "purple")
	assert.ErrorIs(t, err, planner.ErrValidation)
}

func TestDayCell(t *testing.T) {
	a, _ := newTestApp(t)
	add(t, a, "due", "2025-03-12")
	add(t, a, "later", "2025-03-20")

	cell, err := a.DayCell("2025-03-12")
	require.NoError(t, err)
	require.Len(t, cell, 1)
	assert.Equal(t, "due", cell[0].Title)

	_, err = a.DayCell("12/03")
	assert.ErrorIs(t, err, planner.ErrValidation)
}

func TestTaskInput(t *testing.T) {
	progress := 30
	in := TaskInput{Title: "Essay", Deadline: "2025-03-20", Urgency: "geel", Duration: "lang", Progress: &progress}

	d, err := in.Draft()
	require.NoError(t, err)
	assert.Equal(t, models.TierWarning, d.UrgencyOverride)
	assert.Equal(t, models.DurationLong, d.Duration)
	assert.Equal(t, 30, d.Progress)

	p, err := TaskInput{Urgency: "none"}.Patch()
	require.NoError(t, err)
	require.NotNil(t, p.UrgencyOverride)
	assert.Equal(t, models.Tier(""), *p.UrgencyOverride)
	assert.Nil(t, p.Title)

	_, err = TaskInput{Duration: "eeuwig"}.Patch()
	assert.ErrorIs(t, err, planner.ErrValidation)

	assert.True(t, TaskInput{}.Empty())
	assert.False(t, in.Empty())
}
