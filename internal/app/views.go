package app

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/internal/urgency"
	"github.com/josephgoksu/dayplan/models"
)

// TaskView is a task decorated with its current tier.
type TaskView struct {
	models.Task
	Tier      models.Tier `json:"tier"`
	TierLabel string      `json:"tierLabel"`
	Planned   bool        `json:"planned"`
	Overdue   bool        `json:"overdue"`
}

// View classifies t at the planner clock.
func (a *PlanApp) View(t models.Task) TaskView {
	tier := a.p().Classify(t)
	v := TaskView{Task: t, Tier: tier, TierLabel: urgency.Label(tier)}
	for _, id := range a.p().PlanIDs() {
		if id == t.ID {
			v.Planned = true
			break
		}
	}
	for _, id := range a.p().OverdueIDs() {
		if id == t.ID {
			v.Overdue = true
			break
		}
	}
	return v
}

// Views maps View over tasks.
func (a *PlanApp) Views(tasks []models.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, a.View(t))
	}
	return out
}

// Snapshot is everything the main screen shows at once.
type Snapshot struct {
	Today       string     `json:"today"`
	Locked      bool       `json:"locked"`
	Plan        []TaskView `json:"plan"`
	Overdue     []TaskView `json:"overdue"`
	Suggestions []TaskView `json:"suggestions"`
	HasUrgent   bool       `json:"hasUrgent"`
	Notes       int        `json:"notes"`
}

// Snapshot assembles the day view.
func (a *PlanApp) Snapshot() Snapshot {
	return Snapshot{
		Today:       a.Today(),
		Locked:      a.p().IsLocked(),
		Plan:        a.Views(a.p().PlanTasks()),
		Overdue:     a.Views(a.p().OverdueTasks()),
		Suggestions: a.Views(a.p().Suggestions(a.ctx.Suggestions)),
		HasUrgent:   a.p().HasUrgent(),
		Notes:       len(a.p().Notes()),
	}
}

// IsLocked reports whether today's plan is locked.
func (a *PlanApp) IsLocked() bool {
	return a.p().IsLocked()
}

// ListTasks returns open tasks matching f in policy order.
func (a *PlanApp) ListTasks(f planner.TaskFilter) []TaskView {
	return a.Views(a.p().Filter(f))
}

// Suggestions returns the top of the policy order.
func (a *PlanApp) Suggestions(limit int) []TaskView {
	if limit <= 0 {
		limit = a.ctx.Suggestions
	}
	return a.Views(a.p().Suggestions(limit))
}

// PlanView returns the day plan in plan order.
func (a *PlanApp) PlanView() []TaskView {
	return a.Views(a.p().PlanTasks())
}

// Overdue returns tasks carried over from previous days.
func (a *PlanApp) Overdue() []TaskView {
	return a.Views(a.p().OverdueTasks())
}

// Archive returns completed tasks, newest first, optionally capped.
func (a *PlanApp) Archive(limit int) []models.Task {
	out := a.p().ArchiveNewestFirst()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories counts open tasks per category.
func (a *PlanApp) Categories() []planner.CategoryCount {
	return a.p().Categories()
}

// DayCell lists the open tasks due on date.
func (a *PlanApp) DayCell(date string) ([]TaskView, error) {
	date = strings.TrimSpace(date)
	if _, err := models.ParseDate(date, nil); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", planner.ErrValidation)
	}
	return a.Views(a.p().DayCell(date)), nil
}

// Stats computes archive statistics over the configured histogram window.
func (a *PlanApp) Stats(days int) planner.Stats {
	if days <= 0 {
		days = a.ctx.HistogramDays
	}
	return a.p().Stats(days)
}

// Notes lists the scratch notes.
func (a *PlanApp) Notes() []models.Note {
	return a.p().Notes()
}

// Classification is the answer of Classify.
type Classification struct {
	Tier          models.Tier `json:"tier"`
	Label         string      `json:"label"`
	DaysRemaining float64     `json:"daysRemaining"`
}

// Classify runs the urgency classifier on an ad hoc deadline and override.
func (a *PlanApp) Classify(deadline, override string) (Classification, error) {
	tier, err := ParseTier(override)
	if err != nil {
		return Classification{}, err
	}
	t := models.Task{Deadline: strings.TrimSpace(deadline), UrgencyOverride: tier}
	now := a.p().Now()
	var days float64
	if d, err := t.DeadlineTime(now.Location()); err == nil {
		days = urgency.DaysRemaining(d, now)
	}
	got := urgency.Classify(t, now)
	return Classification{Tier: got, Label: urgency.Label(got), DaysRemaining: days}, nil
}
