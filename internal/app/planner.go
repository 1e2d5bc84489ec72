package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/internal/urgency"
	"github.com/josephgoksu/dayplan/models"
)

// Failure kinds carried by unsuccessful Results.
const (
	KindValidation = "validation"
	KindLocked     = "locked"
	KindNotFound   = "not_found"
	KindArchived   = "archived"
	KindAmbiguous  = "ambiguous"
)

// ErrAmbiguousID is returned when an id prefix matches more than one task.
var ErrAmbiguousID = errors.New("ambiguous task id")

// Result is the response of every mutating operation. Domain failures
// (validation, locked plan, unknown id) come back as Success=false with a
// Kind; only storage failures are returned as errors.
type Result struct {
	Success bool              `json:"success"`
	Kind    string            `json:"kind,omitempty"`
	Message string            `json:"message,omitempty"`
	Task    *TaskView         `json:"task,omitempty"`
	Note    *models.Note      `json:"note,omitempty"`
	Draft   *models.TaskDraft `json:"draft,omitempty"`
	Plan    []TaskView        `json:"plan,omitempty"`
	Hint    string            `json:"hint,omitempty"`
}

// failure turns a domain error into a Result. Other errors are passed through.
func failure(err error) (*Result, error) {
	kind := ""
	hint := ""
	switch {
	case errors.Is(err, planner.ErrValidation):
		kind = KindValidation
	case errors.Is(err, planner.ErrPlanLocked):
		kind = KindLocked
		hint = "Unlock the plan first."
	case errors.Is(err, planner.ErrTaskNotFound):
		kind = KindNotFound
	case errors.Is(err, planner.ErrTaskArchived):
		kind = KindArchived
		hint = "Archived tasks cannot be reopened. Add it again as a new task."
	case errors.Is(err, ErrAmbiguousID):
		kind = KindAmbiguous
		hint = "Use more characters of the id."
	default:
		return nil, err
	}
	return &Result{Success: false, Kind: kind, Message: err.Error(), Hint: hint}, nil
}

// PlanApp exposes the planner operations to adapters.
type PlanApp struct {
	ctx *Context
}

// NewPlanApp creates the application service.
func NewPlanApp(ctx *Context) *PlanApp {
	return &PlanApp{ctx: ctx}
}

// Context returns the shared dependencies.
func (a *PlanApp) Context() *Context { return a.ctx }

// p returns the planner, first crossing any day boundary passed since the
// last operation. Long-running sessions (serve, mcp, the plan board) roll
// over at midnight this way instead of only at start.
func (a *PlanApp) p() *planner.Planner {
	pl := a.ctx.Planner
	if pl.LastPlanDate() != models.FormatDate(pl.Now()) {
		rolled, err := pl.Rollover()
		switch {
		case err != nil:
			slog.Warn("day rollover failed, will retry", "error", err)
		case rolled:
			slog.Debug("moved unfinished plan to overdue", "overdue", len(pl.OverdueIDs()))
		}
	}
	return pl
}

// ResolveID maps a full id or a unique id prefix onto an open task id. When
// includeArchive is set, archived tasks are matched too.
func (a *PlanApp) ResolveID(ref string, includeArchive bool) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: task id is required", planner.ErrValidation)
	}
	pools := [][]models.Task{a.p().Tasks()}
	if includeArchive {
		pools = append(pools, a.p().Archive())
	}
	var matches []string
	for _, pool := range pools {
		for _, t := range pool {
			if t.ID == ref {
				return t.ID, nil
			}
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", planner.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, ref, len(matches))
	}
}

// AddTask creates a task from draft.
func (a *PlanApp) AddTask(draft models.TaskDraft) (*Result, error) {
	t, err := a.p().AddTask(draft)
	if err != nil {
		return failure(err)
	}
	v := a.View(t)
	return &Result{Success: true, Message: fmt.Sprintf("Added task %q", t.Title), Task: &v}, nil
}

// CompleteTask archives a task.
func (a *PlanApp) CompleteTask(ref string) (*Result, error) {
	id, err := a.ResolveID(ref, true)
	if err != nil {
		return failure(err)
	}
	if _, archived := a.p().ArchivedTask(id); archived {
		return &Result{Success: true, Message: "Task is already completed"}, nil
	}
	t, err := a.p().CompleteTask(id)
	if err != nil {
		return failure(err)
	}
	v := a.View(t)
	return &Result{Success: true, Message: fmt.Sprintf("Completed %q", t.Title), Task: &v}, nil
}

// UncompleteTask reopens an open task marked done. Archived tasks are refused.
func (a *PlanApp) UncompleteTask(ref string) (*Result, error) {
	id, err := a.ResolveID(ref, true)
	if err != nil {
		return failure(err)
	}
	t, err := a.p().UncompleteTask(id)
	if err != nil {
		return failure(err)
	}
	v := a.View(t)
	return &Result{Success: true, Message: fmt.Sprintf("Reopened %q", t.Title), Task: &v}, nil
}

// UpdateTask applies a partial update.
func (a *PlanApp) UpdateTask(ref string, patch models.TaskPatch) (*Result, error) {
	id, err := a.ResolveID(ref, false)
	if err != nil {
		return failure(err)
	}
	ok, err := a.p().UpdateTask(id, patch)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("%w: %s", planner.ErrTaskNotFound, ref))
	}
	t, _ := a.p().Task(id)
	v := a.View(t)
	return &Result{Success: true, Message: fmt.Sprintf("Updated %q", t.Title), Task: &v}, nil
}

// SaveDetail is the detail-form save: blank title or deadline keep their value.
func (a *PlanApp) SaveDetail(ref, title, deadline, description string) (*Result, error) {
	id, err := a.ResolveID(ref, false)
	if err != nil {
		return failure(err)
	}
	if _, err := a.p().SaveDetail(id, title, deadline, description); err != nil {
		return failure(err)
	}
	t, _ := a.p().Task(id)
	v := a.View(t)
	return &Result{Success: true, Message: fmt.Sprintf("Saved %q", t.Title), Task: &v}, nil
}

func (a *PlanApp) planResult(msg string) *Result {
	return &Result{Success: true, Message: msg, Plan: a.Views(a.p().PlanTasks())}
}

// AddToPlan appends a task to today's plan.
func (a *PlanApp) AddToPlan(ref string) (*Result, error) {
	id, err := a.ResolveID(ref, false)
	if err != nil {
		return failure(err)
	}
	if err := a.p().AddToPlan(id); err != nil {
		return failure(err)
	}
	return a.planResult("Added to plan"), nil
}

// RemoveFromPlan takes a task out of today's plan.
func (a *PlanApp) RemoveFromPlan(ref string) (*Result, error) {
	id, err := a.ResolveID(ref, true)
	if err != nil {
		return failure(err)
	}
	if err := a.p().RemoveFromPlan(id); err != nil {
		return failure(err)
	}
	return a.planResult("Removed from plan"), nil
}

// MovePlanItem moves (or drops) a task to a zero-based position in the plan.
func (a *PlanApp) MovePlanItem(ref string, index int) (*Result, error) {
	id, err := a.ResolveID(ref, false)
	if err != nil {
		return failure(err)
	}
	if err := a.p().Reorder(id, index); err != nil {
		return failure(err)
	}
	return a.planResult("Plan reordered"), nil
}

// LockPlan commits today's plan.
func (a *PlanApp) LockPlan() (*Result, error) {
	if err := a.p().Lock(); err != nil {
		return failure(err)
	}
	r := a.planResult("Plan locked for " + a.Today())
	if len(r.Plan) == 0 {
		r.Hint = "The plan is empty. Unlock it to add tasks."
	}
	return r, nil
}

// UnlockPlan reopens today's plan for editing.
func (a *PlanApp) UnlockPlan() (*Result, error) {
	if err := a.p().Unlock(); err != nil {
		return failure(err)
	}
	return a.planResult("Plan unlocked"), nil
}

// Rollover runs the day-boundary check now.
func (a *PlanApp) Rollover() (*Result, error) {
	pl := a.ctx.Planner
	before := len(pl.OverdueIDs())
	rolled, err := pl.Rollover()
	if err != nil {
		return nil, err
	}
	if !rolled {
		return &Result{Success: true, Message: "Plan is current for " + a.Today()}, nil
	}
	moved := len(pl.OverdueIDs()) - before
	return &Result{Success: true, Message: fmt.Sprintf("New day: %d unfinished task(s) moved to overdue", moved)}, nil
}

// AddNote stores a note.
func (a *PlanApp) AddNote(title, category, text string) (*Result, error) {
	n, err := a.p().AddNote(title, category, text)
	if err != nil {
		return failure(err)
	}
	return &Result{Success: true, Message: "Note saved", Note: &n}, nil
}

// DeleteNote removes a note. Unknown ids succeed silently.
func (a *PlanApp) DeleteNote(id string) (*Result, error) {
	deleted, err := a.p().DeleteNote(id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return &Result{Success: true, Message: "Nothing to delete"}, nil
	}
	return &Result{Success: true, Message: "Note deleted"}, nil
}

// PromoteNote returns a task draft prefilled from a note.
func (a *PlanApp) PromoteNote(id string) (*Result, error) {
	draft, ok := a.p().PromoteNote(id)
	if !ok {
		return failure(fmt.Errorf("%w: note %s", planner.ErrTaskNotFound, id))
	}
	return &Result{
		Success: true,
		Message: "Draft ready",
		Draft:   &draft,
		Hint:    "Add a deadline and create the task.",
	}, nil
}

// Today is the planner's current calendar date.
func (a *PlanApp) Today() string {
	return models.FormatDate(a.p().Now())
}

// ParseTier accepts tier keys and labels; empty means no override.
func ParseTier(s string) (models.Tier, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, ok := urgency.ParseTier(s)
	if !ok {
		return "", fmt.Errorf("%w: unknown urgency %q (use urgent/warning/safe or Rood/Geel/Groen)", planner.ErrValidation, s)
	}
	return t, nil
}
