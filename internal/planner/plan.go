package planner

import (
	"slices"
	"time"

	"github.com/josephgoksu/dayplan/models"
)

// PlanIDs returns the day plan in order, including ids whose task has since
// been archived. Use PlanTasks for rendering.
func (p *Planner) PlanIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneIDs(p.state.DayPlan)
}

// IsLocked reports the plan lock flag.
func (p *Planner) IsLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Locked
}

// LastPlanDate is the calendar date of the last rollover check.
func (p *Planner) LastPlanDate() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.LastPlanDate
}

// PlanTasks maps the plan onto open tasks in plan order, skipping ids that no
// longer reference one.
func (p *Planner) PlanTasks() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Task, 0, len(p.state.DayPlan))
	for _, id := range p.state.DayPlan {
		if i := indexOfTask(p.state.Tasks, id); i >= 0 {
			out = append(out, p.state.Tasks[i])
		}
	}
	return cloneTasks(out)
}

// AddToPlan appends id to the plan. Adding an id twice is a no-op, as is an
// id that references no open task.
func (p *Planner) AddToPlan(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mutate(func(s *State) ([]string, error) {
		if s.Locked {
			return nil, ErrPlanLocked
		}
		if slices.Contains(s.DayPlan, id) || indexOfTask(s.Tasks, id) < 0 {
			return nil, nil
		}
		s.DayPlan = append(s.DayPlan, id)
		return []string{KeyDayPlan}, nil
	})
}

// RemoveFromPlan drops id from the plan if present.
func (p *Planner) RemoveFromPlan(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mutate(func(s *State) ([]string, error) {
		if s.Locked {
			return nil, ErrPlanLocked
		}
		var removed bool
		s.DayPlan, removed = removeID(s.DayPlan, id)
		if !removed {
			return nil, nil
		}
		return []string{KeyDayPlan}, nil
	})
}

// Reorder moves id to target, clamped to [0, len] after id is taken out.
// An id not yet in the plan is inserted, which is how a task dropped in from
// another list lands at the drop position.
func (p *Planner) Reorder(id string, target int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mutate(func(s *State) ([]string, error) {
		if s.Locked {
			return nil, ErrPlanLocked
		}
		plan, present := removeID(s.DayPlan, id)
		if !present && indexOfTask(s.Tasks, id) < 0 {
			return nil, nil
		}
		target = min(max(target, 0), len(plan))
		s.DayPlan = slices.Insert(plan, target, id)
		return []string{KeyDayPlan}, nil
	})
}

// InsertionIndex turns a pointer position into a drop target: the index of
// the first sibling whose vertical midpoint lies below the pointer, or the
// end of the list.
func InsertionIndex(midpoints []float64, pointerY float64) int {
	for i, mid := range midpoints {
		if pointerY < mid {
			return i
		}
	}
	return len(midpoints)
}

// Lock closes the plan for editing and stamps today's date as the planned
// day of every open task in it.
func (p *Planner) Lock() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	today := p.today()
	return p.mutate(func(s *State) ([]string, error) {
		s.Locked = true
		for _, id := range s.DayPlan {
			if i := indexOfTask(s.Tasks, id); i >= 0 {
				s.Tasks[i].PlannedDay = today
			}
		}
		return []string{KeyDayPlanLock, KeyTasks}, nil
	})
}

// Unlock reopens the plan. Planned-day stamps and order are kept.
func (p *Planner) Unlock() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mutate(func(s *State) ([]string, error) {
		if !s.Locked {
			return nil, nil
		}
		s.Locked = false
		return []string{KeyDayPlanLock}, nil
	})
}

// RolloverIfNewDay flushes unfinished plan entries into the overdue set when
// the stored plan date differs from today's calendar date, however many days
// apart they are. It reports whether a rollover happened. Repeated calls on
// the same day do nothing.
func (p *Planner) RolloverIfNewDay(today time.Time) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	date := models.FormatDate(today)
	rolled := false
	err := p.mutate(func(s *State) ([]string, error) {
		if s.LastPlanDate == date {
			return nil, nil
		}
		dirty := []string{KeyLastPlanDate}
		if s.LastPlanDate != "" {
			for _, id := range s.DayPlan {
				i := indexOfTask(s.Tasks, id)
				if i < 0 || s.Tasks[i].Done {
					continue
				}
				if !slices.Contains(s.OverdueIDs, id) {
					s.OverdueIDs = append(s.OverdueIDs, id)
				}
			}
			s.DayPlan = []string{}
			s.Locked = false
			rolled = true
			dirty = append(dirty, KeyOverdueIDs, KeyDayPlan, KeyDayPlanLock)
		}
		s.LastPlanDate = date
		return dirty, nil
	})
	if err != nil {
		return false, err
	}
	return rolled, nil
}

// Rollover runs RolloverIfNewDay with the injected clock.
func (p *Planner) Rollover() (bool, error) {
	return p.RolloverIfNewDay(p.clock.Now())
}
