package planner

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/models"
)

// AddTask validates draft and appends a new open task.
func (p *Planner) AddTask(draft models.TaskDraft) (models.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	deadline, err := checkDeadline(draft.Deadline)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:              p.newID(),
		Title:           title,
		Description:     strings.TrimSpace(draft.Description),
		Deadline:        deadline,
		UrgencyOverride: draft.UrgencyOverride,
		Type:            strings.TrimSpace(draft.Type),
		Category:        strings.TrimSpace(draft.Category),
		Duration:        draft.Duration,
		Progress:        ClampProgress(draft.Progress),
		CreatedAt:       p.clock.Now(),
	}
	if task.Type == "" {
		task.Type = models.DefaultType
	}
	if task.Duration == "" {
		task.Duration = models.DefaultDuration
	}
	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	err = p.mutate(func(s *State) ([]string, error) {
		s.Tasks = append(s.Tasks, task)
		return []string{KeyTasks}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func checkDeadline(raw string) (string, error) {
	deadline := strings.TrimSpace(raw)
	if deadline == "" {
		return "", fmt.Errorf("%w: deadline is required", ErrValidation)
	}
	if _, err := models.ParseDate(deadline, nil); err != nil {
		return "", fmt.Errorf("%w: deadline must be YYYY-MM-DD: %v", ErrValidation, err)
	}
	return deadline, nil
}

// CompleteTask archives an open task and purges it from the day plan and the
// overdue set in the same write.
func (p *Planner) CompleteTask(id string) (models.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var archived models.Task
	err := p.mutate(func(s *State) ([]string, error) {
		i := indexOfTask(s.Tasks, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		now := p.clock.Now()
		archived = s.Tasks[i]
		archived.Done = true
		archived.CompletedAt = &now

		s.Archive = append(s.Archive, archived)
		s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
		s.DayPlan, _ = removeID(s.DayPlan, id)
		s.OverdueIDs, _ = removeID(s.OverdueIDs, id)
		return []string{KeyTasks, KeyArchive, KeyDayPlan, KeyOverdueIDs}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return archived, nil
}

// UncompleteTask clears the done flag on an open task. Archived tasks stay
// archived: the archive is one-way, so ErrTaskArchived is returned.
func (p *Planner) UncompleteTask(id string) (models.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var reopened models.Task
	err := p.mutate(func(s *State) ([]string, error) {
		i := indexOfTask(s.Tasks, id)
		if i < 0 {
			if indexOfTask(s.Archive, id) >= 0 {
				return nil, fmt.Errorf("%w: %s", ErrTaskArchived, id)
			}
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		t := &s.Tasks[i]
		changed := t.Done || t.CompletedAt != nil
		t.Done = false
		t.CompletedAt = nil
		reopened = *t
		if !changed {
			return nil, nil
		}
		return []string{KeyTasks}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return reopened, nil
}

// UpdateTask applies patch to an open task. A miss returns false without error.
func (p *Planner) UpdateTask(id string, patch models.TaskPatch) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.update(id, patch)
}

// SaveDetail is the detail-panel save: an empty title or deadline keeps the
// current value, the description is always replaced.
func (p *Planner) SaveDetail(id, title, deadline, description string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	patch := models.TaskPatch{Description: &description}
	if t := strings.TrimSpace(title); t != "" {
		patch.Title = &t
	}
	if d := strings.TrimSpace(deadline); d != "" {
		patch.Deadline = &d
	}
	return p.update(id, patch)
}

func (p *Planner) update(id string, patch models.TaskPatch) (bool, error) {
	found := false
	err := p.mutate(func(s *State) ([]string, error) {
		i := indexOfTask(s.Tasks, id)
		if i < 0 {
			return nil, nil
		}
		found = true
		t := s.Tasks[i]
		fields, err := applyPatch(&t, patch)
		if err != nil {
			return nil, err
		}
		if err := models.ValidateFields(t, fields...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		s.Tasks[i] = t
		return []string{KeyTasks}, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// applyPatch writes the non-nil patch fields into t and returns their names.
func applyPatch(t *models.Task, patch models.TaskPatch) ([]string, error) {
	var fields []string
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		t.Title = title
		fields = append(fields, "Title")
	}
	if patch.Deadline != nil {
		deadline, err := checkDeadline(*patch.Deadline)
		if err != nil {
			return nil, err
		}
		t.Deadline = deadline
		fields = append(fields, "Deadline")
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.UrgencyOverride != nil {
		t.UrgencyOverride = *patch.UrgencyOverride
		fields = append(fields, "UrgencyOverride")
	}
	if patch.Type != nil {
		t.Type = strings.TrimSpace(*patch.Type)
		fields = append(fields, "Type")
	}
	if patch.Category != nil {
		t.Category = strings.TrimSpace(*patch.Category)
		fields = append(fields, "Category")
	}
	if patch.Duration != nil {
		t.Duration = *patch.Duration
		fields = append(fields, "Duration")
	}
	if patch.Progress != nil {
		t.Progress = ClampProgress(*patch.Progress)
		fields = append(fields, "Progress")
	}
	return fields, nil
}

// ClampProgress bounds a percentage to [0, 100].
func ClampProgress(v int) int {
	return min(max(v, 0), 100)
}
