package planner

import "errors"

var (
	// ErrValidation wraps missing or malformed user input. No state changes.
	ErrValidation = errors.New("validation failed")
	// ErrPlanLocked is returned when the day plan is edited while locked.
	ErrPlanLocked = errors.New("plan is locked")
	// ErrTaskNotFound is returned when an id is not in the open set.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskArchived is returned when reopening a task that already moved to the archive.
	ErrTaskArchived = errors.New("task is archived")
)
