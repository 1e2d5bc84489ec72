package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar-date format used for deadlines, planned days and
// the persisted lastPlanDate key.
const DateLayout = "2006-01-02"

// Tier is an urgency bucket.
type Tier string

const (
	TierUrgent  Tier = "urgent"
	TierWarning Tier = "warning"
	TierSafe    Tier = "safe"
)

// Valid reports whether t is one of the recognized tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierUrgent, TierWarning, TierSafe:
		return true
	}
	return false
}

// Duration is the bucketed effort label of a task.
type Duration string

const (
	DurationShort  Duration = "Kort"
	DurationMedium Duration = "Middel"
	DurationLong   Duration = "Lang"
)

const (
	DefaultType     = "overig"
	DefaultDuration = DurationShort
)

// Task represents a unit of work. A task with Done set lives in the archive,
// never in the open set.
type Task struct {
	ID              string     `json:"id" yaml:"id" validate:"required"`
	Title           string     `json:"title" yaml:"title" validate:"required,max=255"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	Deadline        string     `json:"deadline" yaml:"deadline" validate:"required,datetime=2006-01-02"`
	UrgencyOverride Tier       `json:"urgencyOverride,omitempty" yaml:"urgencyOverride,omitempty" validate:"omitempty,oneof=urgent warning safe"`
	Type            string     `json:"type,omitempty" yaml:"type,omitempty" validate:"max=64"`
	Category        string     `json:"category,omitempty" yaml:"category,omitempty" validate:"max=64"`
	Duration        Duration   `json:"duration,omitempty" yaml:"duration,omitempty" validate:"omitempty,oneof=Kort Middel Lang"`
	Progress        int        `json:"progress" yaml:"progress" validate:"min=0,max=100"`
	CreatedAt       time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Done            bool       `json:"done" yaml:"done"`
	PlannedDay      string     `json:"plannedDay,omitempty" yaml:"plannedDay,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// DeadlineTime parses the deadline as midnight of that date in loc.
func (t Task) DeadlineTime(loc *time.Location) (time.Time, error) {
	return ParseDate(t.Deadline, loc)
}

// ParseDate parses a YYYY-MM-DD string in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TaskDraft holds the user-entered fields of a task that does not exist yet.
type TaskDraft struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description,omitempty"`
	Deadline        string   `json:"deadline" validate:"required,datetime=2006-01-02"`
	UrgencyOverride Tier     `json:"urgencyOverride,omitempty" validate:"omitempty,oneof=urgent warning safe"`
	Type            string   `json:"type,omitempty"`
	Category        string   `json:"category,omitempty"`
	Duration        Duration `json:"duration,omitempty" validate:"omitempty,oneof=Kort Middel Lang"`
	Progress        int      `json:"progress,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Deadline        *string   `json:"deadline,omitempty"`
	UrgencyOverride *Tier     `json:"urgencyOverride,omitempty"`
	Type            *string   `json:"type,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Duration        *Duration `json:"duration,omitempty"`
	Progress        *int      `json:"progress,omitempty"`
}

// TaskList is the document shape of the seed files.
type TaskList struct {
	Tasks []Task `json:"tasks" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates any struct and flattens the validator errors into
// a single readable error.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	return flatten(validate.Struct(s))
}

// ValidateFields validates only the named top-level fields of a struct.
// Stored records that predate a rule stay editable as long as the fields
// being changed are valid.
func ValidateFields(s interface{}, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return flatten(validate.StructPartial(s, fields...))
}

func flatten(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return errors.New(strings.Join(messages, "; "))
}
