package app

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
)

// TaskInput is the loosely typed task form shared by the CLI flags and the
// MCP tool arguments. Empty strings mean "not given".
type TaskInput struct {
	Title       string
	Deadline    string
	Description string
	Urgency     string
	Type        string
	Category    string
	Duration    string
	Progress    *int
}

// Draft converts the input into a new-task draft.
func (in TaskInput) Draft() (models.TaskDraft, error) {
	tier, err := ParseTier(in.Urgency)
	if err != nil {
		return models.TaskDraft{}, err
	}
	dur, err := ParseDuration(in.Duration)
	if err != nil {
		return models.TaskDraft{}, err
	}
	d := models.TaskDraft{
		Title:           in.Title,
		Deadline:        in.Deadline,
		Description:     in.Description,
		UrgencyOverride: tier,
		Type:            in.Type,
		Category:        in.Category,
		Duration:        dur,
	}
	if in.Progress != nil {
		d.Progress = *in.Progress
	}
	return d, nil
}

// Patch converts the given fields into a partial update.
func (in TaskInput) Patch() (models.TaskPatch, error) {
	var p models.TaskPatch
	set := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	p.Title = set(in.Title)
	p.Deadline = set(in.Deadline)
	p.Description = set(in.Description)
	p.Type = set(in.Type)
	p.Category = set(in.Category)
	p.Progress = in.Progress

	if in.Urgency != "" {
		tier, err := parseOverride(in.Urgency)
		if err != nil {
			return p, err
		}
		p.UrgencyOverride = &tier
	}
	if in.Duration != "" {
		dur, err := ParseDuration(in.Duration)
		if err != nil {
			return p, err
		}
		p.Duration = &dur
	}
	return p, nil
}

// Empty reports whether no field was given.
func (in TaskInput) Empty() bool {
	return in.Title == "" && in.Deadline == "" && in.Description == "" && in.Urgency == "" &&
		in.Type == "" && in.Category == "" && in.Duration == "" && in.Progress == nil
}

// parseOverride is ParseTier plus "none"/"auto", which clear the override.
func parseOverride(s string) (models.Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "auto", "geen":
		return "", nil
	}
	return ParseTier(s)
}

// ParseDuration accepts Kort, Middel or Lang in any case. Empty means unset.
func ParseDuration(s string) (models.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, d := range []models.Duration{models.DurationShort, models.DurationMedium, models.DurationLong} {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown duration %q (use Kort, Middel or Lang)", planner.ErrValidation, s)
}
