package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_ValidateStruct(t *testing.T) {
	valid := func() Task {
		return Task{
			ID:        uuid.NewString(),
			Title:     "Write report",
			Deadline:  "2025-03-10",
			Duration:  DurationShort,
			Progress:  40,
			CreatedAt: time.Now(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{name: "valid task", mutate: func(*Task) {}},
		{name: "empty title", mutate: func(t *Task) { t.Title = "" }, wantErr: true},
		{name: "missing deadline", mutate: func(t *Task) { t.Deadline = "" }, wantErr: true},
		{name: "malformed deadline", mutate: func(t *Task) { t.Deadline = "10-03-2025" }, wantErr: true},
		{name: "unknown override", mutate: func(t *Task) { t.UrgencyOverride = "red" }, wantErr: true},
		{name: "known override", mutate: func(t *Task) { t.UrgencyOverride = TierWarning }},
		{name: "unknown duration", mutate: func(t *Task) { t.Duration = "Eeuwig" }, wantErr: true},
		{name: "progress above range", mutate: func(t *Task) { t.Progress = 101 }, wantErr: true},
		{name: "planned day malformed", mutate: func(t *Task) { t.PlannedDay = "tomorrow" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid()
			tt.mutate(&task)
			err := ValidateStruct(task)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_MessageNamesField(t *testing.T) {
	err := ValidateStruct(TaskDraft{Deadline: "2025-01-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TaskDraft.Title")
	assert.Contains(t, err.Error(), "required")
}

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierUrgent.Valid())
	assert.True(t, TierWarning.Valid())
	assert.True(t, TierSafe.Valid())
	assert.False(t, Tier("").Valid())
	assert.False(t, Tier("Rood").Valid())
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	d, err := ParseDate(" 2025-01-02 ", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, loc), d)
	assert.Equal(t, "2025-01-02", FormatDate(d))

	_, err = ParseDate("", loc)
	assert.Error(t, err)
}
