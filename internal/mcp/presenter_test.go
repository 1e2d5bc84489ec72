package mcp

import (
	"errors"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTaskList_Empty(t *testing.T) {
	assert.Equal(t, "## Overdue (0)\n\nNone.", FormatTaskList("Overdue", nil))
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(&app.Result{
		Success: true,
		Message: "Plan locked for 2025-09-01",
		Plan:    []app.TaskView{},
		Hint:    "The plan is empty.",
	})
	assert.Contains(t, out, "✓ Plan locked")
	assert.Contains(t, out, "Plan is empty.")
	assert.Contains(t, out, "*The plan is empty.*")
}

func TestFormatArchive(t *testing.T) {
	done := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)
	out := FormatArchive([]models.Task{{ID: "a1", Title: "Filed", Deadline: "2025-09-02", CompletedAt: &done}})
	assert.Contains(t, out, "## Archive (1)")
	assert.Contains(t, out, "completed 2025-09-01 14:30 (deadline 2025-09-02)")
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(planner.Stats{Completed: 4, OnTimePercent: 75, AvgHours: 3.5})
	assert.Contains(t, out, "**On time**: 75%")
	assert.Contains(t, out, "3.5 h")
	assert.NotContains(t, out, "| Date |")
}

func TestFormatCategories_TitleCase(t *testing.T) {
	out := FormatCategories([]planner.CategoryCount{{Category: "ijsclub", Count: 2}})
	assert.Contains(t, out, "- IJsclub: 2")
	assert.Equal(t, "No open tasks.", FormatCategories(nil))
}

func TestRespond(t *testing.T) {
	res, err := respond(&ToolResult{Content: "ok"}, nil)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "ok", res.Content[0].(*mcpsdk.TextContent).Text)

	res, err = respond(&ToolResult{Error: "bad"}, nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcpsdk.TextContent).Text, "**Details**: bad")

	res, err = respond(nil, errors.New("disk full"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(newTestApp(t), "test"))
}
