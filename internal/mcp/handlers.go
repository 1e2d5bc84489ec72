package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/planner"
)

// ToolResult is the response of a tool handler. Error is set for domain
// failures the assistant should read; Go errors are storage failures.
type ToolResult struct {
	Action  string `json:"action"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

func toolError(action, format string, args ...any) *ToolResult {
	return &ToolResult{Action: action, Error: fmt.Sprintf(format, args...)}
}

// fromResult renders an app.Result, turning failures into tool errors.
func fromResult(action string, res *app.Result, err error) (*ToolResult, error) {
	if err != nil {
		return nil, err
	}
	if !res.Success {
		msg := res.Message
		if res.Hint != "" {
			msg += ". " + res.Hint
		}
		return &ToolResult{Action: action, Error: msg}, nil
	}
	return &ToolResult{Action: action, Content: FormatResult(res)}, nil
}

func requireTaskID(action, id string) *ToolResult {
	if strings.TrimSpace(id) == "" {
		return toolError(action, "task_id is required for %s action", action)
	}
	return nil
}

// HandleTaskTool is the handler for task lifecycle operations.
func HandleTaskTool(ctx context.Context, a *app.PlanApp, params TaskToolParams) (*ToolResult, error) {
	action := string(params.Action)
	if !params.Action.IsValid() {
		return toolError(action, "invalid action %q, must be one of: add, complete, uncomplete, update, list", params.Action), nil
	}

	in := app.TaskInput{
		Title:       params.Title,
		Deadline:    params.Deadline,
		Description: params.Description,
		Urgency:     params.Urgency,
		Type:        params.Type,
		Category:    params.Category,
		Duration:    params.Duration,
		Progress:    params.Progress,
	}

	switch params.Action {
	case TaskActionAdd:
		if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Deadline) == "" {
			return toolError(action, "title and deadline are required for add action"), nil
		}
		draft, err := in.Draft()
		if err != nil {
			return toolError(action, "%v", err), nil
		}
		res, err := a.AddTask(draft)
		return fromResult(action, res, err)

	case TaskActionComplete:
		if r := requireTaskID(action, params.TaskID); r != nil {
			return r, nil
		}
		res, err := a.CompleteTask(params.TaskID)
		return fromResult(action, res, err)

	case TaskActionUncomplete:
		if r := requireTaskID(action, params.TaskID); r != nil {
			return r, nil
		}
		res, err := a.UncompleteTask(params.TaskID)
		return fromResult(action, res, err)

	case TaskActionUpdate:
		if r := requireTaskID(action, params.TaskID); r != nil {
			return r, nil
		}
		if in.Empty() {
			return toolError(action, "update needs at least one field to change"), nil
		}
		patch, err := in.Patch()
		if err != nil {
			return toolError(action, "%v", err), nil
		}
		res, err := a.UpdateTask(params.TaskID, patch)
		return fromResult(action, res, err)

	default: // list
		tier, err := app.ParseTier(params.Tier)
		if err != nil {
			return toolError(action, "%v", err), nil
		}
		tasks := a.ListTasks(planner.TaskFilter{Category: params.Category, Type: params.Type, Tier: tier})
		return &ToolResult{Action: action, Content: FormatTaskList("Open tasks", tasks)}, nil
	}
}

// HandlePlanTool is the handler for day plan operations.
func HandlePlanTool(ctx context.Context, a *app.PlanApp, params PlanToolParams) (*ToolResult, error) {
	action := string(params.Action)
	if !params.Action.IsValid() {
		return toolError(action, "invalid action %q, must be one of: show, add, remove, move, lock, unlock, rollover", params.Action), nil
	}

	switch params.Action {
	case PlanActionShow:
		return &ToolResult{Action: action, Content: FormatSnapshot(a.Snapshot())}, nil
	case PlanActionAdd:
		if r := requireTaskID(action, params.TaskID); r != nil {
			return r, nil
		}
		res, err := a.AddToPlan(params.TaskID)
		return fromResult(action, res, err)
	case PlanActionRemove:
		if r := requireTaskID(action, params.TaskID); r != nil {
			return r, nil
		}
		res, err := a.RemoveFromPlan(params.TaskID)
		return fromResult(action, res, err)
	case PlanActionMove:
		if r := requireTaskID(action, params.TaskID); r != nil {
			return r, nil
		}
		if params.Index == nil {
			return toolError(action, "index is required for move action"), nil
		}
		res, err := a.MovePlanItem(params.TaskID, *params.Index)
		return fromResult(action, res, err)
	case PlanActionLock:
		res, err := a.LockPlan()
		return fromResult(action, res, err)
	case PlanActionUnlock:
		res, err := a.UnlockPlan()
		return fromResult(action, res, err)
	default: // rollover
		res, err := a.Rollover()
		return fromResult(action, res, err)
	}
}

// HandleInsightTool serves the read-only views.
func HandleInsightTool(ctx context.Context, a *app.PlanApp, params InsightToolParams) (*ToolResult, error) {
	action := string(params.Action)
	if !params.Action.IsValid() {
		return toolError(action, "invalid action %q, must be one of: suggestions, overdue, archive, stats, categories, calendar", params.Action), nil
	}

	limit := min(max(params.Limit, 0), 100)
	var content string
	switch params.Action {
	case InsightActionSuggestions:
		content = FormatTaskList("Suggestions", a.Suggestions(limit))
	case InsightActionOverdue:
		content = FormatTaskList("Overdue", a.Overdue())
	case InsightActionArchive:
		content = FormatArchive(a.Archive(limit))
	case InsightActionStats:
		content = FormatStats(a.Stats(params.Days))
	case InsightActionCategories:
		content = FormatCategories(a.Categories())
	default: // calendar
		if strings.TrimSpace(params.Date) == "" {
			return toolError(action, "date is required for calendar action"), nil
		}
		tasks, err := a.DayCell(params.Date)
		if err != nil {
			return toolError(action, "%v", err), nil
		}
		content = FormatTaskList("Due "+params.Date, tasks)
	}
	return &ToolResult{Action: action, Content: content}, nil
}
