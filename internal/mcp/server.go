package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/dayplan/internal/app"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// markdownResponse wraps Markdown content in an MCP tool result.
func markdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

// errorResponse reports a failure to the client as a tool error.
func errorResponse(message string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: FormatError(message)}},
		IsError: true,
	}, nil
}

func respond(result *ToolResult, err error) (*mcpsdk.CallToolResultFor[any], error) {
	if err != nil {
		slog.Error("mcp tool failed", "error", err)
		return errorResponse(err.Error())
	}
	if result.Error != "" {
		return errorResponse(result.Error)
	}
	return markdownResponse(result.Content)
}

// NewServer builds an MCP server with the task, plan and insight tools.
func NewServer(a *app.PlanApp, version string) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "dayplan-mcp",
		Version: version,
	}
	opts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			slog.Info("mcp client initialized")
		},
	}
	server := mcpsdk.NewServer(impl, opts)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: "task",
		Description: `Manage tasks. Use action parameter to select operation:
- add: Create a task (title and deadline YYYY-MM-DD required)
- complete: Archive a task
- uncomplete: Clear the done flag of an open task (archived tasks cannot be reopened)
- update: Change fields of an open task
- list: Open tasks in urgency order, filtered by category, type or tier

Tiers: urgent (Rood), warning (Geel), safe (Groen). Durations: Kort, Middel, Lang.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[TaskToolParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return respond(HandleTaskTool(ctx, a, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: "plan",
		Description: `Manage today's plan. Use action parameter to select operation:
- show: Today's plan, overdue tasks and suggestions
- add / remove: Put a task in or take it out of the plan (task_id required)
- move: Move a task to a zero-based index; unplanned tasks are inserted there
- lock / unlock: Commit the plan for today, or reopen it for editing
- rollover: Move yesterday's unfinished plan to overdue`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[PlanToolParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return respond(HandlePlanTool(ctx, a, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: "insight",
		Description: `Read-only views. Use action parameter to select one:
- suggestions: The most pressing open tasks (limit optional)
- overdue: Tasks carried over from earlier days
- archive: Completed tasks, newest first (limit optional)
- stats: Completion count, on-time rate, average hours and a per-day histogram (days optional)
- categories: Open task count per category
- calendar: Open tasks due on date (YYYY-MM-DD required)`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[InsightToolParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return respond(HandleInsightTool(ctx, a, params.Arguments))
	})

	return server
}

// Serve runs the server over stdio until the client disconnects.
func Serve(ctx context.Context, server *mcpsdk.Server) error {
	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
