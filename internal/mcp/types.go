// Package mcp exposes the planner to AI assistants over the Model Context
// Protocol: parameter types, tool handlers and Markdown formatting.
package mcp

// === Action Constants ===

// TaskAction defines the valid actions for the task tool.
type TaskAction string

const (
	TaskActionAdd        TaskAction = "add"
	TaskActionComplete   TaskAction = "complete"
	TaskActionUncomplete TaskAction = "uncomplete"
	TaskActionUpdate     TaskAction = "update"
	TaskActionList       TaskAction = "list"
)

// ValidTaskActions returns all valid task actions.
func ValidTaskActions() []TaskAction {
	return []TaskAction{TaskActionAdd, TaskActionComplete, TaskActionUncomplete, TaskActionUpdate, TaskActionList}
}

// IsValid checks if the action is a valid task action.
func (a TaskAction) IsValid() bool {
	switch a {
	case TaskActionAdd, TaskActionComplete, TaskActionUncomplete, TaskActionUpdate, TaskActionList:
		return true
	}
	return false
}

// PlanAction defines the valid actions for the plan tool.
type PlanAction string

const (
	PlanActionShow     PlanAction = "show"
	PlanActionAdd      PlanAction = "add"
	PlanActionRemove   PlanAction = "remove"
	PlanActionMove     PlanAction = "move"
	PlanActionLock     PlanAction = "lock"
	PlanActionUnlock   PlanAction = "unlock"
	PlanActionRollover PlanAction = "rollover"
)

// ValidPlanActions returns all valid plan actions.
func ValidPlanActions() []PlanAction {
	return []PlanAction{PlanActionShow, PlanActionAdd, PlanActionRemove, PlanActionMove, PlanActionLock, PlanActionUnlock, PlanActionRollover}
}

// IsValid checks if the action is a valid plan action.
func (a PlanAction) IsValid() bool {
	switch a {
	case PlanActionShow, PlanActionAdd, PlanActionRemove, PlanActionMove, PlanActionLock, PlanActionUnlock, PlanActionRollover:
		return true
	}
	return false
}

// InsightAction defines the valid actions for the read-only insight tool.
type InsightAction string

const (
	InsightActionSuggestions InsightAction = "suggestions"
	InsightActionOverdue     InsightAction = "overdue"
	InsightActionArchive     InsightAction = "archive"
	InsightActionStats       InsightAction = "stats"
	InsightActionCategories  InsightAction = "categories"
	InsightActionCalendar    InsightAction = "calendar"
)

// ValidInsightActions returns all valid insight actions.
func ValidInsightActions() []InsightAction {
	return []InsightAction{InsightActionSuggestions, InsightActionOverdue, InsightActionArchive, InsightActionStats, InsightActionCategories, InsightActionCalendar}
}

// IsValid checks if the action is a valid insight action.
func (a InsightAction) IsValid() bool {
	switch a {
	case InsightActionSuggestions, InsightActionOverdue, InsightActionArchive, InsightActionStats, InsightActionCategories, InsightActionCalendar:
		return true
	}
	return false
}

// === Tool Parameters ===

// TaskToolParams defines the parameters for the task tool.
type TaskToolParams struct {
	// Action specifies which operation to perform.
	// Required. One of: add, complete, uncomplete, update, list
	Action TaskAction `json:"action"`

	// TaskID is the task id or a unique prefix of it.
	// Required for: complete, uncomplete, update
	TaskID string `json:"task_id,omitempty"`

	// Required for: add. Optional for: update
	Title    string `json:"title,omitempty"`
	Deadline string `json:"deadline,omitempty"` // YYYY-MM-DD

	// Optional for: add, update
	Description string `json:"description,omitempty"`
	Urgency     string `json:"urgency,omitempty"` // urgent|warning|safe, Rood|Geel|Groen, or "none" to clear
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Duration    string `json:"duration,omitempty"` // Kort|Middel|Lang
	Progress    *int   `json:"progress,omitempty"`

	// Filters for: list
	Tier string `json:"tier,omitempty"`
}

// PlanToolParams defines the parameters for the plan tool.
type PlanToolParams struct {
	// Action specifies which operation to perform.
	// Required. One of: show, add, remove, move, lock, unlock, rollover
	Action PlanAction `json:"action"`

	// TaskID is the task id or a unique prefix of it.
	// Required for: add, remove, move
	TaskID string `json:"task_id,omitempty"`

	// Index is the zero-based target position.
	// Required for: move
	Index *int `json:"index,omitempty"`
}

// InsightToolParams defines the parameters for the insight tool.
type InsightToolParams struct {
	// Action specifies which view to return.
	// Required. One of: suggestions, overdue, archive, stats, categories, calendar
	Action InsightAction `json:"action"`

	// Limit caps suggestions and archive.
	Limit int `json:"limit,omitempty"`

	// Days is the stats histogram window.
	Days int `json:"days,omitempty"`

	// Date is the calendar day (YYYY-MM-DD). Required for: calendar
	Date string `json:"date,omitempty"`
}
