package mcp

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase capitalizes category names. A Caser keeps state, so one is made per call.
func titleCase(s string) string {
	return cases.Title(language.Dutch).String(s)
}

// FormatTaskList converts tasks into a compact Markdown list.
func FormatTaskList(title string, tasks []app.TaskView) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s (%d)\n", title, len(tasks)))
	if len(tasks) == 0 {
		sb.WriteString("\nNone.")
		return sb.String()
	}
	for i, t := range tasks {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, taskLine(t)))
	}
	return strings.TrimSpace(sb.String())
}

// taskLine: **Title** `id` due 2025-01-02 [Rood] werk/overig, 40%
func taskLine(t app.TaskView) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s** `%s` due %s [%s]", t.Title, t.ID, t.Deadline, t.TierLabel))
	var meta []string
	if t.Category != "" {
		meta = append(meta, titleCase(t.Category))
	}
	if t.Type != "" {
		meta = append(meta, t.Type)
	}
	if t.Duration != "" {
		meta = append(meta, string(t.Duration))
	}
	if len(meta) > 0 {
		sb.WriteString(" " + strings.Join(meta, "/"))
	}
	if t.Progress > 0 {
		sb.WriteString(fmt.Sprintf(", %d%%", t.Progress))
	}
	if t.Planned {
		sb.WriteString(" (planned)")
	}
	return sb.String()
}

// FormatResult converts an operation result into Markdown.
func FormatResult(res *app.Result) string {
	var sb strings.Builder
	sb.WriteString("✓ " + res.Message + "\n")
	if res.Task != nil {
		sb.WriteString("\n" + taskLine(*res.Task) + "\n")
		if res.Task.Description != "" {
			sb.WriteString("\n> " + res.Task.Description + "\n")
		}
	}
	if res.Plan != nil {
		sb.WriteString("\n" + formatPlanList(res.Plan) + "\n")
	}
	if res.Hint != "" {
		sb.WriteString("\n*" + res.Hint + "*\n")
	}
	return strings.TrimSpace(sb.String())
}

func formatPlanList(plan []app.TaskView) string {
	if len(plan) == 0 {
		return "Plan is empty."
	}
	var sb strings.Builder
	for i, t := range plan {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, taskLine(t)))
	}
	return strings.TrimSpace(sb.String())
}

// FormatSnapshot renders the day overview.
func FormatSnapshot(s app.Snapshot) string {
	var sb strings.Builder
	state := "open"
	if s.Locked {
		state = "locked"
	}
	sb.WriteString(fmt.Sprintf("## Plan for %s (%s)\n", s.Today, state))
	if s.HasUrgent {
		sb.WriteString("\n**There are urgent tasks.**\n")
	}
	sb.WriteString("\n" + formatPlanList(s.Plan) + "\n")
	if len(s.Overdue) > 0 {
		sb.WriteString("\n" + FormatTaskList("Overdue", s.Overdue) + "\n")
	}
	sb.WriteString("\n" + FormatTaskList("Suggestions", s.Suggestions))
	return strings.TrimSpace(sb.String())
}

// FormatArchive lists completed tasks newest first.
func FormatArchive(tasks []models.Task) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Archive (%d)\n", len(tasks)))
	if len(tasks) == 0 {
		sb.WriteString("\nEmpty.")
		return sb.String()
	}
	for _, t := range tasks {
		done := "?"
		if t.CompletedAt != nil {
			done = t.CompletedAt.Format("2006-01-02 15:04")
		}
		sb.WriteString(fmt.Sprintf("- **%s** `%s` completed %s (deadline %s)\n", t.Title, t.ID, done, t.Deadline))
	}
	return strings.TrimSpace(sb.String())
}

// FormatStats renders completion statistics with a text histogram.
func FormatStats(st planner.Stats) string {
	var sb strings.Builder
	sb.WriteString("## Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Completed**: %d\n", st.Completed))
	sb.WriteString(fmt.Sprintf("- **On time**: %d%%\n", st.OnTimePercent))
	sb.WriteString(fmt.Sprintf("- **Average time to complete**: %.1f h\n", st.AvgHours))
	if len(st.Histogram) > 0 {
		sb.WriteString("\n| Date | Completed |\n|---|---|\n")
		for _, d := range st.Histogram {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", d.Date, d.Count))
		}
	}
	return strings.TrimSpace(sb.String())
}

// FormatCategories renders the category counts.
func FormatCategories(cats []planner.CategoryCount) string {
	if len(cats) == 0 {
		return "No open tasks."
	}
	var sb strings.Builder
	sb.WriteString("## Categories\n\n")
	for _, c := range cats {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", titleCase(c.Category), c.Count))
	}
	return strings.TrimSpace(sb.String())
}

// === Error Formatters ===

// FormatError returns a standardized Markdown error message.
func FormatError(message string) string {
	return fmt.Sprintf("## ❌ Error\n\n**Details**: %s", message)
}
