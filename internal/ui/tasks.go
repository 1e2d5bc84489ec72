package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
)

const titleWidth = 48

// TaskTable builds the standard task table.
func TaskTable(tasks []app.TaskView) *Table {
	t := &Table{Headers: []string{"", "ID", "Title", "Deadline", "Category", "Type", "Duration", "%"}}
	for _, v := range tasks {
		title := Truncate(v.Title, titleWidth)
		if v.Planned {
			title = "▸ " + title
		}
		t.Rows = append(t.Rows, []string{
			TierDot(v.Tier),
			TruncateID(v.ID),
			title,
			v.Deadline,
			v.Category,
			v.Type,
			string(v.Duration),
			fmt.Sprintf("%d", v.Progress),
		})
	}
	return t
}

// RenderTasks writes a titled task table, or an empty-state line.
func RenderTasks(w io.Writer, title string, tasks []app.TaskView) {
	fmt.Fprintln(w, StyleSectionTitle.Render(title))
	if len(tasks) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("  (none)"))
		return
	}
	fmt.Fprint(w, TaskTable(tasks).Render())
}

// RenderPlan writes the day plan as a numbered list.
func RenderPlan(w io.Writer, today string, locked bool, plan []app.TaskView) {
	header := fmt.Sprintf("Plan for %s", today)
	if locked {
		header += " " + Icon("🔒 locked", StyleSuccess)
	}
	fmt.Fprintln(w, StyleSectionTitle.Render(header))
	if len(plan) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("  Nothing planned yet. Add tasks with `dayplan plan add <id>`."))
		return
	}
	for i, v := range plan {
		fmt.Fprintf(w, " %2d. %s %s %s\n", i+1, TierDot(v.Tier), StyleTitle.Render(v.Title),
			StyleSubtle.Render(fmt.Sprintf("[%s] due %s", TruncateID(v.ID), v.Deadline)))
	}
}

// RenderSnapshot writes the full day view.
func RenderSnapshot(w io.Writer, s app.Snapshot) {
	if s.HasUrgent {
		fmt.Fprintln(w, StyleAlertBox.Render(Icon("!", StyleError)+" You have urgent tasks."))
	}
	RenderPlan(w, s.Today, s.Locked, s.Plan)
	fmt.Fprintln(w)
	if len(s.Overdue) > 0 {
		RenderTasks(w, "Overdue", s.Overdue)
		fmt.Fprintln(w)
	}
	RenderTasks(w, "Suggestions", s.Suggestions)
	if s.Notes > 0 {
		fmt.Fprintln(w, StyleSubtle.Render(fmt.Sprintf("\n %d note(s). See `dayplan notes list`.", s.Notes)))
	}
}

// RenderArchive lists completed tasks with their completion time.
func RenderArchive(w io.Writer, tasks []models.Task) {
	fmt.Fprintln(w, StyleSectionTitle.Render("Archive"))
	if len(tasks) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("  (empty)"))
		return
	}
	t := &Table{Headers: []string{"Completed", "Title", "Deadline", "Category"}}
	for _, task := range tasks {
		done := ""
		if task.CompletedAt != nil {
			done = task.CompletedAt.Format("2006-01-02 15:04")
		}
		t.Rows = append(t.Rows, []string{done, Truncate(task.Title, titleWidth), task.Deadline, task.Category})
	}
	fmt.Fprint(w, t.Render())
}

// RenderCategories writes the category overview.
func RenderCategories(w io.Writer, cats []planner.CategoryCount) {
	fmt.Fprintln(w, StyleSectionTitle.Render("Categories"))
	if len(cats) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("  (none)"))
		return
	}
	t := &Table{Headers: []string{"Category", "Open"}}
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{c.Category, fmt.Sprintf("%d", c.Count)})
	}
	fmt.Fprint(w, t.Render())
}

// RenderStats writes the archive statistics with a bar per histogram day.
func RenderStats(w io.Writer, st planner.Stats) {
	fmt.Fprintln(w, StyleSectionTitle.Render("Statistics"))
	fmt.Fprintf(w, " Completed:        %d\n", st.Completed)
	fmt.Fprintf(w, " On time:          %d%%\n", st.OnTimePercent)
	fmt.Fprintf(w, " Avg. to complete: %.1f h\n\n", st.AvgHours)

	peak := 0
	for _, d := range st.Histogram {
		peak = max(peak, d.Count)
	}
	for _, d := range st.Histogram {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("▇", d.Count*20/peak)
		}
		fmt.Fprintf(w, " %s %s %d\n", StyleSubtle.Render(d.Date), StylePrimary.Render(bar), d.Count)
	}
}

// RenderNotes lists notes in the order they were written.
func RenderNotes(w io.Writer, notes []models.Note) {
	fmt.Fprintln(w, StyleSectionTitle.Render("Notes"))
	if len(notes) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("  (none)"))
		return
	}
	for _, n := range notes {
		head := n.Title
		if head == "" {
			head = Truncate(n.Text, 40)
		}
		fmt.Fprintf(w, " • %s %s\n", StyleTitle.Render(head), StyleSubtle.Render("["+TruncateID(n.ID)+"]"))
		if n.Category != "" {
			fmt.Fprintf(w, "   %s\n", StyleSubtle.Render(n.Category))
		}
		if n.Title != "" && n.Text != "" {
			fmt.Fprintf(w, "   %s\n", n.Text)
		}
	}
}

// RenderResult prints the outcome of an operation.
func RenderResult(w io.Writer, r *app.Result) {
	if r.Success {
		fmt.Fprintf(w, "%s %s\n", Icon("✓", StyleSuccess), r.Message)
	} else {
		fmt.Fprintf(w, "%s %s\n", Icon("✗", StyleError), r.Message)
	}
	if r.Task != nil {
		fmt.Fprintf(w, "  %s %s %s\n", TierDot(r.Task.Tier), r.Task.Title,
			StyleSubtle.Render(fmt.Sprintf("[%s] due %s, %s", TruncateID(r.Task.ID), r.Task.Deadline, r.Task.TierLabel)))
	}
	if r.Draft != nil {
		fmt.Fprintf(w, "  Title:    %s\n  Category: %s\n", r.Draft.Title, r.Draft.Category)
	}
	if r.Hint != "" {
		fmt.Fprintln(w, StyleSubtle.Render("  "+r.Hint))
	}
}
