package planner

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/josephgoksu/dayplan/internal/ordering"
	"github.com/josephgoksu/dayplan/internal/urgency"
	"github.com/josephgoksu/dayplan/models"
)

const (
	// DefaultSuggestions is the size of the suggestion list.
	DefaultSuggestions = 8
	// UncategorizedLabel stands in for a blank category.
	UncategorizedLabel = "Ongecategoriseerd"
	// DefaultHistogramDays is the window of the completion histogram.
	DefaultHistogramDays = 7
)

// openTasks returns tasks still to do. Callers must hold p.mu.
func (p *Planner) openTasks() []models.Task {
	out := make([]models.Task, 0, len(p.state.Tasks))
	for _, t := range p.state.Tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return cloneTasks(out)
}

// Classify is urgency.Classify at the planner's clock.
func (p *Planner) Classify(t models.Task) models.Tier {
	return urgency.Classify(t, p.clock.Now())
}

// Suggestions returns the first limit open tasks in policy order.
func (p *Planner) Suggestions(limit int) []models.Task {
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	tasks := p.openTasks()
	ordering.Sort(tasks, p.clock.Now())
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks
}

// TaskFilter narrows a task list. Empty fields match everything.
type TaskFilter struct {
	Category string      `json:"category,omitempty"`
	Type     string      `json:"type,omitempty"`
	Tier     models.Tier `json:"tier,omitempty"`
}

// Filter returns open tasks matching f in policy order.
func (p *Planner) Filter(f TaskFilter) []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.clock.Now()
	out := slices.DeleteFunc(p.openTasks(), func(t models.Task) bool {
		if f.Category != "" && t.Category != f.Category {
			return true
		}
		if f.Type != "" && t.Type != f.Type {
			return true
		}
		return f.Tier != "" && urgency.Classify(t, now) != f.Tier
	})
	ordering.Sort(out, now)
	return out
}

// CategoryCount is one row of the category overview.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Categories counts open tasks per category, sorted by name.
func (p *Planner) Categories() []CategoryCount {
	p.mu.Lock()
	defer p.mu.Unlock()
	counts := map[string]int{}
	for _, t := range p.openTasks() {
		name := strings.TrimSpace(t.Category)
		if name == "" {
			name = UncategorizedLabel
		}
		counts[name]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Category: name, Count: n})
	}
	slices.SortFunc(out, func(a, b CategoryCount) int { return strings.Compare(a.Category, b.Category) })
	return out
}

// DayCell lists the open tasks due on date (YYYY-MM-DD) in policy order.
func (p *Planner) DayCell(date string) []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := slices.DeleteFunc(p.openTasks(), func(t models.Task) bool { return t.Deadline != date })
	ordering.Sort(out, p.clock.Now())
	return out
}

// HasUrgent reports whether any open task is in the urgent tier.
func (p *Planner) HasUrgent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.clock.Now()
	return slices.ContainsFunc(p.openTasks(), func(t models.Task) bool {
		return urgency.Classify(t, now) == models.TierUrgent
	})
}

// OverdueTasks maps the overdue set onto open tasks in policy order.
func (p *Planner) OverdueTasks() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Task, 0, len(p.state.OverdueIDs))
	for _, id := range p.state.OverdueIDs {
		if i := indexOfTask(p.state.Tasks, id); i >= 0 && !p.state.Tasks[i].Done {
			out = append(out, p.state.Tasks[i])
		}
	}
	out = cloneTasks(out)
	ordering.Sort(out, p.clock.Now())
	return out
}

// ArchiveNewestFirst returns the archive with the latest completion first.
func (p *Planner) ArchiveNewestFirst() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := cloneTasks(p.state.Archive)
	slices.Reverse(out)
	return out
}

// DayCount is one bar of the completion histogram.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats summarizes the archive.
type Stats struct {
	Completed     int        `json:"completed"`
	OnTimePercent int        `json:"onTimePercent"`
	AvgHours      float64    `json:"avgHours"`
	Histogram     []DayCount `json:"histogram"`
}

// Stats computes completion metrics. A task counts as on time when it was
// completed no later than the last second of its deadline day.
func (p *Planner) Stats(days int) Stats {
	if days <= 0 {
		days = DefaultHistogramDays
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	loc := now.Location()
	st := Stats{Completed: len(p.state.Archive)}

	var withDeadline, onTime int
	var hours []float64
	perDay := map[string]int{}
	for _, t := range p.state.Archive {
		if t.CompletedAt == nil {
			continue
		}
		done := t.CompletedAt.In(loc)
		perDay[models.FormatDate(done)]++
		if deadline, err := t.DeadlineTime(loc); err == nil {
			withDeadline++
			if !done.After(endOfDay(deadline)) {
				onTime++
			}
		}
		if !t.CreatedAt.IsZero() {
			hours = append(hours, t.CompletedAt.Sub(t.CreatedAt).Hours())
		}
	}
	if withDeadline > 0 {
		st.OnTimePercent = int(math.Round(float64(onTime) * 100 / float64(withDeadline)))
	}
	if len(hours) > 0 {
		var sum float64
		for _, h := range hours {
			sum += h
		}
		st.AvgHours = math.Round(sum/float64(len(hours))*10) / 10
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	for i := days - 1; i >= 0; i-- {
		date := models.FormatDate(start.AddDate(0, 0, -i))
		st.Histogram = append(st.Histogram, DayCount{Date: date, Count: perDay[date]})
	}
	return st
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}
