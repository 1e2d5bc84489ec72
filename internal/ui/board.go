package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/dayplan/internal/app"
)

type boardPane int

const (
	panePlan boardPane = iota
	paneSuggestions
)

type boardKeys struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Switch   key.Binding
	Add      key.Binding
	Drop     key.Binding
	Remove   key.Binding
	Complete key.Binding
	Lock     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Add, k.MoveUp, k.MoveDown, k.Lock, k.Help, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Add, k.Drop, k.Remove, k.Complete},
		{k.MoveUp, k.MoveDown, k.Lock},
		{k.Help, k.Quit},
	}
}

var defaultBoardKeys = boardKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move down")),
	Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
	Add:      key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("a", "add to plan")),
	Drop:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert at plan cursor")),
	Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Complete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
	Lock:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lock/unlock")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// PlanBoard is the interactive plan editor: the day plan on the left,
// suggestions and overdue tasks on the right.
type PlanBoard struct {
	app    *app.PlanApp
	keys   boardKeys
	help   help.Model
	snap   app.Snapshot
	focus  boardPane
	cursor [2]int
	status string
	err    error
	width  int
}

// NewPlanBoard loads the current snapshot.
func NewPlanBoard(a *app.PlanApp) PlanBoard {
	b := PlanBoard{app: a, keys: defaultBoardKeys, help: help.New()}
	b.refresh()
	return b
}

// Err is the storage error that ended the session, if any.
func (b PlanBoard) Err() error { return b.err }

func (b *PlanBoard) refresh() {
	b.snap = b.app.Snapshot()
	b.cursor[panePlan] = clampCursor(b.cursor[panePlan], len(b.snap.Plan))
	b.cursor[paneSuggestions] = clampCursor(b.cursor[paneSuggestions], len(b.candidates()))
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(c, 0), n-1)
}

// candidates is the right pane: overdue first, then suggestions not already listed.
func (b PlanBoard) candidates() []app.TaskView {
	seen := map[string]bool{}
	var out []app.TaskView
	for _, list := range [][]app.TaskView{b.snap.Overdue, b.snap.Suggestions} {
		for _, v := range list {
			if seen[v.ID] || v.Planned {
				continue
			}
			seen[v.ID] = true
			out = append(out, v)
		}
	}
	return out
}

func (b PlanBoard) selected() (app.TaskView, bool) {
	list := b.snap.Plan
	if b.focus == paneSuggestions {
		list = b.candidates()
	}
	i := b.cursor[b.focus]
	if i < 0 || i >= len(list) {
		return app.TaskView{}, false
	}
	return list[i], true
}

func (b PlanBoard) Init() tea.Cmd { return nil }

func (b PlanBoard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.help.Width = msg.Width
		return b, nil
	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

func (b PlanBoard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	case key.Matches(msg, b.keys.Switch):
		b.focus = 1 - b.focus
	case key.Matches(msg, b.keys.MoveUp):
		b.move(-1)
	case key.Matches(msg, b.keys.MoveDown):
		b.move(1)
	case key.Matches(msg, b.keys.Up):
		b.cursor[b.focus] = max(b.cursor[b.focus]-1, 0)
	case key.Matches(msg, b.keys.Down):
		b.cursor[b.focus]++
		b.refresh()
	case key.Matches(msg, b.keys.Add):
		if t, ok := b.selected(); ok && b.focus == paneSuggestions {
			b.apply(b.app.AddToPlan(t.ID))
		}
	case key.Matches(msg, b.keys.Drop):
		if t, ok := b.selected(); ok && b.focus == paneSuggestions {
			b.apply(b.app.MovePlanItem(t.ID, b.cursor[panePlan]))
		}
	case key.Matches(msg, b.keys.Remove):
		if t, ok := b.selected(); ok && b.focus == panePlan {
			b.apply(b.app.RemoveFromPlan(t.ID))
		}
	case key.Matches(msg, b.keys.Complete):
		if t, ok := b.selected(); ok {
			b.apply(b.app.CompleteTask(t.ID))
		}
	case key.Matches(msg, b.keys.Lock):
		if b.snap.Locked {
			b.apply(b.app.UnlockPlan())
		} else {
			b.apply(b.app.LockPlan())
		}
	}
	if b.err != nil {
		return b, tea.Quit
	}
	return b, nil
}

func (b *PlanBoard) move(delta int) {
	t, ok := b.selected()
	if !ok || b.focus != panePlan {
		return
	}
	target := b.cursor[panePlan] + delta
	if target < 0 || target >= len(b.snap.Plan) {
		return
	}
	if b.apply(b.app.MovePlanItem(t.ID, target)) {
		b.cursor[panePlan] = target
	}
}

// apply records the outcome of an operation and reloads the snapshot.
func (b *PlanBoard) apply(res *app.Result, err error) bool {
	if err != nil {
		b.err = err
		return false
	}
	if res.Success {
		b.status = "✓ " + res.Message
	} else {
		b.status = "✗ " + res.Message
		if res.Hint != "" {
			b.status += " " + res.Hint
		}
	}
	b.refresh()
	return res.Success
}

func (b PlanBoard) View() string {
	colWidth := 44
	if b.width > 0 {
		colWidth = max((b.width-4)/2, 24)
	}

	planTitle := fmt.Sprintf("Plan %s", b.snap.Today)
	if b.snap.Locked {
		planTitle += " 🔒"
	}
	left := b.renderPane(planTitle, b.snap.Plan, panePlan, colWidth)
	right := b.renderPane("Suggestions", b.candidates(), paneSuggestions, colWidth)

	var s strings.Builder
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	s.WriteString("\n")
	if b.status != "" {
		style := StyleSuccess
		if strings.HasPrefix(b.status, "✗") {
			style = StyleError
		}
		s.WriteString(style.Render(b.status) + "\n")
	}
	s.WriteString(b.help.View(b.keys))
	return s.String()
}

func (b PlanBoard) renderPane(title string, tasks []app.TaskView, pane boardPane, width int) string {
	var s strings.Builder
	head := StyleSubtle.Render(title)
	if b.focus == pane {
		head = StyleSectionTitle.Render(title)
	}
	s.WriteString(head + "\n")
	if len(tasks) == 0 {
		s.WriteString(StyleSubtle.Render("(empty)"))
	}
	for i, t := range tasks {
		prefix := "  "
		line := Truncate(t.Title, width-14)
		if b.focus == pane && i == b.cursor[pane] {
			prefix = StyleCursor.Render("> ")
			line = StyleCursor.Render(line)
		}
		s.WriteString(fmt.Sprintf("%s%s %s %s\n", prefix, TierDot(t.Tier), line, StyleSubtle.Render(t.Deadline[min(5, len(t.Deadline)):])))
	}
	return lipgloss.NewStyle().Width(width).Render(s.String())
}

// RunPlanBoard runs the board until the user quits.
func RunPlanBoard(a *app.PlanApp) error {
	final, err := tea.NewProgram(NewPlanBoard(a)).Run()
	if err != nil {
		return fmt.Errorf("plan board: %w", err)
	}
	return final.(PlanBoard).Err()
}
