package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/calendar"
	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// useMemoryApp points every command at one in-memory planner for the test.
func useMemoryApp(t *testing.T) *app.PlanApp {
	t.Helper()
	seq := 0
	ctx := app.NewMemoryContext(
		planner.WithClock(fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}),
		planner.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("task-%02d", seq)
		}),
	)
	a := app.NewPlanApp(ctx)
	prev := openAppFunc
	openAppFunc = func() (*app.PlanApp, func(), error) { return a, func() {}, nil }
	t.Cleanup(func() {
		openAppFunc = prev
		_ = ctx.Close()
	})
	return a
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with a throwaway config file.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".dayplan.yaml")
	cfgBody := fmt.Sprintf("storage:\n  backend: file\n  path: %s\n", filepath.Join(dir, "plan.json"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o644))

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return b.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	out, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "personal task planner")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "plan")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, version, GetVersion())
}

func TestInitConfig_LoadsFileAndDefaults(t *testing.T) {
	useMemoryApp(t)
	_, err := runCLI(t, "categories")
	require.NoError(t, err)
	cfg := GetConfig()
	assert.Equal(t, config.DefaultBackend, cfg.Storage.Backend)
	assert.Equal(t, "plan.json", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultSuggestions, cfg.View.Suggestions)
}

func TestAddListDone(t *testing.T) {
	a := useMemoryApp(t)

	out, err := runCLI(t, "add", "Essay", "hoofdstuk", "2", "-d", "2025-03-11", "--category", "school")
	require.NoError(t, err)
	assert.Contains(t, out, `Added task "Essay hoofdstuk 2"`)
	assert.Contains(t, out, "Rood")

	out, err = runCLI(t, "list", "--category", "school")
	require.NoError(t, err)
	assert.Contains(t, out, "Essay hoofdstuk 2")

	out, err = runCLI(t, "done", "task-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")
	assert.Len(t, a.Archive(0), 1)

	out, err = runCLI(t, "undone", "task-01")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "archived")
}

func TestAdd_RequiresDeadline(t *testing.T) {
	useMemoryApp(t)
	_, err := runCLI(t, "add", "Essay")
	assert.Error(t, err)
}

func TestAdd_InvalidDeadlineIsReported(t *testing.T) {
	a := useMemoryApp(t)
	_, err := runCLI(t, "add", "Essay", "-d", "morgen")
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, a.ListTasks(planner.TaskFilter{}))
}

func TestUpdate(t *testing.T) {
	a := useMemoryApp(t)
	_, err := runCLI(t, "add", "Essay", "-d", "2025-03-30")
	require.NoError(t, err)

	_, err = runCLI(t, "update", "task-01")
	assert.ErrorContains(t, err, "nothing to update")

	_, err = runCLI(t, "update", "task-01", "--progress", "40", "--urgency", "Geel")
	require.NoError(t, err)
	tasks := a.ListTasks(planner.TaskFilter{})
	require.Len(t, tasks, 1)
	assert.Equal(t, 40, tasks[0].Progress)
	assert.Equal(t, "Geel", tasks[0].TierLabel)
}

func TestPlanCommands(t *testing.T) {
	a := useMemoryApp(t)
	for _, title := range []string{"one", "two"} {
		_, err := runCLI(t, "add", title, "-d", "2025-03-30")
		require.NoError(t, err)
	}

	_, err := runCLI(t, "plan", "add", "task-01", "task-02")
	require.NoError(t, err)
	_, err = runCLI(t, "plan", "move", "task-02", "1")
	require.NoError(t, err)

	plan := a.PlanView()
	require.Len(t, plan, 2)
	assert.Equal(t, "task-02", plan[0].ID)

	_, err = runCLI(t, "plan", "move", "task-02", "zero")
	assert.ErrorContains(t, err, "position")

	_, err = runCLI(t, "plan", "lock")
	require.NoError(t, err)
	out, err := runCLI(t, "plan", "remove", "task-01")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "locked")

	out, err = runCLI(t, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan for 2025-03-10")
	assert.Contains(t, out, "locked")
}

func TestJSONOutput(t *testing.T) {
	useMemoryApp(t)
	_, err := runCLI(t, "add", "Essay", "-d", "2025-03-12")
	require.NoError(t, err)

	out, err := runCLI(t, "--json", "suggest")
	require.NoError(t, err)
	var views []app.TaskView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "warning", string(views[0].Tier))
}

func TestNotePromoteWithDeadline(t *testing.T) {
	a := useMemoryApp(t)
	_, err := runCLI(t, "note", "add", "--category", "thuis", "fiets", "repareren")
	require.NoError(t, err)
	notes := a.Notes()
	require.Len(t, notes, 1)

	out, err := runCLI(t, "note", "promote", notes[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Draft ready")
	assert.Empty(t, a.ListTasks(planner.TaskFilter{}))

	_, err = runCLI(t, "note", "promote", notes[0].ID, "-d", "2025-03-20")
	require.NoError(t, err)
	tasks := a.ListTasks(planner.TaskFilter{})
	require.Len(t, tasks, 1)
	assert.Equal(t, "thuis", tasks[0].Category)
	assert.Len(t, a.Notes(), 1)
}

func TestArchiveExport(t *testing.T) {
	useMemoryApp(t)
	_, err := runCLI(t, "add", "Essay", "-d", "2025-03-12")
	require.NoError(t, err)
	_, err = runCLI(t, "done", "task-01")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "archive.yaml")
	out, err := runCLI(t, "archive", "--export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Essay")
}

func TestDayAndClassify(t *testing.T) {
	useMemoryApp(t)
	_, err := runCLI(t, "day", "10-03-2025")
	assert.ErrorIs(t, err, planner.ErrValidation)

	out, err := runCLI(t, "classify", "2025-03-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Groen")

	out, err = runCLI(t, "classify", "2025-03-20", "-u", "urgent")
	require.NoError(t, err)
	assert.Contains(t, out, "Rood")
}

func TestServerOptions_WatchOnlyFileBackend(t *testing.T) {
	useMemoryApp(t)
	_, err := runCLI(t, "categories")
	require.NoError(t, err)

	GlobalAppConfig.Server.Watch = true
	opts := serverOptions(serveCmd)
	assert.Equal(t, GlobalAppConfig.Storage.Path, opts.WatchPath)
	assert.Equal(t, config.DefaultServerHost, opts.Host)

	GlobalAppConfig.Storage.Backend = "sqlite"
	opts = serverOptions(serveCmd)
	assert.Empty(t, opts.WatchPath)
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, userMessage(calendar.ErrPlanNotLocked), "plan lock")
	assert.Contains(t, userMessage(fmt.Errorf("x: %w", app.ErrAmbiguousID)), "more than one")
	assert.Equal(t, "Error: boom", userMessage(errors.New("boom")))
}
