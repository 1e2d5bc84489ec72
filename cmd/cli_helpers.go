package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// openAppFunc opens the planner for a command. Tests replace it with an
// in-memory app.
var openAppFunc = func() (*app.PlanApp, func(), error) {
	cfg := GetConfig()
	ctx, err := app.Open(app.Options{
		Storage:       cfg.Storage,
		SeedDir:       cfg.Seed.Dir,
		Suggestions:   cfg.View.Suggestions,
		HistogramDays: cfg.View.HistogramDays,
	})
	if err != nil {
		return nil, nil, err
	}
	return app.NewPlanApp(ctx), func() { _ = ctx.Close() }, nil
}

// withApp opens the planner, runs fn and closes it again.
func withApp(fn func(a *app.PlanApp) error) error {
	a, closeFn, err := openAppFunc()
	if err != nil {
		return fmt.Errorf("open planner: %w", err)
	}
	defer closeFn()
	return fn(a)
}

// emitResult prints res and turns a domain failure into errReported so the
// process exits non-zero without printing twice.
func emitResult(cmd *cobra.Command, res *app.Result, err error) error {
	if err != nil {
		return err
	}
	if isJSON() {
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		ui.RenderResult(cmd.OutOrStdout(), res)
	}
	if !res.Success {
		return errReported
	}
	return nil
}

// emitView prints v as JSON or hands it to render.
func emitView(cmd *cobra.Command, v any, render func(w io.Writer)) error {
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}
	render(cmd.OutOrStdout())
	return nil
}

// taskInputFlags registers the shared task form flags on cmd.
func taskInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("deadline", "d", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().String("desc", "", "description")
	cmd.Flags().StringP("urgency", "u", "", "urgency override: urgent/Rood, warning/Geel, safe/Groen (none clears)")
	cmd.Flags().StringP("type", "t", "", "task type (default overig)")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().String("duration", "", "duration: Kort, Middel or Lang")
	cmd.Flags().IntP("progress", "p", 0, "progress percentage (0-100)")
}

// taskInput collects the flags registered by taskInputFlags. Flags that were
// not set stay empty.
func taskInput(cmd *cobra.Command) app.TaskInput {
	str := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	in := app.TaskInput{
		Deadline:    str("deadline"),
		Description: str("desc"),
		Urgency:     str("urgency"),
		Type:        str("type"),
		Category:    str("category"),
		Duration:    str("duration"),
	}
	if cmd.Flags().Changed("title") {
		in.Title = str("title")
	}
	if cmd.Flags().Changed("progress") {
		p, _ := cmd.Flags().GetInt("progress")
		in.Progress = &p
	}
	return in
}
