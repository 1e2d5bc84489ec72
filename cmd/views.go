/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List open tasks in urgency order",
	Example: `  dayplan list --category school
  dayplan list --tier Rood`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		taskType, _ := cmd.Flags().GetString("type")
		tierFlag, _ := cmd.Flags().GetString("tier")
		tier, err := app.ParseTier(tierFlag)
		if err != nil {
			return err
		}
		return withApp(func(a *app.PlanApp) error {
			tasks := a.ListTasks(planner.TaskFilter{Category: category, Type: taskType, Tier: tier})
			return emitView(cmd, tasks, func(w io.Writer) { ui.RenderTasks(w, "Tasks", tasks) })
		})
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the most pressing tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(func(a *app.PlanApp) error {
			tasks := a.Suggestions(limit)
			return emitView(cmd, tasks, func(w io.Writer) { ui.RenderTasks(w, "Suggestions", tasks) })
		})
	},
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Show tasks left unfinished on an earlier day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			tasks := a.Overdue()
			return emitView(cmd, tasks, func(w io.Writer) { ui.RenderTasks(w, "Overdue", tasks) })
		})
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Show completed tasks, newest first",
	Example: `  dayplan archive --limit 20
  dayplan archive --export done.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		export, _ := cmd.Flags().GetString("export")
		return withApp(func(a *app.PlanApp) error {
			tasks := a.Archive(limit)
			if export != "" {
				if err := store.ExportArchive(afero.NewOsFs(), export, tasks); err != nil {
					return err
				}
				return emitResult(cmd, &app.Result{
					Success: true,
					Message: fmt.Sprintf("Exported %d archived task(s) to %s", len(tasks), export),
				}, nil)
			}
			return emitView(cmd, tasks, func(w io.Writer) { ui.RenderArchive(w, tasks) })
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Count open tasks per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			cats := a.Categories()
			return emitView(cmd, cats, func(w io.Writer) { ui.RenderCategories(w, cats) })
		})
	},
}

var dayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Show open tasks due on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			tasks, err := a.DayCell(args[0])
			if err != nil {
				return err
			}
			return emitView(cmd, tasks, func(w io.Writer) { ui.RenderTasks(w, "Due "+args[0], tasks) })
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return withApp(func(a *app.PlanApp) error {
			st := a.Stats(days)
			return emitView(cmd, st, func(w io.Writer) { ui.RenderStats(w, st) })
		})
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <deadline>",
	Short: "Show the tier a deadline would get today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		override, _ := cmd.Flags().GetString("urgency")
		return withApp(func(a *app.PlanApp) error {
			c, err := a.Classify(args[0], override)
			if err != nil {
				return err
			}
			return emitView(cmd, c, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s %s\n", ui.TierDot(c.Tier), ui.TierStyle(c.Tier).Render(c.Label),
					ui.StyleSubtle.Render(fmt.Sprintf("(%.1f days left)", c.DaysRemaining)))
			})
		})
	},
}

func init() {
	listCmd.Flags().String("category", "", "only this category")
	listCmd.Flags().StringP("type", "t", "", "only this type")
	listCmd.Flags().String("tier", "", "only this tier (urgent/Rood, warning/Geel, safe/Groen)")

	suggestCmd.Flags().IntP("limit", "n", 0, "number of suggestions (default from config)")
	archiveCmd.Flags().IntP("limit", "n", 0, "show at most this many")
	archiveCmd.Flags().String("export", "", "write the archive to a .json, .yaml or .toml file")
	statsCmd.Flags().Int("days", 0, "histogram window in days (default from config)")
	classifyCmd.Flags().StringP("urgency", "u", "", "urgency override")

	rootCmd.AddCommand(listCmd, suggestCmd, overdueCmd, archiveCmd, categoriesCmd, dayCmd, statsCmd, classifyCmd)
}
