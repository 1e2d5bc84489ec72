/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show and edit today's plan",
	Long: `Show today's plan together with overdue tasks and suggestions.

The plan can only be changed while it is unlocked. Locking stamps today's date
on every planned task.`,
	Args: cobra.NoArgs,
	RunE: runPlanShow,
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.PlanApp) error {
		if a.Context().RolledOver && !isJSON() {
			cmd.Println(ui.StyleWarning.Render("New day: yesterday's unfinished tasks were moved to overdue."))
		}
		snap := a.Snapshot()
		return emitView(cmd, snap, func(w io.Writer) { ui.RenderSnapshot(w, snap) })
	})
}

var planAddCmd = &cobra.Command{
	Use:   "add <task_id>...",
	Short: "Add tasks to the end of the plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			var (
				res *app.Result
				err error
			)
			for _, ref := range args {
				res, err = a.AddToPlan(ref)
				if err != nil || !res.Success {
					break
				}
			}
			return emitResult(cmd, res, err)
		})
	},
}

var planRemoveCmd = &cobra.Command{
	Use:     "remove <task_id>",
	Aliases: []string{"rm"},
	Short:   "Take a task out of the plan",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			res, err := a.RemoveFromPlan(args[0])
			return emitResult(cmd, res, err)
		})
	},
}

var planMoveCmd = &cobra.Command{
	Use:   "move <task_id> <position>",
	Short: "Move a task to a position in the plan",
	Long: `Move a task to a 1-based position. A task that is not planned yet is
inserted there. Positions past the end append.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 1 {
			return fmt.Errorf("position must be a number of 1 or more, got %q", args[1])
		}
		return withApp(func(a *app.PlanApp) error {
			res, err := a.MovePlanItem(args[0], pos-1)
			return emitResult(cmd, res, err)
		})
	},
}

var planLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock the plan for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			res, err := a.LockPlan()
			return emitResult(cmd, res, err)
		})
	},
}

var planUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock the plan for editing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			res, err := a.UnlockPlan()
			return emitResult(cmd, res, err)
		})
	},
}

var planEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Arrange the plan interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return errors.New("plan edit needs an interactive terminal; use plan add/move/remove instead")
		}
		return withApp(ui.RunPlanBoard)
	},
}

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Start a new day if the date changed",
	Long: `Move unfinished plan tasks to overdue when the calendar day changed since
the plan was last touched. Every command already does this on start, so this
mostly reports the outcome.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			if a.Context().RolledOver {
				n := len(a.Overdue())
				return emitResult(cmd, &app.Result{
					Success: true,
					Message: fmt.Sprintf("New day: %d task(s) overdue", n),
				}, nil)
			}
			res, err := a.Rollover()
			return emitResult(cmd, res, err)
		})
	},
}

func init() {
	planCmd.AddCommand(planAddCmd, planRemoveCmd, planMoveCmd, planLockCmd, planUnlockCmd, planEditCmd)
	rootCmd.AddCommand(planCmd, rolloverCmd)
}
