/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task with a title and a deadline.

The color tier follows from the deadline unless --urgency pins it.`,
	Example: `  dayplan add "Essay hoofdstuk 2" -d 2025-03-14 --category school
  dayplan add "Boodschappen" -d 2025-03-11 -u Rood --duration Middel`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := taskInput(cmd)
		in.Title = strings.Join(args, " ")
		draft, err := in.Draft()
		if err != nil {
			return err
		}
		return withApp(func(a *app.PlanApp) error {
			res, err := a.AddTask(draft)
			return emitResult(cmd, res, err)
		})
	},
}

var doneCmd = &cobra.Command{
	Use:     "done <task_id>",
	Aliases: []string{"complete"},
	Short:   "Mark a task as done",
	Long:    `Archive a task. It leaves the open list, the day plan and the overdue list.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			res, err := a.CompleteTask(args[0])
			return emitResult(cmd, res, err)
		})
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone <task_id>",
	Short: "Clear the done flag of an open task",
	Long:  `Clear the done flag of an open task. Archived tasks stay archived.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			res, err := a.UncompleteTask(args[0])
			return emitResult(cmd, res, err)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <task_id>",
	Short: "Change fields of an open task",
	Example: `  dayplan update 3f2a --deadline 2025-03-20
  dayplan update 3f2a --urgency none --progress 40`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := taskInput(cmd)
		if in.Empty() {
			return errors.New("nothing to update: pass at least one field flag")
		}
		patch, err := in.Patch()
		if err != nil {
			return err
		}
		return withApp(func(a *app.PlanApp) error {
			res, err := a.UpdateTask(args[0], patch)
			return emitResult(cmd, res, err)
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Edit title, deadline and description",
	Long: `Edit the detail fields of a task. Blank title or deadline keep the current
value; the description is always replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		deadline, _ := cmd.Flags().GetString("deadline")
		desc, _ := cmd.Flags().GetString("desc")
		return withApp(func(a *app.PlanApp) error {
			res, err := a.SaveDetail(args[0], title, deadline, desc)
			return emitResult(cmd, res, err)
		})
	},
}

func init() {
	taskInputFlags(addCmd)
	_ = addCmd.MarkFlagRequired("deadline")

	taskInputFlags(updateCmd)
	updateCmd.Flags().String("title", "", "new title")

	editCmd.Flags().String("title", "", "title")
	editCmd.Flags().StringP("deadline", "d", "", "deadline (YYYY-MM-DD)")
	editCmd.Flags().String("desc", "", "description")

	rootCmd.AddCommand(addCmd, doneCmd, undoneCmd, updateCmd, editCmd)
}
