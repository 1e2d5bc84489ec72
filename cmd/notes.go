/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"io"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes"},
	Short:   "Keep scratch notes and turn them into tasks",
	Args:    cobra.NoArgs,
	RunE:    runNoteList,
}

func runNoteList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.PlanApp) error {
		notes := a.Notes()
		return emitView(cmd, notes, func(w io.Writer) { ui.RenderNotes(w, notes) })
	})
}

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		category, _ := cmd.Flags().GetString("category")
		return withApp(func(a *app.PlanApp) error {
			res, err := a.AddNote(title, category, strings.Join(args, " "))
			return emitResult(cmd, res, err)
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runNoteList,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete <note_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.PlanApp) error {
			res, err := a.DeleteNote(args[0])
			return emitResult(cmd, res, err)
		})
	},
}

var notePromoteCmd = &cobra.Command{
	Use:   "promote <note_id>",
	Short: "Turn a note into a task draft",
	Long: `Show the task draft a note would become. With --deadline the task is
created right away; the note itself is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deadline, _ := cmd.Flags().GetString("deadline")
		return withApp(func(a *app.PlanApp) error {
			res, err := a.PromoteNote(args[0])
			if err != nil || !res.Success || deadline == "" {
				return emitResult(cmd, res, err)
			}
			draft := *res.Draft
			draft.Deadline = deadline
			res, err = a.AddTask(draft)
			return emitResult(cmd, res, err)
		})
	},
}

func init() {
	noteAddCmd.Flags().String("title", "", "note title")
	noteAddCmd.Flags().String("category", "", "note category")
	notePromoteCmd.Flags().StringP("deadline", "d", "", "create the task with this deadline (YYYY-MM-DD)")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteDeleteCmd, notePromoteCmd)
	rootCmd.AddCommand(noteCmd)
}
