/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/calendar"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Export the locked plan to Google Calendar",
}

var calendarPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish today's locked plan as all-day events",
	Long: `Publish every task of the locked plan as an all-day event on today's date.

Events are tagged with the task id, so publishing again updates them instead
of creating duplicates. The first run opens a browser to authorize access;
the token is cached next to the data file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig().Calendar
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = cfg.Name
		}
		ctx := cmdContext(cmd)

		return withApp(func(a *app.PlanApp) error {
			snap := a.Snapshot()
			if !snap.Locked {
				return calendar.ErrPlanNotLocked
			}

			oauthCfg, err := calendar.LoadOAuthConfig(cfg.CredentialsPath())
			if err != nil {
				return err
			}
			client, err := calendar.HTTPClient(ctx, oauthCfg, cfg.TokenPath(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var spin *ui.Spinner
			if !isJSON() && ui.IsInteractive() {
				spin = ui.NewSpinner(cmd.ErrOrStderr(), " Publishing plan...")
				spin.Start()
			}
			pub, err := calendar.NewPublisher(ctx, client, name)
			var sum calendar.PublishSummary
			if err == nil {
				sum, err = pub.Publish(ctx, snap)
			}
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			return emitView(cmd, sum, func(w io.Writer) {
				ui.RenderResult(w, &app.Result{
					Success: true,
					Message: fmt.Sprintf("Published %s to %s: %d new, %d updated, %d unchanged",
						sum.Date, pub.CalendarID(), sum.Inserted, sum.Updated, sum.Unchanged),
				})
			})
		})
	},
}

func init() {
	calendarPublishCmd.Flags().String("name", "", "calendar name or id (default from config, primary)")
	calendarCmd.AddCommand(calendarPublishCmd)
	rootCmd.AddCommand(calendarCmd)
}
