/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/server"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner as a local JSON API",
	Long: `Start a JSON API on the loopback interface for a browser front end.

With the file backend the data file is watched, so changes made by the CLI in
another terminal show up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from config)")
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	serveCmd.Flags().Bool("no-watch", false, "do not reload when the data file changes")
	rootCmd.AddCommand(serveCmd)
}

// serverOptions merges flags over the config.
func serverOptions(cmd *cobra.Command) server.Options {
	cfg := GetConfig()
	opts := server.Options{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if h, _ := cmd.Flags().GetString("host"); h != "" {
		opts.Host = h
	}
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		opts.Port = p
	}
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if cfg.Server.Watch && !noWatch && (cfg.Storage.Backend == "" || cfg.Storage.Backend == store.BackendFile) {
		opts.WatchPath = cfg.Storage.StoragePath()
	}
	return opts
}

func runServe(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.PlanApp) error {
		opts := serverOptions(cmd)
		srv := server.New(a, opts)

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)

		cmd.Println(ui.StyleSuccess.Render(fmt.Sprintf("dayplan API listening on http://%s", srv.Addr())))
		if opts.WatchPath != "" {
			cmd.Println(ui.StyleSubtle.Render("Watching " + opts.WatchPath))
		}
		cmd.Println("Press Ctrl+C to stop")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		var runErr error
		select {
		case sig := <-sigChan:
			cmd.Printf("\nReceived %v, shutting down...\n", sig)
		case runErr = <-errChan:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			cmd.PrintErrf("Server shutdown error: %v\n", err)
		}
		wg.Wait()
		return runErr
	})
}
