// Package server exposes the planner as a local JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
)

// Options configures New.
type Options struct {
	Host           string
	Port           int
	AllowedOrigins []string
	// WatchPath, when set, is the data file to watch for writes by other processes.
	WatchPath string
}

type Server struct {
	app     *app.PlanApp
	origins map[string]struct{}
	watch   string
	server  *http.Server
	watcher *fileWatcher
}

// New builds the server. It does not listen until Start.
func New(a *app.PlanApp, opts Options) *Server {
	s := &Server{
		app:     a,
		origins: make(map[string]struct{}, len(opts.AllowedOrigins)),
		watch:   opts.WatchPath,
	}
	for _, o := range opts.AllowedOrigins {
		s.origins[o] = struct{}{}
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr is the listen address.
func (s *Server) Addr() string { return s.server.Addr }

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start serves in the background. Listen errors are sent on errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	if s.watch != "" {
		w, err := newFileWatcher(s.watch, s.reload)
		if err != nil {
			slog.Warn("data file watch disabled", "path", s.watch, "error", err)
		} else {
			s.watcher = w
			w.Start(wg)
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

// Shutdown stops the watcher and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) reload() {
	s.app.Context().Planner.Reload()
	slog.Debug("reloaded plan after external write", "path", s.watch)
}

func writeAPIJSON(w http.ResponseWriter, data any) {
	writeStatusJSON(w, http.StatusOK, data)
}

func writeStatusJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeStatusJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a failed Result onto an HTTP status.
func statusFor(kind string) int {
	switch kind {
	case app.KindValidation, app.KindAmbiguous:
		return http.StatusBadRequest
	case app.KindLocked, app.KindArchived:
		return http.StatusConflict
	case app.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeResult renders an operation outcome. Storage errors become 500.
func writeResult(w http.ResponseWriter, res *app.Result, err error) {
	if err != nil {
		slog.Error("operation failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !res.Success {
		writeStatusJSON(w, statusFor(res.Kind), res)
		return
	}
	writeAPIJSON(w, res)
}
