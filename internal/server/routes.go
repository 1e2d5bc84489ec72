package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/classify", s.handleClassify)

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.handleCompleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/uncomplete", s.handleUncompleteTask)

	// Day plan
	mux.HandleFunc("GET /api/plan", s.handleGetPlan)
	mux.HandleFunc("POST /api/plan/lock", s.handleLockPlan)
	mux.HandleFunc("POST /api/plan/unlock", s.handleUnlockPlan)
	mux.HandleFunc("POST /api/plan/rollover", s.handleRollover)
	mux.HandleFunc("POST /api/plan/{id}", s.handleAddToPlan)
	mux.HandleFunc("DELETE /api/plan/{id}", s.handleRemoveFromPlan)
	mux.HandleFunc("POST /api/plan/{id}/move", s.handleMovePlanItem)

	// Views
	mux.HandleFunc("GET /api/overdue", s.handleOverdue)
	mux.HandleFunc("GET /api/archive", s.handleArchive)
	mux.HandleFunc("GET /api/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/calendar/{date}", s.handleDayCell)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	// Notes
	mux.HandleFunc("GET /api/notes", s.handleListNotes)
	mux.HandleFunc("POST /api/notes", s.handleAddNote)
	mux.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)
	mux.HandleFunc("POST /api/notes/{id}/promote", s.handlePromoteNote)

	return s.corsMiddleware(logMiddleware(mux))
}
