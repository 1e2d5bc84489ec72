package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/josephgoksu/dayplan/models"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Snapshot())
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := s.app.Classify(q.Get("deadline"), q.Get("override"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeAPIJSON(w, c)
}

// handleListTasks
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tier, err := app.ParseTier(q.Get("tier"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeAPIJSON(w, s.app.ListTasks(planner.TaskFilter{
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Tier:     tier,
	}))
}

// handleAddTask
func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var draft models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.app.AddTask(draft)
	if err == nil && res.Success {
		writeStatusJSON(w, http.StatusCreated, res)
		return
	}
	writeResult(w, res, err)
}

// handleUpdateTask applies a partial update, or the detail-form save with ?detail=1.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if detail, _ := strconv.ParseBool(r.URL.Query().Get("detail")); detail {
		var req DetailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		res, err := s.app.SaveDetail(id, req.Title, req.Deadline, req.Description)
		writeResult(w, res, err)
		return
	}

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.app.UpdateTask(id, patch)
	writeResult(w, res, err)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.CompleteTask(r.PathValue("id"))
	writeResult(w, res, err)
}

func (s *Server) handleUncompleteTask(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.UncompleteTask(r.PathValue("id"))
	writeResult(w, res, err)
}

// handleGetPlan
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, map[string]any{
		"date":   s.app.Today(),
		"locked": s.app.IsLocked(),
		"tasks":  s.app.PlanView(),
	})
}

func (s *Server) handleAddToPlan(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.AddToPlan(r.PathValue("id"))
	writeResult(w, res, err)
}

func (s *Server) handleRemoveFromPlan(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.RemoveFromPlan(r.PathValue("id"))
	writeResult(w, res, err)
}

// handleMovePlanItem moves a planned task, or drops an unplanned one, at index.
func (s *Server) handleMovePlanItem(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Index == nil {
		writeAPIError(w, http.StatusBadRequest, "index is required")
		return
	}
	res, err := s.app.MovePlanItem(r.PathValue("id"), *req.Index)
	writeResult(w, res, err)
}

func (s *Server) handleLockPlan(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.LockPlan()
	writeResult(w, res, err)
}

func (s *Server) handleUnlockPlan(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.UnlockPlan()
	writeResult(w, res, err)
}

func (s *Server) handleRollover(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.Rollover()
	writeResult(w, res, err)
}

func (s *Server) handleOverdue(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Overdue())
}

// handleArchive returns completed tasks newest first. ?limit caps the list.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Archive(queryInt(r, "limit", 0)))
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Suggestions(queryInt(r, "limit", 0)))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Categories())
}

func (s *Server) handleDayCell(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.app.DayCell(r.PathValue("date"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeAPIJSON(w, tasks)
}

// handleStats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Stats(queryInt(r, "days", 0)))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.app.Notes())
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.app.AddNote(req.Title, req.Category, req.Text)
	if err == nil && res.Success {
		writeStatusJSON(w, http.StatusCreated, res)
		return
	}
	writeResult(w, res, err)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.DeleteNote(r.PathValue("id"))
	writeResult(w, res, err)
}

func (s *Server) handlePromoteNote(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.PromoteNote(r.PathValue("id"))
	writeResult(w, res, err)
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
