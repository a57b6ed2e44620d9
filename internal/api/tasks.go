package api

import (
	"log/slog"
	"net/http"

	"github.com/dialogiq/dialogiq/internal/store"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t store.Task
	if !decodeBody(w, r, &t) {
		return
	}
	if t.UserID == "" || t.Title == "" {
		writeDetail(w, http.StatusBadRequest, "user_id and title are required")
		return
	}
	created, err := s.store.CreateTask(t)
	if err != nil {
		slog.Error("Failed to create task", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks()
	if err != nil {
		slog.Error("Failed to list tasks", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
