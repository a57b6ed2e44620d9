package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dialogiq/dialogiq/internal/store"
)

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	var l store.Leave
	if !decodeBody(w, r, &l) {
		return
	}
	if l.UserID == "" || l.Date == "" || l.LeaveType == "" {
		writeDetail(w, http.StatusBadRequest, "user_id, date and leave_type are required")
		return
	}
	created, err := s.store.CreateLeave(l)
	if err != nil {
		slog.Error("Failed to create leave", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create leave")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := s.store.ListLeaves()
	if err != nil {
		slog.Error("Failed to list leaves", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list leaves")
		return
	}
	writeJSON(w, http.StatusOK, leaves)
}

func (s *Server) handleUpdateLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var upd store.LeaveUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := s.store.UpdateLeave(id, upd)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Leave not found")
		return
	}
	if err != nil {
		slog.Error("Failed to update leave", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to update leave")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
