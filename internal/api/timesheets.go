package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dialogiq/dialogiq/internal/store"
)

func (s *Server) handleCreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var ts store.Timesheet
	if !decodeBody(w, r, &ts) {
		return
	}
	if ts.UserID == "" || ts.Date == "" {
		writeDetail(w, http.StatusBadRequest, "user_id and date are required")
		return
	}
	created, err := s.store.CreateTimesheet(ts)
	if err != nil {
		slog.Error("Failed to create timesheet", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create timesheet")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListTimesheets(w http.ResponseWriter, r *http.Request) {
	timesheets, err := s.store.ListTimesheets()
	if err != nil {
		slog.Error("Failed to list timesheets", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list timesheets")
		return
	}
	writeJSON(w, http.StatusOK, timesheets)
}

func (s *Server) handlePendingTimesheets(w http.ResponseWriter, r *http.Request) {
	timesheets, err := s.store.ListPendingTimesheets()
	if err != nil {
		slog.Error("Failed to list pending timesheets", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list pending timesheets")
		return
	}
	writeJSON(w, http.StatusOK, timesheets)
}

func (s *Server) handleUpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var ts store.Timesheet
	if !decodeBody(w, r, &ts) {
		return
	}
	updated, err := s.store.UpdateTimesheet(id, ts)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Timesheet not found")
		return
	}
	if err != nil {
		slog.Error("Failed to update timesheet", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to update timesheet")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	approver := strings.TrimSpace(r.URL.Query().Get("approver"))
	if approver == "" {
		writeDetail(w, http.StatusBadRequest, "approver is required")
		return
	}
	approved, err := s.store.ApproveTimesheet(id, approver)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Timesheet not found")
		return
	}
	if err != nil {
		slog.Error("Failed to approve timesheet", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to approve timesheet")
		return
	}
	writeJSON(w, http.StatusOK, approved)
}

func (s *Server) handleSendPendingTimesheets(w http.ResponseWriter, r *http.Request) {
	approver := strings.TrimSpace(r.URL.Query().Get("approver"))
	if approver == "" {
		writeDetail(w, http.StatusBadRequest, "approver is required")
		return
	}
	submitted, err := s.store.SubmitPendingTimesheets(approver)
	if err != nil {
		slog.Error("Failed to send pending timesheets", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to send pending timesheets")
		return
	}
	writeJSON(w, http.StatusOK, submitted)
}
