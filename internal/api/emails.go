package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dialogiq/dialogiq/internal/store"
)

func (s *Server) handleCreateEmail(w http.ResponseWriter, r *http.Request) {
	var e store.Email
	if !decodeBody(w, r, &e) {
		return
	}
	s.createEmail(w, e)
}

// handleCreateDraftEmail forces status=Draft regardless of the payload.
func (s *Server) handleCreateDraftEmail(w http.ResponseWriter, r *http.Request) {
	var e store.Email
	if !decodeBody(w, r, &e) {
		return
	}
	e.Status = "Draft"
	s.createEmail(w, e)
}

func (s *Server) createEmail(w http.ResponseWriter, e store.Email) {
	if e.UserID == "" || e.Recipient == "" {
		writeDetail(w, http.StatusBadRequest, "user_id and recipient are required")
		return
	}
	created, err := s.store.CreateEmail(e)
	if err != nil {
		slog.Error("Failed to create email", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create email")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := s.store.ListEmails()
	if err != nil {
		slog.Error("Failed to list emails", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list emails")
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (s *Server) handleListDraftEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := s.store.ListEmailsByStatus("Draft")
	if err != nil {
		slog.Error("Failed to list draft emails", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list draft emails")
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (s *Server) handleReminderEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := s.store.ListEmailsByTypeStatus("reminder", "Unread")
	if err != nil {
		slog.Error("Failed to list reminder emails", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list reminder emails")
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (s *Server) handleSubmitEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := s.store.ListEmailsByTypeStatus("submit", "Unread")
	if err != nil {
		slog.Error("Failed to list submit emails", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list submit emails")
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (s *Server) handleEmailContext(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	email, err := s.store.GetEmail(id)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Email not found")
		return
	}
	if err != nil {
		slog.Error("Failed to get email context", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get email context")
		return
	}
	writeJSON(w, http.StatusOK, email)
}
