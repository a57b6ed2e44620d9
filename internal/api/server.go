// Package api implements the CRUD REST backend over the record store.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/store"
)

// Server is the HTTP CRUD backend.
type Server struct {
	store  *store.Store
	auth   *authService
	router chi.Router
}

// NewServer wires all resource routes onto a chi router.
func NewServer(cfg *config.Config, st *store.Store) *Server {
	s := &Server{
		store: st,
		auth:  newAuthService(cfg.Auth),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.With(s.auth.middleware).Get("/me", s.handleMe)
		r.With(s.auth.middleware).Get("/validate", s.handleValidate)
	})

	r.Route("/timesheets", func(r chi.Router) {
		r.Post("/", s.handleCreateTimesheet)
		r.Get("/", s.handleListTimesheets)
		r.Get("/pending", s.handlePendingTimesheets)
		r.Post("/send-pending", s.handleSendPendingTimesheets)
		r.Put("/{id}", s.handleUpdateTimesheet)
		r.Post("/{id}/approve", s.handleApproveTimesheet)
	})

	r.Route("/leaves", func(r chi.Router) {
		r.Post("/", s.handleCreateLeave)
		r.Get("/", s.handleListLeaves)
		r.Put("/{id}", s.handleUpdateLeave)
	})

	r.Route("/emails", func(r chi.Router) {
		r.Post("/", s.handleCreateEmail)
		r.Get("/", s.handleListEmails)
		r.Post("/draft", s.handleCreateDraftEmail)
		r.Get("/drafts", s.handleListDraftEmails)
		r.Get("/remind-pending-timesheets", s.handleReminderEmails)
		r.Get("/submit-pending-timesheets", s.handleSubmitEmails)
		r.Get("/{id}/context", s.handleEmailContext)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", s.handleCreateTask)
		r.Get("/", s.handleListTasks)
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Post("/", s.handleCreateJob)
		r.Get("/", s.handleListJobs)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Dialogiq Backend API",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeDetail writes the error envelope used by every failing endpoint.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// pathID parses the {id} route parameter. Returns false after writing a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body. Returns false after writing a 400.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
