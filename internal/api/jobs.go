package api

import (
	"log/slog"
	"net/http"

	"github.com/dialogiq/dialogiq/internal/store"
)

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var j store.Job
	if !decodeBody(w, r, &j) {
		return
	}
	if j.JobTitle == "" {
		writeDetail(w, http.StatusBadRequest, "job_title is required")
		return
	}
	created, err := s.store.CreateJob(j)
	if err != nil {
		slog.Error("Failed to create job", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create job")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs()
	if err != nil {
		slog.Error("Failed to list jobs", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
