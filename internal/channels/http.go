package channels

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dialogiq/dialogiq/internal/session"
)

// historyLimit caps how many messages a history request returns.
const historyLimit = 20

// Conversations exposes the session state behind the chat endpoints.
type Conversations interface {
	// History returns recent messages for a session, nil when unknown.
	History(sessionKey string, max int) []session.Message
	// Reset drops a session, reporting whether it existed.
	Reset(sessionKey string) bool
}

// HTTPChannel answers webhook turns synchronously: the reply rides back
// on the same request.
type HTTPChannel struct {
	handler       TurnHandler
	conversations Conversations
}

// NewHTTPChannel creates the webhook channel.
func NewHTTPChannel(handler TurnHandler, conversations Conversations) *HTTPChannel {
	return &HTTPChannel{handler: handler, conversations: conversations}
}

// Name identifies the channel on the bus.
func (c *HTTPChannel) Name() string { return "http" }

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string   `json:"session_id"`
	Replies   []string `json:"replies"`
}

// Mount registers the chat routes.
func (c *HTTPChannel) Mount(r chi.Router) {
	r.Post("/chat", c.handleChat)
	r.Get("/chat/{session_id}/history", c.handleHistory)
	r.Delete("/chat/{session_id}", c.handleReset)
}

func (c *HTTPChannel) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	replies := c.handler(r.Context(), "http:"+req.SessionID, req.Message)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chatResponse{SessionID: req.SessionID, Replies: replies}); err != nil {
		slog.Error("Failed to encode chat response", "error", err)
	}
}

func (c *HTTPChannel) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	messages := c.conversations.History("http:"+id, historyLimit)
	w.Header().Set("Content-Type", "application/json")
	if messages == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"session_id": id, "messages": messages})
}

func (c *HTTPChannel) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if !c.conversations.Reset("http:" + id) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
