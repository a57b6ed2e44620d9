package gateway

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dialogiq/dialogiq/internal/api"
	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/dialogue"
	"github.com/dialogiq/dialogiq/internal/nlu"
	"github.com/dialogiq/dialogiq/internal/session"
	"github.com/dialogiq/dialogiq/internal/store"
)

func setupGateway(t *testing.T) *Gateway {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	st, err := store.NewWithDB(db)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(api.NewServer(config.DefaultConfig(), st))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.Backend.BaseURL = srv.URL
	client := backend.New(cfg.Backend)
	engine := dialogue.NewEngineWithClock(client, nlu.NewKeywordResolver(), session.NewManager(),
		cfg.Assistant, func() time.Time { return time.Date(2025, 7, 28, 12, 0, 0, 0, time.UTC) })
	return New(cfg, engine)
}

func TestChatEndpoint(t *testing.T) {
	g := setupGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{
		"session_id": "alice",
		"message":    "I want sick leave tomorrow because of illness",
	})
	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var chat struct {
		SessionID string   `json:"session_id"`
		Replies   []string `json:"replies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		t.Fatal(err)
	}
	if chat.SessionID != "alice" || len(chat.Replies) != 1 {
		t.Fatalf("unexpected response: %+v", chat)
	}
	if !strings.Contains(chat.Replies[0], "Leave request created successfully") {
		t.Fatalf("unexpected reply: %q", chat.Replies[0])
	}
}

func TestChatAssignsSessionID(t *testing.T) {
	g := setupGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"message": "hello"})
	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var chat struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		t.Fatal(err)
	}
	if chat.SessionID == "" {
		t.Fatal("expected generated session id")
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	g := setupGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChatHistoryAndReset(t *testing.T) {
	g := setupGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"session_id": "bob", "message": "hello"})
	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/chat/bob/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var history struct {
		SessionID string            `json:"session_id"`
		Messages  []session.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if history.SessionID != "bob" || len(history.Messages) < 2 {
		t.Fatalf("expected user and assistant messages, got %+v", history)
	}
	if history.Messages[0].Role != "user" || history.Messages[0].Content != "hello" {
		t.Fatalf("unexpected first message: %+v", history.Messages[0])
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/chat/bob", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/chat/bob/history")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after reset, got %d", resp.StatusCode)
	}
}

func TestResetUnknownSession(t *testing.T) {
	g := setupGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/chat/nobody", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHealthReportsQueuesAndSessions(t *testing.T) {
	g := setupGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"session_id": "carol", "message": "hello"})
	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var health struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
		Actions  int    `json:"actions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || health.Sessions != 1 {
		t.Fatalf("unexpected health payload: %+v", health)
	}
	if health.Actions == 0 {
		t.Fatal("expected registered actions to be reported")
	}
}
