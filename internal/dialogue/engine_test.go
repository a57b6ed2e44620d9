package dialogue

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"

	"github.com/dialogiq/dialogiq/internal/api"
	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/nlu"
	"github.com/dialogiq/dialogiq/internal/session"
	"github.com/dialogiq/dialogiq/internal/store"
)

var testNow = time.Date(2025, 7, 28, 12, 0, 0, 0, time.UTC)

func setupEngine(t *testing.T) (*Engine, *backend.Client) {
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

	client := backend.New(config.BackendConfig{BaseURL: srv.URL, CreateTimeout: 5 * time.Second})
	engine := NewEngineWithClock(client, nlu.NewKeywordResolver(), session.NewManager(),
		config.AssistantConfig{DefaultUser: "default_user", DefaultEmail: "user@example.com"},
		func() time.Time { return testNow })
	return engine, client
}

// downEngine points at a dead backend so creates fail.
func downEngine(t *testing.T) *Engine {
	t.Helper()
	srv := httptest.NewServer(nil)
	srv.Close()
	client := backend.New(config.BackendConfig{BaseURL: srv.URL, CreateTimeout: time.Second})
	return NewEngineWithClock(client, nlu.NewKeywordResolver(), session.NewManager(),
		config.AssistantConfig{DefaultUser: "default_user", DefaultEmail: "user@example.com"},
		func() time.Time { return testNow })
}

func singleReply(t *testing.T, replies []string) string {
	t.Helper()
	if len(replies) != 1 {
		t.Fatalf("expected exactly 1 reply, got %d: %q", len(replies), replies)
	}
	return replies[0]
}

func TestSickLeaveEndToEnd(t *testing.T) {
	engine, client := setupEngine(t)

	reply := singleReply(t, engine.HandleTurn(context.Background(), "web:alice",
		"I want sick leave tomorrow because of illness"))
	if !strings.Contains(reply, "✅ Leave request created successfully!") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if !strings.Contains(reply, "Type: Sick Leave") || !strings.Contains(reply, "Reason: Illness") {
		t.Fatalf("slots not resolved: %q", reply)
	}
	if !strings.Contains(reply, "Date: 2025-07-29") {
		t.Fatalf("tomorrow not resolved against the clock: %q", reply)
	}

	leaves, err := client.ListLeaves(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(leaves) != 1 || leaves[0].LeaveType != "Sick Leave" || leaves[0].Date != "2025-07-29" {
		t.Fatalf("unexpected stored leave: %+v", leaves)
	}
}

func TestTimesheetCollectorOneQuestionPerTurn(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()
	key := "web:bob"

	turns := []struct {
		message string
		want    string
	}{
		{"create a timesheet", "What date did you work?"},
		{"today", "What time did you start work?"},
		{"9am", "What time did you finish work?"},
		{"5pm", "What work did you do?"},
	}
	for _, turn := range turns {
		reply := singleReply(t, engine.HandleTurn(ctx, key, turn.message))
		if !strings.Contains(reply, turn.want) {
			t.Fatalf("turn %q: expected question %q, got %q", turn.message, turn.want, reply)
		}
	}

	reply := singleReply(t, engine.HandleTurn(ctx, key, "coding"))
	if !strings.Contains(reply, "✅ Timesheet created successfully!") {
		t.Fatalf("unexpected final reply: %q", reply)
	}

	timesheets, err := client.ListTimesheets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(timesheets) != 1 {
		t.Fatalf("expected 1 timesheet, got %d", len(timesheets))
	}
	ts := timesheets[0]
	if ts.Date != "2025-07-28" || ts.FromTime != "09:00" || ts.ToTime != "17:00" || ts.TotalHours != 8 {
		t.Fatalf("unexpected stored timesheet: %+v", ts)
	}
	if ts.TaskSummary != "Coding and development work" {
		t.Fatalf("summary rule not applied: %q", ts.TaskSummary)
	}
}

func TestSlotsClearedAfterCreate(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()
	key := "web:carol"

	engine.HandleTurn(ctx, key, "I want sick leave tomorrow because of illness")

	// A fresh leave request must start from an empty form.
	reply := singleReply(t, engine.HandleTurn(ctx, key, "I need leave"))
	if !strings.Contains(reply, "When do you want to take leave?") {
		t.Fatalf("expected date question on a fresh flow, got %q", reply)
	}
}

func TestRuleOrderFirstMatchWins(t *testing.T) {
	rc := RuleContext{Message: "sick vacation", Now: testNow}
	got, ok := apply(leaveTypeRules, rc)
	if !ok || got != "Sick Leave" {
		t.Fatalf("expected first rule to win, got %q", got)
	}

	rc = RuleContext{Message: "vacation sick", Now: testNow}
	got, _ = apply(leaveTypeRules, rc)
	if got != "Sick Leave" {
		t.Fatalf("rule order must not depend on word order in the message, got %q", got)
	}
}

func TestTotalHours(t *testing.T) {
	if got := totalHours("08:00", "17:00"); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := totalHours("17:00", "09:00"); got != 8 {
		t.Fatalf("inverted bounds must fall back to 8, got %d", got)
	}
	if got := totalHours("morning", "17:00"); got != 8 {
		t.Fatalf("unparseable bound must fall back to 8, got %d", got)
	}
}

func TestCreateFallsBackToAdvisoryNote(t *testing.T) {
	engine := downEngine(t)

	reply := singleReply(t, engine.HandleTurn(context.Background(), "web:dave",
		"I want sick leave tomorrow because of illness"))
	if !strings.Contains(reply, "✅ Leave request created successfully!") {
		t.Fatalf("expected success-shaped reply, got %q", reply)
	}
	if !strings.Contains(reply, advisoryNote) {
		t.Fatalf("expected advisory note, got %q", reply)
	}
}

func TestTaskCreateFailureIsPlain(t *testing.T) {
	engine := downEngine(t)

	reply := singleReply(t, engine.HandleTurn(context.Background(), "web:erin",
		"create task payroll with high priority"))
	if !strings.Contains(reply, "❌ Sorry, I couldn't create the task.") {
		t.Fatalf("expected plain failure, got %q", reply)
	}
	if strings.Contains(reply, advisoryNote) {
		t.Fatalf("task creation must not use the advisory fallback: %q", reply)
	}
}

func TestTaskDerivedFields(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()

	reply := singleReply(t, engine.HandleTurn(ctx, "web:frank", "create task payroll with high priority"))
	if !strings.Contains(reply, "✅ Task created successfully!") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	tasks, err := client.ListTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Title != "payroll" || task.Priority != "High" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Description != "Task related to payroll" {
		t.Fatalf("description not derived from title: %q", task.Description)
	}
}

func TestEmailFlowWithAddressInMessage(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()
	key := "web:grace"

	reply := singleReply(t, engine.HandleTurn(ctx, key, "write an email to boss@company.com"))
	if !strings.Contains(reply, "What should be the subject of the email?") {
		t.Fatalf("expected subject question, got %q", reply)
	}
	reply = singleReply(t, engine.HandleTurn(ctx, key, "about budget"))
	if !strings.Contains(reply, "What should be the content of the email?") {
		t.Fatalf("expected content question, got %q", reply)
	}
	reply = singleReply(t, engine.HandleTurn(ctx, key, "message please review the numbers"))
	if !strings.Contains(reply, "✅ Email created successfully!") {
		t.Fatalf("unexpected final reply: %q", reply)
	}

	emails, err := client.ListEmails(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(emails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(emails))
	}
	e := emails[0]
	if e.Recipient != "boss@company.com" || e.Subject != "budget" {
		t.Fatalf("unexpected email: %+v", e)
	}
	if e.Content != "please review the numbers" || e.Status != "Draft" {
		t.Fatalf("unexpected email content or status: %+v", e)
	}
}

func TestEmailPreviewTruncatesOnRuneBoundary(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()
	key := "web:heidi"

	long := strings.Repeat("é", 60)
	engine.HandleTurn(ctx, key, "write an email to boss@company.com")
	engine.HandleTurn(ctx, key, "about résumé")
	reply := singleReply(t, engine.HandleTurn(ctx, key, "message "+long))

	if !utf8.ValidString(reply) {
		t.Fatalf("reply contains invalid UTF-8: %q", reply)
	}
	if !strings.Contains(reply, strings.Repeat("é", 50)+"...") {
		t.Fatalf("expected a 50 character preview, got %q", reply)
	}
	if strings.Contains(reply, strings.Repeat("é", 51)) {
		t.Fatalf("preview longer than 50 characters: %q", reply)
	}
}

func TestApproveTimesheetDefaultsToFirstID(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()

	if _, err := client.CreateTimesheet(ctx, store.Timesheet{UserID: "alice", Date: "2025-07-28"}); err != nil {
		t.Fatal(err)
	}

	reply := singleReply(t, engine.HandleTurn(ctx, "web:admin", "approve timesheet"))
	if !strings.Contains(reply, "✅ Timesheet 1 approved successfully by admin!") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestApproveTimesheetWithIDAndApprover(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()

	for _, user := range []string{"alice", "bob"} {
		if _, err := client.CreateTimesheet(ctx, store.Timesheet{UserID: user, Date: "2025-07-28"}); err != nil {
			t.Fatal(err)
		}
	}

	reply := singleReply(t, engine.HandleTurn(ctx, "web:admin", "approve timesheet 2 by manager"))
	if !strings.Contains(reply, "✅ Timesheet 2 approved successfully by manager!") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	timesheets, err := client.ListTimesheets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if timesheets[0].Submitted || !timesheets[1].Submitted {
		t.Fatalf("wrong timesheet approved: %+v", timesheets)
	}
}

func TestSubmitPendingReportsCount(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.CreateTimesheet(ctx, store.Timesheet{UserID: "alice", Date: "2025-07-28"}); err != nil {
			t.Fatal(err)
		}
	}

	reply := singleReply(t, engine.HandleTurn(ctx, "web:admin", "submit my pending timesheets"))
	if !strings.Contains(reply, "✅ Successfully submitted 2 pending timesheets for approval by manager.") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestAdminDashboard(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()

	if _, err := client.CreateTimesheet(ctx, store.Timesheet{UserID: "alice", Date: "2025-07-28"}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.CreateLeave(ctx, store.Leave{UserID: "alice", Date: "2025-07-29", LeaveType: "Vacation"}); err != nil {
		t.Fatal(err)
	}

	reply := singleReply(t, engine.HandleTurn(ctx, "web:admin", "show all data"))
	if !strings.Contains(reply, "ADMIN DASHBOARD") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if !strings.Contains(reply, "**Timesheets**: 1 total, 1 pending") {
		t.Fatalf("timesheet summary missing: %q", reply)
	}
	if !strings.Contains(reply, "**Leaves**: 1 total, 1 pending") {
		t.Fatalf("leave summary missing: %q", reply)
	}
	if !strings.Contains(reply, "**Jobs**: 0 total") {
		t.Fatalf("job summary missing: %q", reply)
	}
}

func TestListCapsAtFive(t *testing.T) {
	engine, client := setupEngine(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := client.CreateTimesheet(ctx, store.Timesheet{UserID: "alice", Date: "2025-07-28"}); err != nil {
			t.Fatal(err)
		}
	}

	reply := singleReply(t, engine.HandleTurn(ctx, "web:alice", "show my timesheets"))
	if !strings.Contains(reply, "... and 2 more timesheets") {
		t.Fatalf("expected overflow marker, got %q", reply)
	}
	if got := strings.Count(reply, "📅"); got != 5 {
		t.Fatalf("expected 5 rows, got %d", got)
	}
}

func TestFallbackHelp(t *testing.T) {
	engine, _ := setupEngine(t)

	reply := singleReply(t, engine.HandleTurn(context.Background(), "web:new", "what is the meaning of life"))
	if !strings.Contains(reply, "How can I assist you today?") {
		t.Fatalf("expected help text, got %q", reply)
	}
}
