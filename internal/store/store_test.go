package store

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	s, err := NewWithDB(db)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTimesheetCreateAndList(t *testing.T) {
	s := setupStore(t)

	created, err := s.CreateTimesheet(Timesheet{
		UserID: "alice", Email: "alice@example.com", Date: "2025-07-28",
		FromTime: "09:00", ToTime: "17:00", TaskSummary: "Coding and development work", TotalHours: 8,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Submitted {
		t.Fatal("new timesheet must not be submitted")
	}

	all, err := s.ListTimesheets()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].UserID != "alice" {
		t.Fatalf("unexpected list result: %+v", all)
	}
}

func TestTimesheetApprove(t *testing.T) {
	s := setupStore(t)
	created, err := s.CreateTimesheet(Timesheet{UserID: "alice", Date: "2025-07-28"})
	if err != nil {
		t.Fatal(err)
	}

	approved, err := s.ApproveTimesheet(created.ID, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if !approved.Submitted {
		t.Fatal("expected submitted=true after approval")
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != "admin" {
		t.Fatalf("expected approver admin, got %v", approved.ApprovedBy)
	}
}

func TestTimesheetApproveMissing(t *testing.T) {
	s := setupStore(t)
	if _, err := s.ApproveTimesheet(42, "admin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTimesheetUpdateReplaces(t *testing.T) {
	s := setupStore(t)
	created, err := s.CreateTimesheet(Timesheet{UserID: "alice", Date: "2025-07-28", TotalHours: 8})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdateTimesheet(created.ID, Timesheet{
		UserID: "alice", Date: "2025-07-29", FromTime: "10:00", ToTime: "16:00", TotalHours: 6,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Date != "2025-07-29" || updated.TotalHours != 6 {
		t.Fatalf("unexpected record after update: %+v", updated)
	}

	if _, err := s.UpdateTimesheet(99, Timesheet{UserID: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitPendingTimesheets(t *testing.T) {
	s := setupStore(t)
	for i := 0; i < 3; i++ {
		if _, err := s.CreateTimesheet(Timesheet{UserID: "alice", Date: "2025-07-28"}); err != nil {
			t.Fatal(err)
		}
	}
	already, err := s.CreateTimesheet(Timesheet{UserID: "bob", Date: "2025-07-28"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApproveTimesheet(already.ID, "admin"); err != nil {
		t.Fatal(err)
	}

	submitted, err := s.SubmitPendingTimesheets("manager")
	if err != nil {
		t.Fatal(err)
	}
	if len(submitted) != 3 {
		t.Fatalf("expected 3 submitted, got %d", len(submitted))
	}
	for _, ts := range submitted {
		if !ts.Submitted || ts.ApprovedBy == nil || *ts.ApprovedBy != "manager" {
			t.Fatalf("bad transition result: %+v", ts)
		}
	}

	pending, err := s.ListPendingTimesheets()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending left, got %d", len(pending))
	}

	// Second run transitions nothing.
	again, err := s.SubmitPendingTimesheets("manager")
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("expected empty set, got %d", len(again))
	}
}

func TestSubmitPendingReturnsPersistedState(t *testing.T) {
	s := setupStore(t)
	for i := 0; i < 2; i++ {
		if _, err := s.CreateTimesheet(Timesheet{UserID: "alice", Date: "2025-07-28"}); err != nil {
			t.Fatal(err)
		}
	}

	submitted, err := s.SubmitPendingTimesheets("manager")
	if err != nil {
		t.Fatal(err)
	}
	for _, ts := range submitted {
		stored, err := s.GetTimesheet(ts.ID)
		if err != nil {
			t.Fatal(err)
		}
		if stored.Submitted != ts.Submitted {
			t.Fatalf("returned record diverges from stored row: %+v vs %+v", ts, stored)
		}
		if stored.ApprovedBy == nil || *stored.ApprovedBy != *ts.ApprovedBy {
			t.Fatalf("approver not persisted for id %d", ts.ID)
		}
	}
}

func TestLeaveLifecycle(t *testing.T) {
	s := setupStore(t)
	created, err := s.CreateLeave(Leave{
		UserID: "alice", Date: "2025-07-29", LeaveType: "Sick Leave", Reason: "Illness",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != "Pending" {
		t.Fatalf("expected default status Pending, got %q", created.Status)
	}

	status := "Approved"
	approver := "admin"
	comment := "feel better"
	updated, err := s.UpdateLeave(created.ID, LeaveUpdate{Status: &status, ApprovedBy: &approver, ApprovalComment: &comment})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != "Approved" || updated.ApprovedBy == nil || *updated.ApprovedBy != "admin" {
		t.Fatalf("unexpected leave after update: %+v", updated)
	}
	if updated.Reason != "Illness" {
		t.Fatal("partial update must not touch unset fields")
	}

	if _, err := s.UpdateLeave(404, LeaveUpdate{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmailFilters(t *testing.T) {
	s := setupStore(t)
	seed := []Email{
		{UserID: "alice", Recipient: "manager@company.com", Subject: "a", Status: "Draft"},
		{UserID: "alice", Recipient: "team@company.com", Subject: "b", Type: "reminder", Status: "Unread"},
		{UserID: "bob", Recipient: "client@company.com", Subject: "c", Type: "submit", Status: "Unread"},
	}
	for _, e := range seed {
		if _, err := s.CreateEmail(e); err != nil {
			t.Fatal(err)
		}
	}

	drafts, err := s.ListEmailsByStatus("Draft")
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 1 || drafts[0].Subject != "a" {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}

	reminders, err := s.ListEmailsByTypeStatus("reminder", "Unread")
	if err != nil {
		t.Fatal(err)
	}
	if len(reminders) != 1 || reminders[0].Subject != "b" {
		t.Fatalf("unexpected reminders: %+v", reminders)
	}

	if _, err := s.GetEmail(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskAndJobDefaults(t *testing.T) {
	s := setupStore(t)

	task, err := s.CreateTask(Task{UserID: "alice", Title: "deploy"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Priority != "Medium" || task.Status != "Pending" {
		t.Fatalf("unexpected task defaults: %+v", task)
	}

	job, err := s.CreateJob(Job{JobTitle: "migration", AssignedTo: "bob", StartDate: "2025-08-01", EndDate: "2025-08-15"})
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != "Open" {
		t.Fatalf("unexpected job status: %q", job.Status)
	}

	jobs, err := s.ListJobs()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
}
