package nlu

import "testing"

func TestResolveRoutes(t *testing.T) {
	r := NewKeywordResolver()

	cases := []struct {
		text string
		want string
	}{
		{"Show all data", "get_all_data"},
		{"show detailed timesheets", "get_detailed_timesheets"},
		{"show detailed leaves", "get_detailed_leaves"},
		{"create a timesheet for today", "collect_timesheet_info"},
		{"show my timesheets", "list_timesheets"},
		{"I want sick leave tomorrow", "collect_leave_info"},
		{"show my leave requests", "list_leaves"},
		{"write an email to my manager", "collect_email_info"},
		{"list my emails", "list_emails"},
		{"create task payroll", "collect_task_info"},
		{"show my tasks", "list_tasks"},
		{"submit my pending timesheets", "submit_pending_timesheets"},
		{"show pending timesheets", "get_pending_timesheets"},
		{"get email context 3", "get_email_context"},
		{"hello there", "default_fallback"},
	}
	for _, tc := range cases {
		if got := r.Resolve(tc.text).Action; got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestResolveExtractsEntities(t *testing.T) {
	r := NewKeywordResolver()

	intent := r.Resolve("approve timesheet 7 by manager")
	if intent.Action != "approve_timesheet" {
		t.Fatalf("unexpected action %q", intent.Action)
	}
	got := map[string]string{}
	for _, e := range intent.Entities {
		got[e.Name] = e.Value
	}
	if got["timesheet_id"] != "7" || got["approver"] != "manager" {
		t.Fatalf("unexpected entities: %+v", intent.Entities)
	}

	intent = r.Resolve("email context 3")
	got = map[string]string{}
	for _, e := range intent.Entities {
		got[e.Name] = e.Value
	}
	if got["email_id"] != "3" {
		t.Fatalf("unexpected entities: %+v", intent.Entities)
	}
}
