package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/store"
)

const listCap = 5

type listTimesheetsAction struct {
	client *backend.Client
}

func (a *listTimesheetsAction) Name() string { return "list_timesheets" }

func (a *listTimesheetsAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	timesheets, err := a.client.ListTimesheets(ctx)
	if err != nil {
		slog.Error("Failed to list timesheets", "error", err)
		d.Utter("❌ Could not retrieve timesheets.")
		return nil, nil
	}
	if len(timesheets) == 0 {
		d.Utter("📋 No timesheets found.")
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("📋 Your timesheets:\n\n")
	for i, ts := range timesheets {
		if i == listCap {
			break
		}
		status := "⏳ Pending"
		if ts.Submitted {
			status = "✅ Approved"
		}
		fmt.Fprintf(&b, "📅 %s | %s-%s | %dh | %s\n", ts.Date, ts.FromTime, ts.ToTime, ts.TotalHours, status)
	}
	if len(timesheets) > listCap {
		fmt.Fprintf(&b, "\n... and %d more timesheets", len(timesheets)-listCap)
	}
	d.Utter(b.String())
	return nil, nil
}

type listLeavesAction struct {
	client *backend.Client
}

func (a *listLeavesAction) Name() string { return "list_leaves" }

func (a *listLeavesAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	leaves, err := a.client.ListLeaves(ctx)
	if err != nil {
		slog.Error("Failed to list leaves", "error", err)
		d.Utter("❌ Could not retrieve leave requests.")
		return nil, nil
	}
	if len(leaves) == 0 {
		d.Utter("📋 No leave requests found.")
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("📋 Your leave requests:\n\n")
	for i, l := range leaves {
		if i == listCap {
			break
		}
		fmt.Fprintf(&b, "📅 %s | %s | %s\n", l.Date, l.LeaveType, l.Status)
	}
	if len(leaves) > listCap {
		fmt.Fprintf(&b, "\n... and %d more leave requests", len(leaves)-listCap)
	}
	d.Utter(b.String())
	return nil, nil
}

type listEmailsAction struct {
	client *backend.Client
}

func (a *listEmailsAction) Name() string { return "list_emails" }

func (a *listEmailsAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	emails, err := a.client.ListEmails(ctx)
	if err != nil {
		slog.Error("Failed to list emails", "error", err)
		d.Utter("❌ Could not retrieve emails.")
		return nil, nil
	}
	if len(emails) == 0 {
		d.Utter("📧 No emails found.")
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("📧 Your emails:\n\n")
	for i, e := range emails {
		if i == listCap {
			break
		}
		fmt.Fprintf(&b, "📝 %s | %s | %s\n", e.Subject, e.Recipient, e.Status)
	}
	if len(emails) > listCap {
		fmt.Fprintf(&b, "\n... and %d more emails", len(emails)-listCap)
	}
	d.Utter(b.String())
	return nil, nil
}

type listTasksAction struct {
	client *backend.Client
}

func (a *listTasksAction) Name() string { return "list_tasks" }

func (a *listTasksAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		slog.Error("Failed to list tasks", "error", err)
		d.Utter("❌ Could not retrieve tasks.")
		return nil, nil
	}
	if len(tasks) == 0 {
		d.Utter("📋 No tasks found.")
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("📋 Your tasks:\n\n")
	for i, t := range tasks {
		if i == listCap {
			break
		}
		fmt.Fprintf(&b, "📝 %s | %s | %s\n", t.Title, t.Priority, t.Status)
	}
	if len(tasks) > listCap {
		fmt.Fprintf(&b, "\n... and %d more tasks", len(tasks)-listCap)
	}
	d.Utter(b.String())
	return nil, nil
}

// getAllDataAction renders the admin dashboard. Each resource is
// fetched independently so one failing endpoint degrades to an inline
// error row instead of sinking the whole report.
type getAllDataAction struct {
	client *backend.Client
}

func (a *getAllDataAction) Name() string { return "get_all_data" }

func (a *getAllDataAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	var b strings.Builder
	b.WriteString("📊 **ADMIN DASHBOARD - ALL DATA**\n\n")

	if timesheets, err := a.client.ListTimesheets(ctx); err != nil {
		b.WriteString("📅 **Timesheets**: Error retrieving data\n")
	} else {
		pending := 0
		for _, ts := range timesheets {
			if !ts.Submitted {
				pending++
			}
		}
		fmt.Fprintf(&b, "📅 **Timesheets**: %d total, %d pending\n", len(timesheets), pending)
	}

	if leaves, err := a.client.ListLeaves(ctx); err != nil {
		b.WriteString("🏖️ **Leaves**: Error retrieving data\n")
	} else {
		pending := 0
		for _, l := range leaves {
			if l.Status == "Pending" {
				pending++
			}
		}
		fmt.Fprintf(&b, "🏖️ **Leaves**: %d total, %d pending\n", len(leaves), pending)
	}

	if emails, err := a.client.ListEmails(ctx); err != nil {
		b.WriteString("📧 **Emails**: Error retrieving data\n")
	} else {
		drafts := 0
		for _, e := range emails {
			if e.Status == "Draft" {
				drafts++
			}
		}
		fmt.Fprintf(&b, "📧 **Emails**: %d total, %d drafts\n", len(emails), drafts)
	}

	if tasks, err := a.client.ListTasks(ctx); err != nil {
		b.WriteString("📋 **Tasks**: Error retrieving data\n")
	} else {
		pending := 0
		for _, t := range tasks {
			if t.Status == "Pending" {
				pending++
			}
		}
		fmt.Fprintf(&b, "📋 **Tasks**: %d total, %d pending\n", len(tasks), pending)
	}

	if jobs, err := a.client.ListJobs(ctx); err != nil {
		b.WriteString("💼 **Jobs**: Error retrieving data\n")
	} else {
		fmt.Fprintf(&b, "💼 **Jobs**: %d total\n", len(jobs))
	}

	d.Utter(b.String())
	return nil, nil
}

type detailedTimesheetsAction struct {
	client *backend.Client
}

func (a *detailedTimesheetsAction) Name() string { return "get_detailed_timesheets" }

func (a *detailedTimesheetsAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	timesheets, err := a.client.ListTimesheets(ctx)
	if err != nil {
		slog.Error("Failed to get detailed timesheets", "error", err)
		d.Utter("❌ Could not retrieve detailed timesheets.")
		return nil, nil
	}
	if len(timesheets) == 0 {
		d.Utter("📊 No timesheets found.")
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("📊 **DETAILED TIMESHEETS REPORT**\n\n")
	users, byUser := groupTimesheets(timesheets)
	for _, user := range users {
		entries := byUser[user]
		total, pending := 0, 0
		for _, ts := range entries {
			total += ts.TotalHours
			if !ts.Submitted {
				pending++
			}
		}
		fmt.Fprintf(&b, "👤 **%s**: %d entries, %dh total, %d pending\n", user, len(entries), total, pending)

		recent := make([]store.Timesheet, len(entries))
		copy(recent, entries)
		sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
		if len(recent) > 3 {
			recent = recent[:3]
		}
		for _, ts := range recent {
			status := "⏳"
			if ts.Submitted {
				status = "✅"
			}
			fmt.Fprintf(&b, "  %s %s | %s-%s | %dh\n", status, ts.Date, ts.FromTime, ts.ToTime, ts.TotalHours)
		}
		b.WriteString("\n")
	}
	d.Utter(b.String())
	return nil, nil
}

// groupTimesheets buckets by user, keeping first-seen key order so the
// report is deterministic.
func groupTimesheets(timesheets []store.Timesheet) ([]string, map[string][]store.Timesheet) {
	var users []string
	byUser := map[string][]store.Timesheet{}
	for _, ts := range timesheets {
		if _, ok := byUser[ts.UserID]; !ok {
			users = append(users, ts.UserID)
		}
		byUser[ts.UserID] = append(byUser[ts.UserID], ts)
	}
	return users, byUser
}

type detailedLeavesAction struct {
	client *backend.Client
}

func (a *detailedLeavesAction) Name() string { return "get_detailed_leaves" }

func (a *detailedLeavesAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	leaves, err := a.client.ListLeaves(ctx)
	if err != nil {
		slog.Error("Failed to get detailed leaves", "error", err)
		d.Utter("❌ Could not retrieve detailed leave requests.")
		return nil, nil
	}
	if len(leaves) == 0 {
		d.Utter("🏖️ No leave requests found.")
		return nil, nil
	}

	var statuses []string
	byStatus := map[string][]store.Leave{}
	for _, l := range leaves {
		if _, ok := byStatus[l.Status]; !ok {
			statuses = append(statuses, l.Status)
		}
		byStatus[l.Status] = append(byStatus[l.Status], l)
	}

	var b strings.Builder
	b.WriteString("🏖️ **DETAILED LEAVE REQUESTS REPORT**\n\n")
	for _, status := range statuses {
		group := byStatus[status]
		fmt.Fprintf(&b, "📊 **%s**: %d requests\n", status, len(group))
		for i, l := range group {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  👤 %s | %s | %s\n", l.UserID, l.Date, l.LeaveType)
		}
		if len(group) > 5 {
			fmt.Fprintf(&b, "  ... and %d more\n", len(group)-5)
		}
		b.WriteString("\n")
	}
	d.Utter(b.String())
	return nil, nil
}

type detailedEmailsAction struct {
	client *backend.Client
}

func (a *detailedEmailsAction) Name() string { return "get_detailed_emails" }

func (a *detailedEmailsAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	emails, err := a.client.ListEmails(ctx)
	if err != nil {
		slog.Error("Failed to get detailed emails", "error", err)
		d.Utter("❌ Could not retrieve detailed emails.")
		return nil, nil
	}
	if len(emails) == 0 {
		d.Utter("📧 No emails found.")
		return nil, nil
	}

	var types []string
	byType := map[string][]store.Email{}
	for _, e := range emails {
		if _, ok := byType[e.Type]; !ok {
			types = append(types, e.Type)
		}
		byType[e.Type] = append(byType[e.Type], e)
	}

	var b strings.Builder
	b.WriteString("📧 **DETAILED EMAILS REPORT**\n\n")
	for _, emailType := range types {
		group := byType[emailType]
		fmt.Fprintf(&b, "📊 **%s**: %d emails\n", emailType, len(group))

		recent := make([]store.Email, len(group))
		copy(recent, group)
		sort.SliceStable(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
		if len(recent) > 3 {
			recent = recent[:3]
		}
		for _, e := range recent {
			fmt.Fprintf(&b, "  📝 %s | To: %s | Status: %s\n", e.Subject, e.Recipient, e.Status)
		}
		b.WriteString("\n")
	}
	d.Utter(b.String())
	return nil, nil
}

type detailedTasksAction struct {
	client *backend.Client
}

func (a *detailedTasksAction) Name() string { return "get_detailed_tasks" }

func (a *detailedTasksAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		slog.Error("Failed to get detailed tasks", "error", err)
		d.Utter("❌ Could not retrieve detailed tasks.")
		return nil, nil
	}
	if len(tasks) == 0 {
		d.Utter("📋 No tasks found.")
		return nil, nil
	}

	var priorities []string
	byPriority := map[string][]store.Task{}
	for _, t := range tasks {
		if _, ok := byPriority[t.Priority]; !ok {
			priorities = append(priorities, t.Priority)
		}
		byPriority[t.Priority] = append(byPriority[t.Priority], t)
	}

	var b strings.Builder
	b.WriteString("📋 **DETAILED TASKS REPORT**\n\n")
	for _, priority := range priorities {
		group := byPriority[priority]
		fmt.Fprintf(&b, "📊 **%s Priority**: %d tasks\n", priority, len(group))
		for i, t := range group {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  📝 %s | Status: %s | User: %s\n", t.Title, t.Status, t.UserID)
		}
		if len(group) > 5 {
			fmt.Fprintf(&b, "  ... and %d more\n", len(group)-5)
		}
		b.WriteString("\n")
	}
	d.Utter(b.String())
	return nil, nil
}
