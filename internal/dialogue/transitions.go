package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dialogiq/dialogiq/internal/backend"
)

// approveTimesheetAction approves a single timesheet. When the user
// never named one, id "1" is assumed for compatibility with existing
// conversations; the assumption is logged so operators can spot it.
type approveTimesheetAction struct {
	client *backend.Client
}

func (a *approveTimesheetAction) Name() string { return "approve_timesheet" }

func (a *approveTimesheetAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	rawID := tr.Entity("timesheet_id")
	if rawID == "" {
		rawID = tr.Slot("timesheet_id")
	}
	if rawID == "" {
		rawID = "1"
		slog.Warn("No timesheet id given, assuming id 1", "session", tr.SessionKey)
	}
	approver := tr.Entity("approver")
	if approver == "" {
		approver = tr.SlotOr("approver", "admin")
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		d.Utter(fmt.Sprintf("❌ Could not approve timesheet %s.", rawID))
		return nil, nil
	}
	if _, err := a.client.ApproveTimesheet(ctx, id, approver); err != nil {
		slog.Error("Failed to approve timesheet", "id", id, "error", err)
		d.Utter(fmt.Sprintf("❌ Could not approve timesheet %s.", rawID))
		return nil, nil
	}
	d.Utter(fmt.Sprintf("✅ Timesheet %s approved successfully by %s!", rawID, approver))
	return nil, nil
}

type submitPendingAction struct {
	client *backend.Client
}

func (a *submitPendingAction) Name() string { return "submit_pending_timesheets" }

func (a *submitPendingAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	approver := tr.Entity("approver")
	if approver == "" {
		approver = tr.SlotOr("approver", "manager")
	}

	submitted, err := a.client.SubmitPendingTimesheets(ctx, approver)
	if err != nil {
		slog.Error("Failed to submit pending timesheets", "error", err)
		d.Utter("❌ Could not submit pending timesheets.")
		return nil, nil
	}
	d.Utter(fmt.Sprintf("✅ Successfully submitted %d pending timesheets for approval by %s.", len(submitted), approver))
	return nil, nil
}

type pendingTimesheetsAction struct {
	client *backend.Client
}

func (a *pendingTimesheetsAction) Name() string { return "get_pending_timesheets" }

func (a *pendingTimesheetsAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	timesheets, err := a.client.ListPendingTimesheets(ctx)
	if err != nil {
		slog.Error("Failed to get pending timesheets", "error", err)
		d.Utter("❌ Could not retrieve pending timesheets.")
		return nil, nil
	}
	if len(timesheets) == 0 {
		d.Utter("✅ No pending timesheets found.")
		return nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏳ You have %d pending timesheets:\n\n", len(timesheets))
	for i, ts := range timesheets {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "📅 %s | %s-%s | %dh\n", ts.Date, ts.FromTime, ts.ToTime, ts.TotalHours)
	}
	if len(timesheets) > 3 {
		fmt.Fprintf(&b, "\n... and %d more pending timesheets", len(timesheets)-3)
	}
	d.Utter(b.String())
	return nil, nil
}

type emailContextAction struct {
	client *backend.Client
}

func (a *emailContextAction) Name() string { return "get_email_context" }

func (a *emailContextAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	rawID := tr.Entity("email_id")
	if rawID == "" {
		rawID = tr.SlotOr("email_id", "1")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		d.Utter("❌ Could not retrieve email context.")
		return nil, nil
	}

	email, err := a.client.EmailContext(ctx, id)
	if err != nil {
		slog.Error("Failed to get email context", "id", id, "error", err)
		d.Utter("❌ Could not retrieve email context.")
		return nil, nil
	}
	d.Utter(fmt.Sprintf("📧 Email Context:\n\n📝 Subject: %s\n📄 Content: %s\n📧 Recipient: %s\n📊 Status: %s",
		email.Subject, email.Content, email.Recipient, email.Status))
	return nil, nil
}

type fallbackAction struct{}

func (a *fallbackAction) Name() string { return "default_fallback" }

func (a *fallbackAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	d.Utter(`🤖 I'm here to help you with:

📊 **Timesheets**: Create, view, and submit timesheets
🏖️ **Leave Management**: Request and track leave
📧 **Email Management**: Create and manage emails
📋 **Task Management**: Create and track tasks

👨‍💼 **Admin Features**:
- "Show all data" - Get comprehensive dashboard
- "Show detailed timesheets" - Detailed timesheet analysis
- "Show detailed leaves" - Detailed leave analysis
- "Show detailed emails" - Detailed email analysis
- "Show detailed tasks" - Detailed task analysis
- "Approve timesheet 1" - Approve specific timesheet

Try saying:
- "Create a timesheet for today"
- "Show my leave requests"
- "Create an email to my manager"
- "List my tasks"
- "Submit my pending timesheets"
- "Show all data" (admin)
- "Approve timesheet 1 by manager" (admin)

How can I assist you today?`)
	return nil, nil
}
