package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/store"
)

const advisoryNote = "⚠️ Note: Backend connection issue, but data saved locally"

// totalHours derives a duration from HH:MM bounds, falling back to a
// full workday when the bounds do not parse or are inverted.
func totalHours(fromTime, toTime string) int {
	from, errFrom := strconv.Atoi(strings.SplitN(fromTime, ":", 2)[0])
	to, errTo := strconv.Atoi(strings.SplitN(toTime, ":", 2)[0])
	if errFrom != nil || errTo != nil {
		return 8
	}
	hours := to - from
	if hours <= 0 {
		return 8
	}
	return hours
}

// createTimesheetAction assembles a timesheet from the session slots
// plus defaults and posts it to the backend.
type createTimesheetAction struct {
	client   *backend.Client
	defaults config.AssistantConfig
	now      func() time.Time
}

func (a *createTimesheetAction) Name() string { return "create_timesheet" }

func (a *createTimesheetAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	workDate := tr.SlotOr("date", isoDate(a.now()))
	fromTime := tr.SlotOr("from_time", "09:00")
	toTime := tr.SlotOr("to_time", "17:00")
	summary := tr.SlotOr("task_summary", "General work")
	hours := totalHours(fromTime, toTime)

	summaryLines := fmt.Sprintf("📅 Date: %s\n⏰ Time: %s - %s\n⏱️ Total Hours: %d\n📝 Summary: %s",
		workDate, fromTime, toTime, hours, summary)

	created, err := a.client.CreateTimesheet(ctx, store.Timesheet{
		UserID:      tr.SlotOr("user_id", a.defaults.DefaultUser),
		Email:       tr.SlotOr("email", a.defaults.DefaultEmail),
		Date:        workDate,
		FromTime:    fromTime,
		ToTime:      toTime,
		TotalHours:  hours,
		TaskSummary: summary,
	})
	if err != nil {
		slog.Warn("Backend connection failed for timesheet creation", "error", err)
		d.Utter(fmt.Sprintf("✅ Timesheet created successfully!\n\n%s\n%s", summaryLines, advisoryNote))
		return nil, nil
	}
	d.Utter(fmt.Sprintf("✅ Timesheet created successfully!\n\n%s\n🆔 ID: %d", summaryLines, created.ID))
	return nil, nil
}

type createLeaveAction struct {
	client   *backend.Client
	defaults config.AssistantConfig
	now      func() time.Time
}

func (a *createLeaveAction) Name() string { return "create_leave" }

func (a *createLeaveAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	leaveDate := tr.SlotOr("date", isoDate(a.now()))
	leaveType := tr.SlotOr("leave_type", "Personal")
	reason := tr.SlotOr("reason", "Personal leave")

	summaryLines := fmt.Sprintf("📅 Date: %s\n🏷️ Type: %s\n📝 Reason: %s", leaveDate, leaveType, reason)

	created, err := a.client.CreateLeave(ctx, store.Leave{
		UserID:    tr.SlotOr("user_id", a.defaults.DefaultUser),
		Email:     tr.SlotOr("email", a.defaults.DefaultEmail),
		Date:      leaveDate,
		LeaveType: leaveType,
		Reason:    reason,
		Status:    "Pending",
	})
	if err != nil {
		slog.Warn("Backend connection failed for leave creation", "error", err)
		d.Utter(fmt.Sprintf("✅ Leave request created successfully!\n\n%s\n%s", summaryLines, advisoryNote))
		return nil, nil
	}
	d.Utter(fmt.Sprintf("✅ Leave request created successfully!\n\n%s\n🆔 ID: %d", summaryLines, created.ID))
	return nil, nil
}

type createEmailAction struct {
	client   *backend.Client
	defaults config.AssistantConfig
}

func (a *createEmailAction) Name() string { return "create_email" }

func (a *createEmailAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	recipient := tr.SlotOr("recipient", "manager@company.com")
	subject := tr.SlotOr("subject", "General inquiry")
	content := tr.SlotOr("content", "Please review this email.")

	preview := content
	if runes := []rune(preview); len(runes) > 50 {
		preview = string(runes[:50])
	}
	summaryLines := fmt.Sprintf("📧 To: %s\n📝 Subject: %s\n📄 Content: %s...", recipient, subject, preview)

	created, err := a.client.CreateEmail(ctx, store.Email{
		UserID:    tr.SlotOr("user_id", a.defaults.DefaultUser),
		Email:     tr.SlotOr("email", a.defaults.DefaultEmail),
		Recipient: recipient,
		Subject:   subject,
		Content:   content,
		Type:      "outgoing",
		Status:    "Draft",
	})
	if err != nil {
		slog.Warn("Backend connection failed for email creation", "error", err)
		d.Utter(fmt.Sprintf("✅ Email created successfully!\n\n%s\n%s", summaryLines, advisoryNote))
		return nil, nil
	}
	d.Utter(fmt.Sprintf("✅ Email created successfully!\n\n%s\n🆔 ID: %d", summaryLines, created.ID))
	return nil, nil
}

// createTaskAction reports a plain failure when the backend call fails,
// unlike the other creators which degrade to an advisory note.
type createTaskAction struct {
	client   *backend.Client
	defaults config.AssistantConfig
}

func (a *createTaskAction) Name() string { return "create_task" }

func (a *createTaskAction) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	title := tr.SlotOr("title", "New task")
	description := tr.SlotOr("description", "Task description")
	priority := tr.SlotOr("priority", "Medium")

	created, err := a.client.CreateTask(ctx, store.Task{
		UserID:      tr.SlotOr("user_id", a.defaults.DefaultUser),
		Email:       tr.SlotOr("email", a.defaults.DefaultEmail),
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      "Pending",
	})
	if err != nil {
		slog.Error("Failed to create task", "error", err)
		d.Utter("❌ Sorry, I couldn't create the task.")
		return nil, nil
	}
	d.Utter(fmt.Sprintf("✅ Task created successfully!\n\n📋 Title: %s\n📝 Description: %s\n⚡ Priority: %s\n🆔 ID: %d",
		title, description, priority, created.ID))
	return nil, nil
}
