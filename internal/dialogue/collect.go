package dialogue

import (
	"context"
	"time"
)

// slotSpec describes one field a collector fills: its slot name, the
// keyword rules that can resolve it, and the question asked when they
// cannot.
type slotSpec struct {
	name     string
	rules    []Rule
	question string
}

// collector fills its slots in order, asking at most one question per
// turn. Each field resolves by fixed priority: an extracted entity
// first, then the keyword rules, otherwise the clarifying question
// halts the turn. Once every slot is filled it schedules the create
// action as a follow-up.
type collector struct {
	name         string
	createAction string
	specs        []slotSpec
	now          func() time.Time
}

func (c *collector) Name() string { return c.name }

func (c *collector) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	rc := RuleContext{Message: tr.Message, Now: c.now()}
	var events []Event

	for _, spec := range c.specs {
		if tr.Slot(spec.name) != "" {
			continue
		}
		if v := tr.Entity(spec.name); v != "" {
			events = append(events, SlotSet{spec.name, v})
			tr.setSlot(spec.name, v)
			continue
		}
		if v, ok := apply(spec.rules, rc); ok && v != "" {
			events = append(events, SlotSet{spec.name, v})
			tr.setSlot(spec.name, v)
			continue
		}
		d.Utter(spec.question)
		return events, nil
	}

	events = append(events, FollowUp{c.createAction})
	return events, nil
}

func newTimesheetCollector(now func() time.Time) *collector {
	return &collector{
		name:         "collect_timesheet_info",
		createAction: "create_timesheet",
		now:          now,
		specs: []slotSpec{
			{"date", workDateRules, "📅 What date did you work? (e.g., today, yesterday, or specific date like 2025-07-28)"},
			{"from_time", fromTimeRules, "⏰ What time did you start work? (e.g., 9:00, 9am, 08:00)"},
			{"to_time", toTimeRules, "⏰ What time did you finish work? (e.g., 17:00, 5pm, 18:00)"},
			{"task_summary", taskSummaryRules, "📝 What work did you do? (e.g., coding, meetings, documentation, project work)"},
		},
	}
}

func newLeaveCollector(now func() time.Time) *collector {
	return &collector{
		name:         "collect_leave_info",
		createAction: "create_leave",
		now:          now,
		specs: []slotSpec{
			{"date", leaveDateRules, "📅 When do you want to take leave? (e.g., tomorrow, next week, or specific date)"},
			{"leave_type", leaveTypeRules, "🏷️ What type of leave? (e.g., sick leave, vacation, personal leave)"},
			{"reason", leaveReasonRules, "📝 What's the reason for your leave?"},
		},
	}
}

func newEmailCollector(now func() time.Time) *collector {
	return &collector{
		name:         "collect_email_info",
		createAction: "create_email",
		now:          now,
		specs: []slotSpec{
			{"recipient", recipientRules, "📧 Who should I send the email to? (e.g., manager@company.com)"},
			{"subject", subjectRules, "📝 What should be the subject of the email?"},
			{"content", contentRules, "📄 What should be the content of the email?"},
		},
	}
}

// taskCollector only asks for a title; description and priority derive
// from what the user already said.
type taskCollector struct {
	now func() time.Time
}

func (c *taskCollector) Name() string { return "collect_task_info" }

func (c *taskCollector) Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error) {
	rc := RuleContext{Message: tr.Message, Now: c.now()}
	var events []Event

	title := tr.Slot("title")
	if title == "" {
		if v := tr.Entity("title"); v != "" {
			title = v
		} else if v, ok := apply(titleRules, rc); ok {
			title = v
		}
		if title == "" {
			d.Utter("📋 What should be the title of the task?")
			return events, nil
		}
		events = append(events, SlotSet{"title", title})
		tr.setSlot("title", title)
	}

	if tr.Slot("description") == "" {
		description := "General task"
		if title != "" && title != "New task" {
			description = "Task related to " + title
		}
		events = append(events, SlotSet{"description", description})
		tr.setSlot("description", description)
	}

	if tr.Slot("priority") == "" {
		priority := "Medium"
		if v, ok := apply(priorityRules, rc); ok {
			priority = v
		}
		events = append(events, SlotSet{"priority", priority})
		tr.setSlot("priority", priority)
	}

	events = append(events, FollowUp{"create_task"})
	return events, nil
}
