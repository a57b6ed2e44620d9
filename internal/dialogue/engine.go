package dialogue

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/nlu"
	"github.com/dialogiq/dialogiq/internal/session"
)

// slotActiveFlow remembers which collector asked the last question so
// plain answers like "tomorrow" route back to it on the next turn.
const slotActiveFlow = "_flow"

// maxFollowUps bounds the action chain within one turn. A chain longer
// than this is a programming error, not a legitimate conversation.
const maxFollowUps = 4

// collectorActions route back to themselves across turns while they
// still have questions to ask.
var collectorActions = map[string]bool{
	"collect_timesheet_info": true,
	"collect_leave_info":     true,
	"collect_email_info":     true,
	"collect_task_info":      true,
}

// terminalActions complete a workflow; the session's form state is
// cleared after one runs.
var terminalActions = map[string]bool{
	"create_timesheet": true,
	"create_leave":     true,
	"create_email":     true,
	"create_task":      true,
}

// Engine drives one conversational turn at a time: resolve an action,
// run it, apply its events, chain follow-ups.
type Engine struct {
	registry *Registry
	resolver nlu.Resolver
	sessions *session.Manager
	now      func() time.Time
}

// NewEngine builds the engine with the full action set registered.
func NewEngine(client *backend.Client, resolver nlu.Resolver, sessions *session.Manager, defaults config.AssistantConfig) *Engine {
	return NewEngineWithClock(client, resolver, sessions, defaults, time.Now)
}

// NewEngineWithClock is NewEngine with an injectable clock so tests can
// pin relative-date resolution.
func NewEngineWithClock(client *backend.Client, resolver nlu.Resolver, sessions *session.Manager, defaults config.AssistantConfig, now func() time.Time) *Engine {
	r := NewRegistry()

	r.Register(newTimesheetCollector(now))
	r.Register(newLeaveCollector(now))
	r.Register(newEmailCollector(now))
	r.Register(&taskCollector{now: now})

	r.Register(&createTimesheetAction{client: client, defaults: defaults, now: now})
	r.Register(&createLeaveAction{client: client, defaults: defaults, now: now})
	r.Register(&createEmailAction{client: client, defaults: defaults})
	r.Register(&createTaskAction{client: client, defaults: defaults})

	r.Register(&listTimesheetsAction{client: client})
	r.Register(&listLeavesAction{client: client})
	r.Register(&listEmailsAction{client: client})
	r.Register(&listTasksAction{client: client})

	r.Register(&getAllDataAction{client: client})
	r.Register(&detailedTimesheetsAction{client: client})
	r.Register(&detailedLeavesAction{client: client})
	r.Register(&detailedEmailsAction{client: client})
	r.Register(&detailedTasksAction{client: client})

	r.Register(&approveTimesheetAction{client: client})
	r.Register(&submitPendingAction{client: client})
	r.Register(&pendingTimesheetsAction{client: client})
	r.Register(&emailContextAction{client: client})
	r.Register(&fallbackAction{})

	return &Engine{registry: r, resolver: resolver, sessions: sessions, now: now}
}

// History returns the recent messages for a session, or nil when no
// such session exists.
func (e *Engine) History(sessionKey string, max int) []session.Message {
	sess, ok := e.sessions.Get(sessionKey)
	if !ok {
		return nil
	}
	return sess.GetHistory(max)
}

// Reset drops a session so the next turn starts a fresh conversation.
// Reports whether a session existed.
func (e *Engine) Reset(sessionKey string) bool {
	if _, ok := e.sessions.Get(sessionKey); !ok {
		return false
	}
	e.sessions.Delete(sessionKey)
	return true
}

// SessionCount reports the number of live sessions.
func (e *Engine) SessionCount() int { return e.sessions.Count() }

// ActionNames lists the registered dialogue actions.
func (e *Engine) ActionNames() []string { return e.registry.List() }

// HandleTurn processes one user message and returns the assistant
// replies for it.
func (e *Engine) HandleTurn(ctx context.Context, sessionKey, text string) []string {
	sess := e.sessions.GetOrCreate(sessionKey)
	sess.AddMessage("user", text)

	intent := e.resolver.Resolve(text)
	actionName := intent.Action

	// A halted collector owns follow-up answers that carry no intent of
	// their own.
	if actionName == "default_fallback" {
		if flow := sess.Slot(slotActiveFlow); flow != "" {
			actionName = flow
		}
	}

	entities := make(map[string]string, len(intent.Entities))
	for _, ent := range intent.Entities {
		entities[ent.Name] = ent.Value
	}
	tracker := &Tracker{
		SessionKey: sessionKey,
		Message:    strings.ToLower(text),
		Entities:   entities,
		slots:      sess.Slots(),
	}

	d := &Dispatcher{}
	for depth := 0; ; depth++ {
		if depth > maxFollowUps {
			slog.Error("Follow-up chain exceeded limit", "session", sessionKey, "action", actionName)
			break
		}

		action, ok := e.registry.Get(actionName)
		if !ok {
			slog.Warn("Unknown action, using fallback", "action", actionName)
			action, _ = e.registry.Get("default_fallback")
		}

		events, err := action.Run(ctx, d, tracker)
		if err != nil {
			slog.Error("Action failed", "action", action.Name(), "session", sessionKey, "error", err)
			d.Utter("❌ An error occurred. Please try again.")
			break
		}

		next := ""
		for _, ev := range events {
			switch ev := ev.(type) {
			case SlotSet:
				sess.SetSlot(ev.Name, ev.Value)
				tracker.setSlot(ev.Name, ev.Value)
			case FollowUp:
				next = ev.Action
			}
		}

		if collectorActions[action.Name()] {
			if next == "" {
				// Question asked; the collector resumes next turn.
				sess.SetSlot(slotActiveFlow, action.Name())
			}
		}
		if terminalActions[action.Name()] {
			sess.ClearSlots()
		}

		if next == "" {
			break
		}
		actionName = next
	}

	replies := d.Messages()
	for _, reply := range replies {
		sess.AddMessage("assistant", reply)
	}
	return replies
}
