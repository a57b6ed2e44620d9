// Package dialogue implements the deterministic slot-filling engine
// behind the assistant: collectors ask for missing fields one question
// per turn, creators call the backend once a form is complete, and
// report actions render read-only summaries.
package dialogue

import (
	"context"
)

// Event is a side effect an action requests from the engine.
type Event interface{ isEvent() }

// SlotSet records a slot value on the session.
type SlotSet struct {
	Name  string
	Value string
}

// FollowUp schedules another action in the same turn.
type FollowUp struct {
	Action string
}

func (SlotSet) isEvent()  {}
func (FollowUp) isEvent() {}

// Tracker is the read view of the current turn: the user message, the
// entities the resolver extracted, and the session's slot state.
type Tracker struct {
	SessionKey string
	// Message is the lowercased user text; keyword rules match on it.
	Message  string
	Entities map[string]string
	slots    map[string]string
}

// Slot returns a slot value, or "" when unset.
func (t *Tracker) Slot(name string) string { return t.slots[name] }

// SlotOr returns a slot value, falling back when unset.
func (t *Tracker) SlotOr(name, fallback string) string {
	if v := t.slots[name]; v != "" {
		return v
	}
	return fallback
}

// Entity returns an extracted entity value, or "" when absent.
func (t *Tracker) Entity(name string) string { return t.Entities[name] }

func (t *Tracker) setSlot(name, value string) {
	if t.slots == nil {
		t.slots = map[string]string{}
	}
	t.slots[name] = value
}

// Dispatcher collects the messages an action wants to send back.
type Dispatcher struct {
	messages []string
}

// Utter queues a message for the user.
func (d *Dispatcher) Utter(text string) {
	d.messages = append(d.messages, text)
}

// Messages returns everything uttered this turn.
func (d *Dispatcher) Messages() []string { return d.messages }

// Action is a single dialogue step.
type Action interface {
	// Name returns the action identifier the resolver routes to.
	Name() string
	// Run executes the action, uttering messages through the dispatcher
	// and returning the events the engine should apply.
	Run(ctx context.Context, d *Dispatcher, tr *Tracker) ([]Event, error)
}

// Registry manages action registration and lookup.
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds an action to the registry.
func (r *Registry) Register(a Action) {
	r.actions[a.Name()] = a
}

// Get returns an action by name.
func (r *Registry) Get(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// List returns the names of all registered actions.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	return names
}
