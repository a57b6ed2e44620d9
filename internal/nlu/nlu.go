// Package nlu is the intent-classification boundary. The dialogue engine
// only sees the Resolver interface; a trained model, an external service,
// or a pre-classified webhook payload can all sit behind it.
package nlu

import (
	"regexp"
	"strings"
)

// Entity is a named value extracted from a user message.
type Entity struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Intent is the resolved action for a user turn plus any entities.
type Intent struct {
	Action   string   `json:"action"`
	Entities []Entity `json:"entities,omitempty"`
}

// Resolver maps a raw user message to an intent.
type Resolver interface {
	Resolve(text string) Intent
}

// KeywordResolver is a demo-grade Resolver built on phrase matching.
// It exists so the assistant works out of the box without a trained
// model; real deployments should plug in a proper classifier.
type KeywordResolver struct{}

// NewKeywordResolver returns the default phrase-matching resolver.
func NewKeywordResolver() *KeywordResolver {
	return &KeywordResolver{}
}

var (
	trailingID = regexp.MustCompile(`\b(\d+)\b`)
	byApprover = regexp.MustCompile(`\bby\s+(\w+)`)
)

func containsAny(msg string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// Resolve classifies a message. Administrative phrases are checked before
// the workflow phrases so "show all data" never falls into a list flow.
func (r *KeywordResolver) Resolve(text string) Intent {
	msg := strings.ToLower(strings.TrimSpace(text))

	switch {
	case containsAny(msg, "approve timesheet"):
		intent := Intent{Action: "approve_timesheet"}
		if m := trailingID.FindStringSubmatch(msg); m != nil {
			intent.Entities = append(intent.Entities, Entity{Name: "timesheet_id", Value: m[1]})
		}
		if m := byApprover.FindStringSubmatch(msg); m != nil {
			intent.Entities = append(intent.Entities, Entity{Name: "approver", Value: m[1]})
		}
		return intent

	case containsAny(msg, "show all data", "all data", "dashboard"):
		return Intent{Action: "get_all_data"}

	case containsAny(msg, "detailed timesheet"):
		return Intent{Action: "get_detailed_timesheets"}
	case containsAny(msg, "detailed leave"):
		return Intent{Action: "get_detailed_leaves"}
	case containsAny(msg, "detailed email"):
		return Intent{Action: "get_detailed_emails"}
	case containsAny(msg, "detailed task"):
		return Intent{Action: "get_detailed_tasks"}

	case strings.Contains(msg, "pending timesheet"):
		if containsAny(msg, "submit", "send") {
			intent := Intent{Action: "submit_pending_timesheets"}
			if m := byApprover.FindStringSubmatch(msg); m != nil {
				intent.Entities = append(intent.Entities, Entity{Name: "approver", Value: m[1]})
			}
			return intent
		}
		return Intent{Action: "get_pending_timesheets"}

	case containsAny(msg, "email context"):
		intent := Intent{Action: "get_email_context"}
		if m := trailingID.FindStringSubmatch(msg); m != nil {
			intent.Entities = append(intent.Entities, Entity{Name: "email_id", Value: m[1]})
		}
		return intent

	case strings.Contains(msg, "timesheet"):
		if containsAny(msg, "show", "list", "my timesheets", "view") {
			return Intent{Action: "list_timesheets"}
		}
		return Intent{Action: "collect_timesheet_info"}

	case containsAny(msg, "leave", "vacation", "sick", "holiday", "maternity"):
		if containsAny(msg, "show", "list", "view") {
			return Intent{Action: "list_leaves"}
		}
		return Intent{Action: "collect_leave_info"}

	case containsAny(msg, "email", "mail"):
		if containsAny(msg, "show", "list", "view", "my emails") {
			return Intent{Action: "list_emails"}
		}
		return Intent{Action: "collect_email_info"}

	case strings.Contains(msg, "task"):
		if containsAny(msg, "show", "list", "view", "my tasks") {
			return Intent{Action: "list_tasks"}
		}
		return Intent{Action: "collect_task_info"}
	}

	return Intent{Action: "default_fallback"}
}
