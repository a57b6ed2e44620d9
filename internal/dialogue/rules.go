package dialogue

import (
	"strings"
	"time"
)

// RuleContext carries what a rule may look at: the lowercased message
// and the current time for relative-date resolution.
type RuleContext struct {
	Message string
	Now     time.Time
}

// Rule maps a message pattern to a slot value. Tables are ordered and
// the first matching rule wins.
type Rule struct {
	Match   func(RuleContext) bool
	Resolve func(RuleContext) string
}

// apply walks a rule table in order and returns the first hit.
func apply(rules []Rule, rc RuleContext) (string, bool) {
	for _, r := range rules {
		if r.Match(rc) {
			return r.Resolve(rc), true
		}
	}
	return "", false
}

func anyWord(words ...string) func(RuleContext) bool {
	return func(rc RuleContext) bool {
		for _, w := range words {
			if strings.Contains(rc.Message, w) {
				return true
			}
		}
		return false
	}
}

func literal(value string) func(RuleContext) string {
	return func(RuleContext) string { return value }
}

func isoDate(t time.Time) string { return t.Format("2006-01-02") }

// workDateRules resolve the date a timesheet covers. Work already
// happened, so only today and yesterday are meaningful.
var workDateRules = []Rule{
	{anyWord("today"), func(rc RuleContext) string { return isoDate(rc.Now) }},
	{anyWord("yesterday"), func(rc RuleContext) string { return isoDate(rc.Now.AddDate(0, 0, -1)) }},
}

// leaveDateRules resolve the date of a leave request. Leave is planned
// forward, so tomorrow and next week join today.
var leaveDateRules = []Rule{
	{anyWord("today"), func(rc RuleContext) string { return isoDate(rc.Now) }},
	{anyWord("tomorrow"), func(rc RuleContext) string { return isoDate(rc.Now.AddDate(0, 0, 1)) }},
	{anyWord("next week"), func(rc RuleContext) string { return isoDate(rc.Now.AddDate(0, 0, 7)) }},
}

var fromTimeRules = []Rule{
	{anyWord("9am", "9:00", "09:00"), literal("09:00")},
	{anyWord("8am", "8:00", "08:00"), literal("08:00")},
	{anyWord("10am", "10:00"), literal("10:00")},
}

var toTimeRules = []Rule{
	{anyWord("5pm", "17:00", "5:00pm"), literal("17:00")},
	{anyWord("6pm", "18:00", "6:00pm"), literal("18:00")},
	{anyWord("4pm", "16:00", "4:00pm"), literal("16:00")},
}

var taskSummaryRules = []Rule{
	{anyWord("coding", "programming"), literal("Coding and development work")},
	{anyWord("meeting"), literal("Meetings and discussions")},
	{anyWord("documentation"), literal("Documentation work")},
	{anyWord("project"), literal("Project work")},
}

var leaveTypeRules = []Rule{
	{anyWord("sick"), literal("Sick Leave")},
	{anyWord("vacation", "holiday"), literal("Vacation")},
	{anyWord("personal"), literal("Personal Leave")},
	{anyWord("medical"), literal("Medical Leave")},
	{anyWord("maternity"), literal("Maternity Leave")},
}

var leaveReasonRules = []Rule{
	{anyWord("illness", "sick"), literal("Illness")},
	{anyWord("family"), literal("Family emergency")},
	{anyWord("personal"), literal("Personal reasons")},
	{anyWord("vacation"), literal("Vacation")},
}

// recipientRules prefer a literal address in the message over the
// role shorthands.
var recipientRules = []Rule{
	{
		Match: func(rc RuleContext) bool { return extractAddress(rc.Message) != "" },
		Resolve: func(rc RuleContext) string { return extractAddress(rc.Message) },
	},
	{anyWord("manager"), literal("manager@company.com")},
	{anyWord("team"), literal("team@company.com")},
	{anyWord("client"), literal("client@company.com")},
}

// subjectRules grab the first word after "subject" or "about".
var subjectRules = []Rule{
	{anyWord("subject"), func(rc RuleContext) string { return firstWordAfter(rc.Message, "subject") }},
	{anyWord("about"), func(rc RuleContext) string { return firstWordAfter(rc.Message, "about") }},
}

// contentRules take everything after "content" or "message".
var contentRules = []Rule{
	{anyWord("content"), func(rc RuleContext) string { return remainderAfter(rc.Message, "content") }},
	{anyWord("message"), func(rc RuleContext) string { return remainderAfter(rc.Message, "message") }},
}

var priorityRules = []Rule{
	{anyWord("high", "urgent", "important"), literal("High")},
	{anyWord("low", "minor"), literal("Low")},
}

// titleRules pick the word following a task verb, skipping anything too
// short to be a title.
var titleRules = []Rule{
	{
		Match:   func(rc RuleContext) bool { return extractTitle(rc.Message) != "" },
		Resolve: func(rc RuleContext) string { return extractTitle(rc.Message) },
	},
}

func extractAddress(msg string) string {
	for _, word := range strings.Fields(msg) {
		if strings.Contains(word, "@") && strings.Contains(word, ".") {
			return strings.Trim(word, ".,!?")
		}
	}
	return ""
}

func firstWordAfter(msg, keyword string) string {
	_, rest, ok := strings.Cut(msg, keyword)
	if !ok {
		return ""
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func remainderAfter(msg, keyword string) string {
	_, rest, ok := strings.Cut(msg, keyword)
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

func extractTitle(msg string) string {
	for _, keyword := range []string{"task", "create", "add", "new"} {
		if !strings.Contains(msg, keyword) {
			continue
		}
		if word := firstWordAfter(msg, keyword); len(word) > 2 {
			return word
		}
	}
	return ""
}
