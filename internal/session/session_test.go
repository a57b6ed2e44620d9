package session

import "testing"

func TestManagerGetOrCreate(t *testing.T) {
	m := NewManager()
	a := m.GetOrCreate("web:alice")
	b := m.GetOrCreate("web:alice")
	if a != b {
		t.Fatal("expected the same session for the same key")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Count())
	}
}

func TestSlotLifecycle(t *testing.T) {
	s := NewSession("test")
	if s.Slot("date") != "" {
		t.Fatal("expected empty slot")
	}
	s.SetSlot("date", "2025-07-28")
	s.SetSlot("leave_type", "Sick Leave")
	if s.Slot("date") != "2025-07-28" {
		t.Fatalf("unexpected slot value %q", s.Slot("date"))
	}

	snapshot := s.Slots()
	snapshot["date"] = "mutated"
	if s.Slot("date") != "2025-07-28" {
		t.Fatal("Slots must return a copy")
	}

	s.ClearSlots()
	if s.Slot("date") != "" || s.Slot("leave_type") != "" {
		t.Fatal("expected all slots cleared")
	}
}

func TestHistoryTruncation(t *testing.T) {
	s := NewSession("test")
	for i := 0; i < 10; i++ {
		s.AddMessage("user", "hello")
	}
	if got := len(s.GetHistory(4)); got != 4 {
		t.Fatalf("expected 4 messages, got %d", got)
	}
	if got := len(s.GetHistory(20)); got != 10 {
		t.Fatalf("expected 10 messages, got %d", got)
	}
}
