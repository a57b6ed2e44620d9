// Package session provides conversation session management.
package session

import (
	"sync"
	"time"
)

// Message represents a chat message in a session.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Session represents a conversation session. Slots hold the in-flight
// form state for whichever workflow the user is filling in.
type Session struct {
	Key       string    `json:"key"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	slots     map[string]string
	mu        sync.RWMutex
}

// NewSession creates a new session with the given key.
func NewSession(key string) *Session {
	now := time.Now()
	return &Session{
		Key:       key,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
		slots:     map[string]string{},
	}
}

// AddMessage adds a message to the session.
func (s *Session) AddMessage(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

// GetHistory returns the recent message history.
func (s *Session) GetHistory(maxMessages int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.Messages) <= maxMessages {
		result := make([]Message, len(s.Messages))
		copy(result, s.Messages)
		return result
	}
	result := make([]Message, maxMessages)
	copy(result, s.Messages[len(s.Messages)-maxMessages:])
	return result
}

// Slot returns a slot value, or "" when unset.
func (s *Session) Slot(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[name]
}

// SetSlot stores a slot value.
func (s *Session) SetSlot(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = value
	s.UpdatedAt = time.Now()
}

// Slots returns a copy of the current slot state.
func (s *Session) Slots() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]string, len(s.slots))
	for k, v := range s.slots {
		result[k] = v
	}
	return result
}

// ClearSlots drops all slot state. Called once a workflow completes so
// the next request starts from a clean form.
func (s *Session) ClearSlots() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = map[string]string{}
	s.UpdatedAt = time.Now()
}

// Manager holds all active sessions in memory. Sessions are ephemeral
// and are not persisted across restarts.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for key, creating it if needed.
func (m *Manager) GetOrCreate(key string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		return s
	}
	s := NewSession(key)
	m.sessions[key] = s
	return s
}

// Get returns the session for key if it exists.
func (m *Manager) Get(key string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[key]
	return s, ok
}

// Delete removes a session.
func (m *Manager) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
