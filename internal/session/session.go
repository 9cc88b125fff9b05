// Package session holds the per-user working state: the active record set
// and the advisor chat transcript.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks a question typed by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a reply from the advisor.
	RoleAssistant Role = "assistant"
)

// Message is one entry of the chat transcript.
type Message struct {
	At      time.Time
	Role    Role
	Content string
	IsError bool
}

// Session is the mutable state of a single user session. Nothing in it is
// persisted; it lives as long as the process.
type Session struct {
	mu         sync.RWMutex
	id         string
	startedAt  time.Time
	records    *models.RecordSet
	transcript []Message
}

// New starts an empty session with a fresh identifier.
func New() *Session {
	return &Session{
		id:        uuid.NewString(),
		startedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// RecordSet returns the active record set, or nil before the first load.
func (s *Session) RecordSet() *models.RecordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// HasData reports whether a record set has been loaded.
func (s *Session) HasData() bool {
	return s.RecordSet() != nil
}

// SetRecordSet replaces the active record set as a whole.
func (s *Session) SetRecordSet(rs *models.RecordSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = rs
}

// Append adds a message to the transcript.
func (s *Session) Append(role Role, content string, isError bool) Message {
	msg := Message{
		At:      time.Now(),
		Role:    role,
		Content: content,
		IsError: isError,
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, msg)
	s.mu.Unlock()
	return msg
}

// Transcript returns a copy of the transcript in insertion order.
func (s *Session) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// ClearTranscript drops every message.
func (s *Session) ClearTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
}
