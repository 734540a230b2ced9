package core

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLanguage is assumed whenever no language has been inferred yet.
const DefaultLanguage = "en"

// Role identifies the author of a message within a session history.
type Role string

const (
	// RoleUser marks a message written by the end user.
	RoleUser Role = "user"
	// RoleBot marks a reply produced by the dialogue engine.
	RoleBot Role = "bot"
)

// Message is a single entry in a session's conversation history. Messages are
// immutable once appended.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionData accumulates the lead information collected over a conversation.
// Budget is kept as raw text on purpose: it is echoed back to the user and
// persisted verbatim, never computed with.
type SessionData struct {
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Budget   string `json:"budget,omitempty"`
	// DetectedKeywords is an ordered set: insertion order is preserved and
	// duplicates are suppressed. It never shrinks and never reorders.
	DetectedKeywords []string `json:"detected_keywords,omitempty"`
}

// NewSessionData returns the defaults a fresh session starts with.
func NewSessionData() SessionData {
	return SessionData{Language: DefaultLanguage}
}

// Clone returns a deep copy of the data safe for independent mutation.
func (d SessionData) Clone() SessionData {
	cp := d
	if d.DetectedKeywords != nil {
		cp.DetectedKeywords = make([]string, len(d.DetectedKeywords))
		copy(cp.DetectedKeywords, d.DetectedKeywords)
	}
	return cp
}

// AddKeyword appends a topic keyword unless it is already present, keeping
// first-seen order.
func (d *SessionData) AddKeyword(kw string) {
	for _, existing := range d.DetectedKeywords {
		if existing == kw {
			return
		}
	}
	d.DetectedKeywords = append(d.DetectedKeywords, kw)
}

// Session represents one end-user conversation thread. It is owned exclusively
// by a SessionStore; callers only ever see clones, and the dialogue engine
// never holds a reference to a live session.
//
// Contract:
//   - LastActive is refreshed by every mutating store operation
//   - Messages is append-only and insertion order is significant
//   - State changes only as a result of engine evaluation written back
//     through the store, never by direct external mutation
type Session struct {
	ID         string            `json:"id"`
	State      ConversationState `json:"state"`
	Data       SessionData       `json:"data"`
	Messages   []Message         `json:"messages"`
	LastActive time.Time         `json:"last_active"`
}

// NewSession creates a session in the entry state with default data.
func NewSession(id string) *Session {
	return &Session{
		ID:         id,
		State:      StateAskingLanguage,
		Data:       NewSessionData(),
		Messages:   []Message{},
		LastActive: time.Now(),
	}
}

// Clone returns a deep copy of the session (messages and data included).
func (s *Session) Clone() *Session {
	cp := *s
	cp.Data = s.Data.Clone()
	cp.Messages = make([]Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	return &cp
}

// NewID generates a new unique session identifier.
func NewID() string { return uuid.NewString() }

// SessionStore persists sessions, their dialogue state and message history.
// Implementations must be safe for concurrent use. Lookup misses are not
// errors: getters fall back to defaults and setters become silent no-ops, a
// deliberate leniency that keeps the request path error-free.
type SessionStore interface {
	// Create allocates a fresh unique id, inserts a new session in the entry
	// state and returns the id. It always succeeds.
	Create() string
	// Ensure guarantees a session exists under the externally supplied id,
	// creating one if absent. Calling it twice with the same id is idempotent.
	Ensure(id string)
	// AppendMessage pushes a message onto the session history, creating the
	// session if absent, and returns the new history length.
	AppendMessage(id string, role Role, content string) int
	// GetState returns the session state, or StateIdle when id is unknown.
	GetState(id string) ConversationState
	// SetState updates the session state; no-op when id is unknown.
	SetState(id string, state ConversationState)
	// GetData returns a copy of the session data, or zero-value defaults when
	// id is unknown.
	GetData(id string) SessionData
	// SetData replaces the session data; no-op when id is unknown.
	SetData(id string, data SessionData)
	// GetHistory returns an independent copy of the message history. The
	// boolean distinguishes "session never existed" (false) from "session
	// exists with no messages yet" (true, empty slice).
	GetHistory(id string) ([]Message, bool)
	// Remove deletes the session, reporting whether one existed.
	Remove(id string) bool
	// PurgeExpired removes every session idle for at least the store TTL as
	// of now, returning the count removed.
	PurgeExpired(now time.Time) int
}

// MetricsSink receives usage counters from dialogue evaluation. Counters are
// monotonic; there is no decrement and no reset.
type MetricsSink interface {
	IncrLanguage(lang string)
	IncrIntent(intent string)
}
