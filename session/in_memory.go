package session

import (
	"sync"
	"time"

	"github.com/agencyos/leadbot/core"
)

// InMemoryStore is a volatile SessionStore implementation keeping sessions in
// a process-local map guarded by a single coarse reader/writer lock. There is
// no per-session sharding: reads run concurrently, every mutation serializes
// against all reads and writes. Store size is bounded by concurrent active
// users because expired entries are reclaimed at a fixed cadence, so the
// full-scan purge stays cheap.
//
// Two concurrent turns against the same session id can interleave their read
// and write phases (last-write-wins on state/data). That consistency gap is
// part of the store's contract; callers must not assume per-session
// read-modify-write atomicity.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
	ttl      time.Duration
}

// NewInMemoryStore constructs an empty in-memory session store whose sessions
// expire after ttl of inactivity.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session), ttl: ttl}
}

// Create allocates a fresh unique id and inserts a new session under it.
func (s *InMemoryStore) Create() string {
	id := core.NewID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createLocked(id)
	return id
}

// Ensure guarantees a session exists under the externally supplied id. If one
// already exists it is left untouched.
func (s *InMemoryStore) Ensure(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		s.createLocked(id)
	}
}

// AppendMessage pushes a message onto the session history, silently creating
// the session when absent, and returns the new history length.
func (s *InMemoryStore) AppendMessage(id string, role core.Role, content string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = s.createLocked(id)
	}
	sess.Messages = append(sess.Messages, core.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	sess.LastActive = time.Now()
	return len(sess.Messages)
}

// GetState returns the session state, or StateIdle when id is unknown.
func (s *InMemoryStore) GetState(id string) core.ConversationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.State
	}
	return core.StateIdle
}

// SetState updates the session state and touches last_active. Unknown ids are
// silently discarded.
func (s *InMemoryStore) SetState(id string, state core.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.State = state
		sess.LastActive = time.Now()
	}
}

// GetData returns a copy of the session data, or defaults when id is unknown.
func (s *InMemoryStore) GetData(id string) core.SessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.Data.Clone()
	}
	return core.SessionData{}
}

// SetData replaces the session data and touches last_active. Unknown ids are
// silently discarded.
func (s *InMemoryStore) SetData(id string, data core.SessionData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.Data = data.Clone()
		sess.LastActive = time.Now()
	}
}

// GetHistory returns an independent copy of the message history. The boolean
// is false when the session never existed, distinguishing that from an
// existing session with no messages yet.
func (s *InMemoryStore) GetHistory(id string) ([]core.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	history := make([]core.Message, len(sess.Messages))
	copy(history, sess.Messages)
	return history, true
}

// Remove deletes the session, reporting whether one existed.
func (s *InMemoryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// PurgeExpired removes every session whose idle time as of now has reached
// the store TTL and returns the count removed. It is a full scan under the
// exclusive lock, intended to be driven by a background scheduler rather than
// the request path.
func (s *InMemoryStore) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActive) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SessionIDs returns the ids of all live sessions in unspecified order.
func (s *InMemoryStore) SessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// createLocked allocates and stores a new session; caller must already hold
// the write lock.
func (s *InMemoryStore) createLocked(id string) *core.Session {
	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess
}
