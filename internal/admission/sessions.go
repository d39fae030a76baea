// Package admission protects the workflow engine from abuse and memory
// growth: per-user windowed rate limiting, lazy session creation with
// liveness tracking, and periodic expiry of idle sessions.
package admission

import (
	"log/slog"
	"sync"
	"time"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// SessionStore owns the live sessions, keyed by user id. It has an
// explicit lifecycle: constructed at process start, swept on a timer,
// dropped at shutdown. The store lock guards only the map; each session
// carries its own lock for field mutations.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*models.Session)}
}

// Get returns the session for userID if one exists.
func (st *SessionStore) Get(userID string) (*models.Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[userID]
	return s, ok
}

// Touch returns the session for userID, creating it with default field
// values on first contact, and refreshes its liveness timestamp.
func (st *SessionStore) Touch(userID string) *models.Session {
	st.mu.Lock()
	s, ok := st.sessions[userID]
	if !ok {
		s = models.NewSession(userID)
		st.sessions[userID] = s
		slog.Debug("SessionStore created session", "user", userID)
	}
	st.mu.Unlock()

	s.Lock()
	s.LastActivity = time.Now()
	s.Unlock()
	return s
}

// Remove drops the session for userID.
func (st *SessionStore) Remove(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Keys returns a snapshot of the session ids. The sweeper iterates over
// this snapshot so removals never mutate the map mid-iteration and
// admission decisions for unrelated users are never blocked.
func (st *SessionStore) Keys() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	keys := make([]string, 0, len(st.sessions))
	for k := range st.sessions {
		keys = append(keys, k)
	}
	return keys
}
