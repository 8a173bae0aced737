package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

type storedState struct {
	state   State
	touched time.Time
}

// Store keeps session states in memory. Each state belongs to a single
// browser session and is never shared between sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]storedState
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a Store. Sessions idle for longer than ttl are dropped;
// a non-positive ttl keeps them until the process exits.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]storedState),
		ttl:      ttl,
		now:      time.Now,
	}
}

// New creates an empty session and returns its state.
func (s *Store) New() State {
	state := State{ID: uuid.NewString()}
	s.Save(state)
	return state
}

// Get returns the state of a session.
func (s *Store) Get(id string) (State, error) {
	if _, err := uuid.Parse(id); err != nil {
		return State{}, ErrNotFound
	}

	s.mu.RLock()
	stored, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.expired(stored) {
		return State{}, ErrNotFound
	}

	return stored.state, nil
}

// Save stores the state under its ID.
func (s *Store) Save(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.ID] = storedState{state: state, touched: s.now()}
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Prune drops expired sessions and returns how many were removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, stored := range s.sessions {
		if s.expired(stored) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *Store) expired(stored storedState) bool {
	return s.ttl > 0 && s.now().Sub(stored.touched) > s.ttl
}
