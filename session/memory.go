package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process [Store] for tests and demos. It honours the
// same absent/clear/schema semantics as the durable stores.
type MemoryStore struct {
	mu      sync.Mutex
	sess    *Session
	version int
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a deep copy of the stored session, or the absent session.
func (s *MemoryStore) Load(_ context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sess.Authenticated() {
		return nil, nil
	}
	return s.sess.Clone(), nil
}

// Save stores a deep copy of the session.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess.Clone()
	return nil
}

// Clear drops the session. Idempotent.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

// EnsureSchema wipes the session and records the new tag on mismatch.
func (s *MemoryStore) EnsureSchema(_ context.Context, currentVersion int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version == currentVersion {
		return false, nil
	}
	s.sess = nil
	s.version = currentVersion
	return true, nil
}
