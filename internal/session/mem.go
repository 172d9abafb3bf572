package session

import "sync"

// MemStore is an in-memory store for tests.
type MemStore struct {
	mu  sync.RWMutex
	cur Session
}

// NewMemStore creates an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Snapshot returns the stored session.
func (s *MemStore) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Persist merges the partial session over the stored one.
func (s *MemStore) Persist(partial Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = merge(s.cur, partial)
	return nil
}

// Clear empties the store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
	return nil
}
