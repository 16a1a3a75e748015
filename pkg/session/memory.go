package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store backed by a mutex-guarded map.
// Suitable for tests and single-process deployments; sessions do not survive
// a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create persists a brand new session under the given id.
func (m *MemoryStore) Create(_ context.Context, id string) (*Session, error) {
	s := New(id)
	m.mu.Lock()
	m.sessions[id] = s.Clone()
	m.mu.Unlock()
	return s, nil
}

// FindOrCreate returns the stored session or creates one.
func (m *MemoryStore) FindOrCreate(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s.Clone(), nil
	}
	return m.Create(ctx, id)
}

// Save upserts the full session record.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	m.sessions[s.SessionID] = s.Clone()
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
