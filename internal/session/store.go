package session

import (
	"fmt"
	"slices"
	"sync"
)

// Store persists sessions by id.
type Store interface {
	Get(id string) (Session, error)
	Put(s Session) error
	Delete(id string) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.Areas = slices.Clone(s.Areas)
	return s, nil
}

func (m *MemoryStore) Put(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Areas = slices.Clone(s.Areas)
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
