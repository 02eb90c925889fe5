package session

import (
	"context"
	"sync"

	"taskvoice/internal/models"
)

// MemoryStore is an in-process store for tests and local development.
// It deliberately violates the durability requirement of production
// deployments, which must use Redis or Postgres.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]models.ConversationState
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]models.ConversationState)}
}

// Get returns a copy of the stored state, nil when absent
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[sessionID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// Set stores a copy of the state record
func (s *MemoryStore) Set(_ context.Context, sessionID string, state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[sessionID] = *state
	return nil
}

// Clear removes the state record
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, sessionID)
	return nil
}
