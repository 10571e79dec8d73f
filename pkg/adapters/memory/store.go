package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/workbench/pkg/domain"
)

// Store implements ports.PanelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.PanelState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.PanelState),
	}
}

// Save stores a copy of the state.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.PanelState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = *state
	return nil
}

// Load returns a copy so callers cannot mutate stored state through the pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.PanelState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &state, nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}
