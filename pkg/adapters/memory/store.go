package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/functree/pkg/domain"
)

// Store implements ports.CorpusStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Fixture
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Fixture),
	}
}

// Save keeps the fixture unless one with the same ID is already stored.
// Trees are immutable, so the stored copy shares the caller's tree.
func (s *Store) Save(ctx context.Context, fx domain.Fixture) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[fx.ID]; ok {
		return false, nil
	}
	s.data[fx.ID] = fx
	return true, nil
}

// Load retrieves a fixture from memory.
func (s *Store) Load(ctx context.Context, id string) (domain.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fx, ok := s.data[id]
	if !ok {
		return domain.Fixture{}, domain.ErrFixtureNotFound
	}
	return fx, nil
}

// Delete removes the fixture.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Len reports how many fixtures are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
