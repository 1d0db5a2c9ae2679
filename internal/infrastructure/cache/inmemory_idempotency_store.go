package cache

import (
	"context"
	"time"

	"github.com/storefront/platform/internal/domain/shared"
)

// InMemoryIdempotencyStore implements IdempotencyStore for single-instance
// deployments and tests
type InMemoryIdempotencyStore struct {
	keys *ttlMap[struct{}]
}

// NewInMemoryIdempotencyStore creates a new in-memory idempotency store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{keys: newTTLMap[struct{}](5 * time.Minute)}
}

// MarkProcessed returns true if the key was newly marked
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	return s.keys.setIfAbsent(key, struct{}{}, ttl), nil
}

// IsProcessed checks if a key is marked and not expired
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	_, ok := s.keys.get(key)
	return ok, nil
}

// Release forgets a key
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.keys.delete(key)
	return nil
}

// Close stops the cleanup goroutine
func (s *InMemoryIdempotencyStore) Close() error {
	return s.keys.Close()
}

// Size returns the number of entries in the store
func (s *InMemoryIdempotencyStore) Size() int {
	return s.keys.len()
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
