package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

var _ shared.IdempotencyStore = (*MockIdempotencyStore)(nil)

func TestIdempotentHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate is skipped", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		inner := newTestHandler("RefundCreated")
		h := NewIdempotentHandler(inner, store, time.Minute, zap.NewNop())

		event := newTestEvent("RefundCreated")
		require.NoError(t, h.Handle(ctx, event))
		require.NoError(t, h.Handle(ctx, event))
		require.NoError(t, h.Handle(ctx, newTestEvent("RefundCreated")))

		assert.Len(t, inner.getHandled(), 2)
		assert.Equal(t, []string{"RefundCreated"}, h.EventTypes())
	})

	t.Run("failure releases the key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		inner := newTestHandler("RefundCreated")
		inner.err = errors.New("downstream unavailable")
		h := NewIdempotentHandler(inner, store, 0, nil)

		event := newTestEvent("RefundCreated")
		require.Error(t, h.Handle(ctx, event))

		inner.err = nil
		require.NoError(t, h.Handle(ctx, event))
		assert.Len(t, inner.getHandled(), 2)
	})

	t.Run("store error still delivers", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		event := newTestEvent("ShipmentCreated")
		key := "event:" + event.EventID().String()
		store.On("MarkProcessed", mock.Anything, key, defaultDedupTTL).Return(false, errors.New("redis down"))

		inner := newTestHandler("ShipmentCreated")
		h := NewIdempotentHandler(inner, store, 0, zap.NewNop())

		require.NoError(t, h.Handle(ctx, event))
		assert.Len(t, inner.getHandled(), 1)
		store.AssertExpectations(t)
	})
}
