package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "test data",
	}
}

type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to typed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h1 := newTestHandler("PaymentStatusChanged")
		h2 := newTestHandler("PaymentStatusChanged")
		bus.Subscribe(h1)
		bus.Subscribe(h2)

		e1, e2 := newTestEvent("PaymentStatusChanged"), newTestEvent("PaymentStatusChanged")
		require.NoError(t, bus.Publish(ctx, e1, e2))

		assert.Equal(t, []shared.DomainEvent{e1, e2}, h1.getHandled())
		assert.Len(t, h2.getHandled(), 2)
	})

	t.Run("explicit types override handler types", func(t *testing.T) {
		bus := NewInMemoryEventBus(nil)
		h := newTestHandler("RefundCreated")
		bus.Subscribe(h, "ShipmentCreated")

		require.NoError(t, bus.Publish(ctx, newTestEvent("RefundCreated"), newTestEvent("ShipmentCreated")))
		require.Len(t, h.getHandled(), 1)
		assert.Equal(t, "ShipmentCreated", h.getHandled()[0].EventType())
	})

	t.Run("wildcard receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := newTestHandler()
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A"), newTestEvent("B"), nil))
		assert.Len(t, h.getHandled(), 2)
	})

	t.Run("failures do not stop delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := newTestHandler("JournalEntryPosted")
		failing.err = errors.New("boom")
		panicking := newTestHandler("JournalEntryPosted")
		panicking.panicWith = "bad state"
		ok := newTestHandler("JournalEntryPosted")
		bus.Subscribe(failing)
		bus.Subscribe(panicking)
		bus.Subscribe(ok)

		require.NoError(t, bus.Publish(ctx, newTestEvent("JournalEntryPosted")))
		assert.Len(t, ok.getHandled(), 1)
		assert.Equal(t, int64(2), bus.Failures())
	})

	t.Run("no matching handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := newTestHandler("Other")
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("TestEvent")))
		assert.Empty(t, h.getHandled())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newTestHandler("TestEvent")
	bus.Subscribe(h)

	_ = bus.Publish(ctx, newTestEvent("TestEvent"))
	bus.Unsubscribe(h)
	_ = bus.Publish(ctx, newTestEvent("TestEvent"))

	assert.Len(t, h.getHandled(), 1)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	require.NoError(t, bus.Start(ctx))
	assert.True(t, bus.Running())
	require.NoError(t, bus.Stop(ctx))
	assert.False(t, bus.Running())
}
