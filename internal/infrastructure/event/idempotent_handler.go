package event

import (
	"context"
	"time"

	"github.com/storefront/platform/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultDedupTTL = 24 * time.Hour
	dedupKeyPrefix  = "event:"
)

// IdempotentHandler skips events whose id was already handled. A failed
// attempt releases the id so a redelivery is processed again.
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	ttl     time.Duration
	logger  *zap.Logger
}

// NewIdempotentHandler wraps handler. A non-positive ttl uses 24h.
func NewIdempotentHandler(handler shared.EventHandler, store shared.IdempotencyStore, ttl time.Duration, logger *zap.Logger) *IdempotentHandler {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdempotentHandler{handler: handler, store: store, ttl: ttl, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle implements shared.EventHandler
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	key := dedupKeyPrefix + event.EventID().String()

	fresh, err := h.store.MarkProcessed(ctx, key, h.ttl)
	switch {
	case err != nil:
		// store outage: deliver rather than drop
		h.logger.Warn("idempotency check failed, processing anyway",
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
	case !fresh:
		h.logger.Debug("duplicate event skipped",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		if relErr := h.store.Release(ctx, key); relErr != nil {
			h.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(relErr))
		}
		return err
	}
	return nil
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
