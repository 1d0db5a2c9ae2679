package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/platform/internal/domain/cart"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Stores bundles the key-value backed stores of the service. They share one
// Redis client, or live in memory when no Redis URL is configured.
type Stores struct {
	Client      *redis.Client // nil when in memory
	Idempotency shared.IdempotencyStore
	Carts       cart.Store
	Revocations auth.RevocationList
	closers     []func() error
}

// NewStores creates the stores selected by configuration
func NewStores(ctx context.Context, redisCfg config.RedisConfig, cartTTL time.Duration, logger *zap.Logger) (*Stores, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if redisCfg.URL == "" {
		logger.Warn("REDIS_URL not set, using in-memory stores. " +
			"Carts, idempotency keys and revoked tokens are not shared between instances.")
		idem := NewInMemoryIdempotencyStore()
		carts := NewInMemoryCartStore(cartTTL)
		revoked := NewInMemoryRevocationList()
		return &Stores{
			Idempotency: idem,
			Carts:       carts,
			Revocations: revoked,
			closers:     []func() error{idem.Close, carts.Close, revoked.Close},
		}, nil
	}

	client, err := NewRedisClient(ctx, redisCfg.URL)
	if err != nil {
		return nil, err
	}
	logger.Info("Using Redis stores")
	return &Stores{
		Client:      client,
		Idempotency: NewRedisIdempotencyStore(client, ""),
		Carts:       NewRedisCartStore(client, cartTTL),
		Revocations: NewRedisRevocationList(client),
		closers:     []func() error{client.Close},
	}, nil
}

// Ping checks the Redis connection. In-memory stores are always reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Ping(ctx).Err()
}

// Backend names the storage in use
func (s *Stores) Backend() string {
	if s.Client == nil {
		return "memory"
	}
	return "redis"
}

// Close releases every store
func (s *Stores) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
