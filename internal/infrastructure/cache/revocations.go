package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/platform/internal/infrastructure/auth"
)

const revokedKeyPrefix = "auth:revoked:"

// InMemoryRevocationList keeps revoked token ids in process memory
type InMemoryRevocationList struct {
	ids *ttlMap[struct{}]
}

func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{ids: newTTLMap[struct{}](time.Minute)}
}

// Revoke ignores tokens that have already expired
func (l *InMemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		l.ids.set(jti, struct{}{}, ttl)
	}
	return nil
}

func (l *InMemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := l.ids.get(jti)
	return ok, nil
}

func (l *InMemoryRevocationList) Close() error { return l.ids.Close() }

// RedisRevocationList shares revocations between instances. Keys expire
// with the token so nothing needs sweeping.
type RedisRevocationList struct {
	client redis.UniversalClient
}

func NewRedisRevocationList(client redis.UniversalClient) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("look up revoked token %s: %w", jti, err)
	}
	return n == 1, nil
}

var (
	_ auth.RevocationList = (*InMemoryRevocationList)(nil)
	_ auth.RevocationList = (*RedisRevocationList)(nil)
)
