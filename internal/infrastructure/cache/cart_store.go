package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/platform/internal/domain/cart"
)

const cartKeyPrefix = "cart:"

// RedisCartStore keeps carts as JSON documents with a sliding TTL
type RedisCartStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCartStore creates a cart store on an existing Redis client
func NewRedisCartStore(client redis.UniversalClient, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

// Get returns the stored cart or an empty one
func (s *RedisCartStore) Get(ctx context.Context, customerID string) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+customerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(customerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return &c, nil
}

// Save writes the cart and refreshes its TTL
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+c.CustomerID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

// Delete removes the cart
func (s *RedisCartStore) Delete(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+customerID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

var _ cart.Store = (*RedisCartStore)(nil)

// InMemoryCartStore keeps carts in process memory
type InMemoryCartStore struct {
	carts *ttlMap[cart.Cart]
	ttl   time.Duration
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	return &InMemoryCartStore{carts: newTTLMap[cart.Cart](time.Minute), ttl: ttl}
}

// Get returns a copy of the stored cart or an empty one
func (s *InMemoryCartStore) Get(_ context.Context, customerID string) (*cart.Cart, error) {
	c, ok := s.carts.get(customerID)
	if !ok {
		return cart.New(customerID), nil
	}
	c.Items = append([]cart.Item{}, c.Items...)
	return &c, nil
}

// Save stores a copy of the cart
func (s *InMemoryCartStore) Save(_ context.Context, c *cart.Cart) error {
	stored := *c
	stored.Items = append([]cart.Item{}, c.Items...)
	s.carts.set(c.CustomerID, stored, s.ttl)
	return nil
}

// Delete removes the cart
func (s *InMemoryCartStore) Delete(_ context.Context, customerID string) error {
	s.carts.delete(customerID)
	return nil
}

// Close stops the cleanup goroutine
func (s *InMemoryCartStore) Close() error {
	return s.carts.Close()
}

var _ cart.Store = (*InMemoryCartStore)(nil)
