package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/cart"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCartStore(t *testing.T) {
	store := NewInMemoryCartStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	c, err := store.Get(ctx, "cust-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	require.NoError(t, c.Add(cart.Item{ProductID: "p-1", Name: "Mug", Price: decimal.NewFromInt(250), Quantity: 2}))
	require.NoError(t, store.Save(ctx, c))

	t.Run("returns copies", func(t *testing.T) {
		loaded, err := store.Get(ctx, "cust-1")
		require.NoError(t, err)
		loaded.Items[0].Quantity = 99

		again, err := store.Get(ctx, "cust-1")
		require.NoError(t, err)
		assert.Equal(t, 2, again.Items[0].Quantity)
		assert.Equal(t, "500", again.TotalPrice().String())
	})

	t.Run("delete empties", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "cust-1"))
		loaded, err := store.Get(ctx, "cust-1")
		require.NoError(t, err)
		assert.Equal(t, 0, loaded.TotalItems())
	})
}

func TestInMemoryCartStore_Expiry(t *testing.T) {
	store := NewInMemoryCartStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	c := cart.New("cust-2")
	require.NoError(t, c.Add(cart.Item{ProductID: "p-1", Price: decimal.NewFromInt(1), Quantity: 1}))
	require.NoError(t, store.Save(ctx, c))

	time.Sleep(20 * time.Millisecond)

	loaded, err := store.Get(ctx, "cust-2")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}

func TestNewStores_InMemory(t *testing.T) {
	ctx := context.Background()
	stores, err := NewStores(ctx, config.RedisConfig{}, time.Hour, nil)
	require.NoError(t, err)
	defer stores.Close()

	assert.Nil(t, stores.Client)
	assert.Equal(t, "memory", stores.Backend())
	assert.NoError(t, stores.Ping(ctx))
	assert.IsType(t, &InMemoryCartStore{}, stores.Carts)
	assert.IsType(t, &InMemoryIdempotencyStore{}, stores.Idempotency)
	assert.IsType(t, &InMemoryRevocationList{}, stores.Revocations)
}

func TestNewStores_BadURL(t *testing.T) {
	_, err := NewStores(context.Background(), config.RedisConfig{URL: "not-a-url"}, time.Hour, nil)
	assert.Error(t, err)
}
