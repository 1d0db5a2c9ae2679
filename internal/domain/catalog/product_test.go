package catalog

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("normalises sku", func(t *testing.T) {
		p, err := NewProduct(" spk-100 ", "Speaker", decimal.NewFromInt(99))
		require.NoError(t, err)
		assert.Equal(t, "SPK-100", p.SKU)
		assert.True(t, p.IsActive)
		assert.Equal(t, "pcs", p.Unit)
		require.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("SPK-1", "Speaker", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})

	t.Run("rejects invalid sku characters", func(t *testing.T) {
		_, err := NewProduct("SPK 1", "Speaker", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU can only contain")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("SPK-1", "", decimal.Zero)
		require.Error(t, err)
	})
}

func TestProduct_Remove(t *testing.T) {
	p, err := NewProduct("SPK-1", "Speaker", decimal.NewFromInt(10))
	require.NoError(t, err)
	p.ClearDomainEvents()

	p.Remove()
	assert.False(t, p.IsActive)
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeProductDeactivated, p.GetDomainEvents()[0].EventType())

	p.Remove()
	assert.Len(t, p.GetDomainEvents(), 1, "removing twice raises no second event")

	p.Restore()
	assert.True(t, p.IsActive)
}

func TestProduct_AdjustStock(t *testing.T) {
	p, err := NewProduct("SPK-1", "Speaker", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, p.AdjustStock(5))
	assert.Equal(t, 5, p.StockQuantity)

	err = p.AdjustStock(-6)
	require.Error(t, err)
	assert.Equal(t, 5, p.StockQuantity)

	require.NoError(t, p.AdjustStock(-5))
	assert.True(t, p.IsLowStock(0))
}

func TestProduct_AdjustStock_Bounds(t *testing.T) {
	p, err := NewProduct("SPK-2", "Speaker", decimal.NewFromInt(10))
	require.NoError(t, err)

	err = p.AdjustStock(math.MaxInt32 + 1)
	assert.True(t, shared.IsKind(err, shared.KindValidation))

	require.NoError(t, p.AdjustStock(math.MaxInt32))
	err = p.AdjustStock(1)
	assert.True(t, shared.IsKind(err, shared.KindValidation), "total stays within the column range")
	assert.Equal(t, math.MaxInt32, p.StockQuantity)

	err = p.AdjustStock(-math.MaxInt32 - 1)
	assert.True(t, shared.IsKind(err, shared.KindValidation))
}

func TestProduct_SetBarcode(t *testing.T) {
	p, err := NewProduct("SPK-1", "Speaker", decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, p.SetBarcode("4006381333931"))
	require.NotNil(t, p.Barcode)
	assert.Equal(t, "4006381333931", *p.Barcode)

	require.NoError(t, p.SetBarcode(""))
	assert.Nil(t, p.Barcode)
}

func TestProduct_ProfitMargin(t *testing.T) {
	p, err := NewProduct("SPK-1", "Speaker", decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.True(t, p.ProfitMargin().IsZero())

	require.NoError(t, p.SetPrices(decimal.NewFromInt(150), decimal.NewFromInt(100)))
	assert.Equal(t, "50", p.ProfitMargin().String())
}
