package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/catalog"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var noID *uuid.UUID

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product", func(t *testing.T) {
		products, categories := new(MockProductRepository), new(MockCategoryRepository)
		svc := NewProductService(products, categories, nil, nil)
		products.On("ExistsBySKU", ctx, "TSHIRT-01", noID).Return(false, nil)
		products.On("ExistsByBarcode", ctx, "8901234567890", noID).Return(false, nil)
		products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			SKU:           "tshirt-01",
			Name:          "T-Shirt",
			Barcode:       "8901234567890",
			Price:         decimal.NewFromInt(499),
			StockQuantity: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, "TSHIRT-01", resp.SKU)
		assert.Equal(t, 20, resp.StockQuantity)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate SKU conflicts", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, new(MockCategoryRepository), nil, nil)
		products.On("ExistsBySKU", ctx, "SKU-1", noID).Return(true, nil)

		_, err := svc.Create(ctx, CreateProductRequest{SKU: "SKU-1", Name: "X", Price: decimal.NewFromInt(1)})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate barcode conflicts", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, new(MockCategoryRepository), nil, nil)
		products.On("ExistsBySKU", ctx, "SKU-2", noID).Return(false, nil)
		products.On("ExistsByBarcode", ctx, "123", noID).Return(true, nil)

		_, err := svc.Create(ctx, CreateProductRequest{SKU: "SKU-2", Name: "X", Barcode: "123", Price: decimal.NewFromInt(1)})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
	})

	t.Run("unknown category is a validation error", func(t *testing.T) {
		products, categories := new(MockProductRepository), new(MockCategoryRepository)
		svc := NewProductService(products, categories, nil, nil)
		catID := uuid.New()
		products.On("ExistsBySKU", ctx, "SKU-3", noID).Return(false, nil)
		categories.On("FindByID", ctx, catID).Return(nil, shared.NewNotFoundError("Category"))

		_, err := svc.Create(ctx, CreateProductRequest{SKU: "SKU-3", Name: "X", CategoryID: &catID, Price: decimal.NewFromInt(1)})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})
}

func TestProductService_Delete_IsSoft(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockCategoryRepository), nil, nil)
	p, err := catalog.NewProduct("SKU-9", "Mug", decimal.NewFromInt(199))
	require.NoError(t, err)
	products.On("FindByID", ctx, p.ID).Return(p, nil)
	products.On("Save", ctx, p).Return(nil)

	resp, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	found, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestProductService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockCategoryRepository), nil, nil)
	p, _ := catalog.NewProduct("SKU-5", "Pen", decimal.NewFromInt(10))
	products.On("FindByID", ctx, p.ID).Return(p, nil)
	products.On("Save", ctx, p).Return(nil)

	resp, err := svc.AdjustStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.StockQuantity)

	_, err = svc.AdjustStock(ctx, p.ID, -6)
	require.Error(t, err)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestProductService_AdjustStock_ReplaysStaleWrite(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockCategoryRepository), nil, nil)
	stale, _ := catalog.NewProduct("SKU-6", "Ink", decimal.NewFromInt(10))
	fresh := *stale
	fresh.StockQuantity = 4

	products.On("FindByID", ctx, stale.ID).Return(stale, nil).Once()
	products.On("Save", ctx, stale).Return(shared.NewConflictError("CONCURRENT_MODIFICATION", "Product was modified")).Once()
	products.On("FindByID", ctx, stale.ID).Return(&fresh, nil).Once()
	products.On("Save", ctx, &fresh).Return(nil).Once()

	resp, err := svc.AdjustStock(ctx, stale.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.StockQuantity, "the delta lands on the row that won the race")
	products.AssertExpectations(t)

	products.On("FindByID", ctx, stale.ID).Return(&fresh, nil)
	products.On("Save", ctx, &fresh).Return(shared.ErrStaleWrite)
	_, err = svc.AdjustStock(ctx, stale.ID, 1)
	assert.ErrorIs(t, err, shared.ErrStaleWrite)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockCategoryRepository), nil, nil)
	p, _ := catalog.NewProduct("SKU-7", "Cap", decimal.NewFromInt(50))
	products.On("FindAll", ctx, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		return f.Page == 2 && f.PageSize == 5 && f.Search == "cap"
	})).Return([]catalog.Product{*p}, int64(6), nil)

	items, total, err := svc.List(ctx, ProductListQuery{Page: 2, PageSize: 5, Search: "cap"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(6), total)
}
