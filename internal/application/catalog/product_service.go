package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/catalog"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold is used when no threshold is given
const DefaultLowStockThreshold = 10

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		events:       events,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.SKU, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSKU(ctx, product.SKU, nil); err != nil {
		return nil, err
	}
	if err := product.SetBarcode(req.Barcode); err != nil {
		return nil, err
	}
	if product.Barcode != nil {
		if err := s.ensureUniqueBarcode(ctx, *product.Barcode, nil); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if err := product.Update(req.Name, req.Description, req.Unit); err != nil {
		return nil, err
	}
	if req.CostPrice != nil {
		if err := product.SetPrices(product.Price, *req.CostPrice); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity > 0 {
		if err := product.AdjustStock(req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		logger.With(ctx, s.logger).Error("Failed to create product", zap.String("sku", product.SKU), zap.String("kind", string(shared.KindOf(err))), zap.Error(err))
		return nil, err
	}
	s.publish(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a product, including soft deleted ones
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU returns a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products and the total match count
func (s *ProductService) List(ctx context.Context, q ProductListQuery) ([]ProductResponse, int64, error) {
	filter := shared.NewListOptions(q.Page, q.PageSize)
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}
	filter.Search = q.Search

	products, total, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{
		ListOptions: filter,
		CategoryID:  q.CategoryID,
		Active:      q.Active,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update changes the supplied fields of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		if err := product.SetSKU(*req.SKU); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueSKU(ctx, product.SKU, &product.ID); err != nil {
			return nil, err
		}
	}
	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
		if product.Barcode != nil {
			if err := s.ensureUniqueBarcode(ctx, *product.Barcode, &product.ID); err != nil {
				return nil, err
			}
		}
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	name, description, unit := product.Name, product.Description, ""
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if err := product.Update(name, description, unit); err != nil {
		return nil, err
	}

	price, cost := product.Price, product.CostPrice
	if req.Price != nil {
		price = *req.Price
	}
	if req.CostPrice != nil {
		cost = *req.CostPrice
	}
	if err := product.SetPrices(price, cost); err != nil {
		return nil, err
	}

	if req.IsActive != nil {
		if *req.IsActive {
			product.Restore()
		} else {
			product.Remove()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// stockAttempts bounds how often AdjustStock reloads after losing a race
const stockAttempts = 3

// AdjustStock applies a signed delta to the stock level. Deltas commute, so
// a save that lost to a concurrent adjustment is replayed on a fresh read.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*ProductResponse, error) {
	var (
		product *catalog.Product
		err     error
	)
	for attempt := 1; ; attempt++ {
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := product.AdjustStock(delta); err != nil {
			return nil, err
		}
		err = s.productRepo.Save(ctx, product)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrStaleWrite) || attempt == stockAttempts {
			return nil, err
		}
		logger.With(ctx, s.logger).Debug("Retrying stock adjustment", zap.String("product_id", id.String()), zap.Int("attempt", attempt))
	}
	s.publish(ctx, product)
	resp := ToProductResponse(product)
	return &resp, nil
}

// LowStock lists active products at or under the threshold
func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]ProductResponse, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	products, err := s.productRepo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Delete soft deletes a product. The row stays and remains readable.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Remove()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)
	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) ensureUniqueSKU(ctx context.Context, sku string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySKU(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("DUPLICATE_SKU", "Product with this SKU already exists")
	}
	return nil
}

func (s *ProductService) ensureUniqueBarcode(ctx context.Context, barcode string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsByBarcode(ctx, barcode, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("DUPLICATE_BARCODE", "Product with this barcode already exists")
	}
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return shared.NewValidationError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	publishEvents(ctx, s.events, s.logger, product)
}

// publishEvents drains src once its write has committed. Publish failures
// are logged and never fail the request.
func publishEvents(ctx context.Context, events shared.EventPublisher, log *zap.Logger, src shared.EventSource) {
	pending := src.GetDomainEvents()
	src.ClearDomainEvents()
	if events == nil || len(pending) == 0 {
		return
	}
	if err := events.Publish(ctx, pending...); err != nil {
		logger.With(ctx, log).Warn("Failed to publish catalog events", zap.Error(err))
	}
}
