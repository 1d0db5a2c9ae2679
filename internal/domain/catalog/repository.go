package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll returns every category ordered by sort order then name
	FindAll(ctx context.Context) ([]Category, error)

	// ExistsByNameUnderParent checks sibling name uniqueness. excludeID, when
	// set, is ignored so an update can keep its own name.
	ExistsByNameUnderParent(ctx context.Context, name string, parentID *uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete hard deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// HasChildren checks if any category has this one as parent
	HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// HasProducts checks if any product references the category
	HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.ListOptions
	CategoryID *uuid.UUID
	Active     *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]Product, error)

	// ExistsBySKU and ExistsByBarcode ignore excludeID when it is set
	ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error)
	ExistsByBarcode(ctx context.Context, barcode string, excludeID *uuid.UUID) (bool, error)

	Save(ctx context.Context, product *Product) error
}
