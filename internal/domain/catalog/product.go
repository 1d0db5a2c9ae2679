package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// Product represents a sellable item in the catalog.
// Products are never physically removed: Remove flips IsActive.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	SKU           string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	Barcode       *string         `gorm:"type:varchar(64);uniqueIndex"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	Unit          string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(sku, name string, price decimal.Decimal) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice("price", price); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Price:             price,
		CostPrice:         decimal.Zero,
		Unit:              "pcs",
		IsActive:          true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update overwrites the descriptive fields
func (p *Product) Update(name, description, unit string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	if unit != "" {
		p.Unit = unit
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetSKU changes the stock keeping unit
func (p *Product) SetSKU(sku string) error {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if err := validateSKU(sku); err != nil {
		return err
	}
	p.SKU = sku
	p.UpdatedAt = time.Now()
	return nil
}

// SetBarcode sets or clears the barcode. Empty means none.
func (p *Product) SetBarcode(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if len(barcode) > 64 {
		return shared.NewValidationError("INVALID_BARCODE", "Barcode cannot exceed 64 characters")
	}
	if barcode == "" {
		p.Barcode = nil
	} else {
		p.Barcode = &barcode
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetPrices sets the selling and cost price
func (p *Product) SetPrices(price, cost decimal.Decimal) error {
	if err := validatePrice("price", price); err != nil {
		return err
	}
	if err := validatePrice("cost price", cost); err != nil {
		return err
	}
	p.Price = price
	p.CostPrice = cost
	p.UpdatedAt = time.Now()
	return nil
}

// AdjustStock applies a signed delta. Stock never drops below zero and
// never exceeds what the stock column can hold.
func (p *Product) AdjustStock(delta int) error {
	if delta > math.MaxInt32 || delta < -math.MaxInt32 {
		return shared.NewValidationError("INVALID_QUANTITY", "Stock adjustment is out of range")
	}
	next := p.StockQuantity + delta
	if next < 0 {
		return shared.NewValidationError("INSUFFICIENT_STOCK", "Stock cannot go below zero")
	}
	if next > math.MaxInt32 {
		return shared.NewValidationError("INVALID_QUANTITY", "Stock cannot exceed 2147483647")
	}
	p.StockQuantity += delta
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewStockAdjustedEvent(p, delta))
	return nil
}

// Remove soft deletes the product
func (p *Product) Remove() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewProductDeactivatedEvent(p))
}

// Restore re-activates a soft deleted product
func (p *Product) Restore() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// IsLowStock reports whether stock is at or below threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.StockQuantity <= threshold
}

// ProfitMargin returns the margin over cost as a percentage
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(p.CostPrice).Div(p.CostPrice).Mul(decimal.NewFromInt(100)).Round(2)
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewValidationError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewValidationError("INVALID_SKU", "SKU cannot exceed 64 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewValidationError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", strings.ToUpper(field[:1])+field[1:]+" cannot be negative")
	}
	return nil
}
