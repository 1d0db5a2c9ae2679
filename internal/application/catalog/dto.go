package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU           string           `json:"sku" binding:"required,min=1,max=64"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=2000"`
	Barcode       string           `json:"barcode" binding:"max=64"`
	CategoryID    *uuid.UUID       `json:"categoryId"`
	Price         decimal.Decimal  `json:"price"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	StockQuantity int              `json:"stockQuantity" binding:"min=0"`
	Unit          string           `json:"unit" binding:"max=20"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" binding:"omitempty,min=1,max=64"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=64"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"costPrice"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	IsActive    *bool            `json:"isActive"`
}

// AdjustStockRequest applies a signed stock delta
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Barcode       *string         `json:"barcode"`
	CategoryID    *uuid.UUID      `json:"categoryId"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
	StockQuantity int             `json:"stockQuantity"`
	Unit          string          `json:"unit"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		ProfitMargin:  p.ProfitMargin(),
		StockQuantity: p.StockQuantity,
		Unit:          p.Unit,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a product slice
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

// ProductListQuery carries list filters and paging
type ProductListQuery struct {
	CategoryID *uuid.UUID
	Active     *bool
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=1000"`
	ParentID    *uuid.UUID `json:"parentId"`
	SortOrder   int        `json:"sortOrder"`
}

// UpdateCategoryRequest represents a request to update a category.
// ParentID is applied only when MoveParent is true so a root move can be
// told apart from an omitted field.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	SortOrder   *int       `json:"sortOrder"`
	IsActive    *bool      `json:"isActive"`
	ParentID    *uuid.UUID `json:"parentId"`
	MoveParent  bool       `json:"moveParent"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parentId"`
	SortOrder   int        `json:"sortOrder"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CategoryTreeNode is a category with its nested children
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

func toTreeNodes(nodes []*catalog.CategoryNode) []CategoryTreeNode {
	out := make([]CategoryTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, CategoryTreeNode{
			CategoryResponse: ToCategoryResponse(n.Category),
			Children:         toTreeNodes(n.Children),
		})
	}
	return out
}
