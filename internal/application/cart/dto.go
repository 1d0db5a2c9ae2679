package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/cart"
)

// AddItemRequest adds a product to a cart
type AddItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Name      string          `json:"name" binding:"required,max=200"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	ImageURL  string          `json:"imageUrl" binding:"omitempty,url"`
}

// UpdateItemRequest sets an item's quantity. Zero or less removes the item.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is a cart with its derived totals
type CartResponse struct {
	CustomerID string          `json:"customerId"`
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ToCartResponse computes totals from the item list
func ToCartResponse(c *cart.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponse{
		CustomerID: c.CustomerID,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		UpdatedAt:  c.UpdatedAt,
	}
}
