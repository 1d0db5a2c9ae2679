package cart

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// Item is one product line in a cart
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// Subtotal is price times quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds a customer's items. Totals are computed from Items and never stored.
type Cart struct {
	CustomerID string    `json:"customerId"`
	Items      []Item    `json:"items"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// New returns an empty cart
func New(customerID string) *Cart {
	return &Cart{CustomerID: customerID, Items: []Item{}, UpdatedAt: time.Now()}
}

// TotalItems sums item quantities
func (c *Cart) TotalItems() int {
	n := 0
	for _, i := range c.Items {
		n += i.Quantity
	}
	return n
}

// TotalPrice sums item subtotals
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, i := range c.Items {
		total = total.Add(i.Subtotal())
	}
	return total
}

// Add puts an item in the cart. An existing product has its quantity increased.
func (c *Cart) Add(item Item) error {
	item.ProductID = strings.TrimSpace(item.ProductID)
	if item.ProductID == "" {
		return shared.NewValidationError("INVALID_PRODUCT", "Product id is required")
	}
	if item.Quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if item.Price.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Price cannot be negative")
	}
	for idx := range c.Items {
		if c.Items[idx].ProductID == item.ProductID {
			c.Items[idx].Quantity += item.Quantity
			c.touch()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.touch()
	return nil
}

// SetQuantity changes an item's quantity. A quantity of zero or less removes the item.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		} else {
			c.Items[idx].Quantity = quantity
		}
		c.touch()
		return nil
	}
	return shared.NewNotFoundError("Cart item")
}

// Remove drops an item
func (c *Cart) Remove(productID string) error {
	return c.SetQuantity(productID, 0)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.touch()
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}

// Store keeps carts by customer id
type Store interface {
	// Get returns the customer's cart, or an empty one when none exists
	Get(ctx context.Context, customerID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, customerID string) error
}
