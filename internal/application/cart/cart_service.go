package cart

import (
	"context"
	"strings"

	"github.com/storefront/platform/internal/domain/cart"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CartService manages server-side carts
type CartService struct {
	store  cart.Store
	logger *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{store: store, logger: logger}
}

// Get returns the customer's cart. A customer without one gets an empty cart.
func (s *CartService) Get(ctx context.Context, customerID string) (*CartResponse, error) {
	c, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// AddItem adds a product or increases its quantity
func (s *CartService) AddItem(ctx context.Context, customerID string, req AddItemRequest) (*CartResponse, error) {
	return s.mutate(ctx, customerID, func(c *cart.Cart) error {
		return c.Add(cart.Item{
			ProductID: req.ProductID,
			Name:      req.Name,
			Price:     req.Price,
			Quantity:  req.Quantity,
			ImageURL:  req.ImageURL,
		})
	})
}

// UpdateItem sets a product's quantity
func (s *CartService) UpdateItem(ctx context.Context, customerID, productID string, req UpdateItemRequest) (*CartResponse, error) {
	return s.mutate(ctx, customerID, func(c *cart.Cart) error {
		return c.SetQuantity(productID, req.Quantity)
	})
}

// RemoveItem drops a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, customerID, productID string) (*CartResponse, error) {
	return s.mutate(ctx, customerID, func(c *cart.Cart) error {
		return c.Remove(productID)
	})
}

// Clear deletes the customer's cart
func (s *CartService) Clear(ctx context.Context, customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return shared.NewValidationError("INVALID_CUSTOMER", "Customer id is required")
	}
	if err := s.store.Delete(ctx, customerID); err != nil {
		return shared.NewUpstreamError("Failed to clear cart", err)
	}
	return nil
}

func (s *CartService) mutate(ctx context.Context, customerID string, fn func(c *cart.Cart) error) (*CartResponse, error) {
	c, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		logger.With(ctx, s.logger).Error("Failed to save cart", zap.String("customer_id", customerID), zap.Error(err))
		return nil, shared.NewUpstreamError("Failed to save cart", err)
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

func (s *CartService) load(ctx context.Context, customerID string) (*cart.Cart, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer id is required")
	}
	c, err := s.store.Get(ctx, customerID)
	if err != nil {
		return nil, shared.NewUpstreamError("Failed to load cart", err)
	}
	return c, nil
}
