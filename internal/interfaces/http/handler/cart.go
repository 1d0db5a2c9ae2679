package handler

import (
	"github.com/gin-gonic/gin"
	appcart "github.com/storefront/platform/internal/application/cart"
)

// CartHandler serves server-side shopping carts
type CartHandler struct {
	BaseHandler
	carts *appcart.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *appcart.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get godoc
// @Summary      Get a customer's cart
// @Description  Totals are computed from the items on every read
// @Tags         carts
// @Produce      json
// @Param        customerId path string true "Customer ID"
// @Success      200 {object} dto.Response{data=appcart.CartResponse}
// @Security     BearerAuth
// @Router       /carts/{customerId} [get]
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Adding a product already in the cart increases its quantity
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        customerId path string                 true "Customer ID"
// @Param        request    body appcart.AddItemRequest true "Item"
// @Success      200 {object} dto.Response{data=appcart.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /carts/{customerId}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req appcart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	cart, err := h.carts.AddItem(c.Request.Context(), c.Param("customerId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem godoc
// @Summary      Set an item's quantity
// @Description  A quantity of zero or less removes the item
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        customerId path string                    true "Customer ID"
// @Param        productId  path string                    true "Product ID"
// @Param        request    body appcart.UpdateItemRequest true "Quantity"
// @Success      200 {object} dto.Response{data=appcart.CartResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /carts/{customerId}/items/{productId} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req appcart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	cart, err := h.carts.UpdateItem(c.Request.Context(), c.Param("customerId"), c.Param("productId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem godoc
// @Summary      Remove an item
// @Tags         carts
// @Produce      json
// @Param        customerId path string true "Customer ID"
// @Param        productId  path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcart.CartResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /carts/{customerId}/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.carts.RemoveItem(c.Request.Context(), c.Param("customerId"), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear godoc
// @Summary      Empty a cart
// @Tags         carts
// @Produce      json
// @Param        customerId path string true "Customer ID"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /carts/{customerId} [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), c.Param("customerId")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Cart cleared")
}
