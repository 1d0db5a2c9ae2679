package handler

import (
	"github.com/gin-gonic/gin"
	appship "github.com/storefront/platform/internal/application/shipping"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/domain/shipping"
)

// ShippingHandler handles shipment and tracking endpoints
type ShippingHandler struct {
	BaseHandler
	shipments *appship.ShipmentService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(shipments *appship.ShipmentService) *ShippingHandler {
	return &ShippingHandler{shipments: shipments}
}

// Create godoc
// @Summary      Book a shipment
// @Description  Stores the shipment with its first tracking event
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        request body appship.CreateShipmentRequest true "Shipment"
// @Success      201 {object} dto.Response{data=appship.ShipmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments [post]
func (h *ShippingHandler) Create(c *gin.Context) {
	var req appship.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	shipment, err := h.shipments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// List godoc
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Param        status  query string false "Shipment status"
// @Param        carrier query string false "Carrier"
// @Success      200 {object} dto.Response{data=[]appship.ShipmentResponse}
// @Security     BearerAuth
// @Router       /shipments [get]
func (h *ShippingHandler) List(c *gin.Context) {
	filter := shipping.Filter{Carrier: c.Query("carrier")}
	if raw := c.Query("status"); raw != "" {
		status := shipping.Status(raw)
		if !status.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_STATUS", "Unknown shipment status: "+raw))
			return
		}
		filter.Status = &status
	}
	shipments, err := h.shipments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, shipments, len(shipments))
}

// Get godoc
// @Summary      Get a shipment with its events
// @Tags         shipments
// @Produce      json
// @Param        id path string true "Shipment ID"
// @Success      200 {object} dto.Response{data=appship.ShipmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments/{id} [get]
func (h *ShippingHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	shipment, err := h.shipments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// ListByOrder godoc
// @Summary      Shipments of an order
// @Tags         shipments
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response{data=[]appship.ShipmentResponse}
// @Security     BearerAuth
// @Router       /shipments/order/{orderId} [get]
func (h *ShippingHandler) ListByOrder(c *gin.Context) {
	shipments, err := h.shipments.ListByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, shipments, len(shipments))
}

// Track godoc
// @Summary      Look up a shipment by tracking number
// @Tags         shipments
// @Produce      json
// @Param        trackingNumber path string true "Tracking number"
// @Success      200 {object} dto.Response{data=appship.ShipmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments/track/{trackingNumber} [get]
func (h *ShippingHandler) Track(c *gin.Context) {
	shipment, err := h.shipments.Track(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Update godoc
// @Summary      Change logistics fields
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Shipment ID"
// @Param        request body appship.UpdateShipmentRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=appship.ShipmentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments/{id} [put]
func (h *ShippingHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appship.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	shipment, err := h.shipments.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// UpdateStatus godoc
// @Summary      Move a shipment along its lifecycle
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Shipment ID"
// @Param        request body appship.UpdateStatusRequest true "Status change"
// @Success      200 {object} dto.Response{data=appship.ShipmentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments/{id}/status [patch]
func (h *ShippingHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appship.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	shipment, err := h.shipments.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// AddEvent godoc
// @Summary      Record a location update
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Shipment ID"
// @Param        request body appship.AddEventRequest true "Event"
// @Success      201 {object} dto.Response{data=appship.TrackingEventResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments/{id}/events [post]
func (h *ShippingHandler) AddEvent(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appship.AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	event, err := h.shipments.AddEvent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, event)
}

// Events godoc
// @Summary      Tracking history, oldest first
// @Tags         shipments
// @Produce      json
// @Param        id path string true "Shipment ID"
// @Success      200 {object} dto.Response{data=[]appship.TrackingEventResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shipments/{id}/events [get]
func (h *ShippingHandler) Events(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	events, err := h.shipments.Events(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, events, len(events))
}

// Stats godoc
// @Summary      Shipment counts per status and carrier
// @Tags         shipments
// @Produce      json
// @Success      200 {object} dto.Response{data=appship.StatsResponse}
// @Security     BearerAuth
// @Router       /shipments/stats [get]
func (h *ShippingHandler) Stats(c *gin.Context) {
	stats, err := h.shipments.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
