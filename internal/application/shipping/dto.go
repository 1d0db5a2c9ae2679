package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shipping"
)

// CreateShipmentRequest books a shipment for an order
type CreateShipmentRequest struct {
	OrderID           string          `json:"orderId" binding:"required,max=64"`
	Carrier           string          `json:"carrier" binding:"required,max=64"`
	ShippingAddress   string          `json:"shippingAddress" binding:"required"`
	Weight            decimal.Decimal `json:"weight"`
	Cost              decimal.Decimal `json:"cost"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery"`
}

// UpdateShipmentRequest changes the logistics fields of an open shipment
type UpdateShipmentRequest struct {
	Carrier           string           `json:"carrier" binding:"max=64"`
	ShippingAddress   string           `json:"shippingAddress"`
	Weight            *decimal.Decimal `json:"weight"`
	Cost              *decimal.Decimal `json:"cost"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery"`
}

// UpdateStatusRequest moves a shipment along its lifecycle
type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required,oneof=pending picked transit delivered failed"`
	Location    string `json:"location" binding:"max=200"`
	Description string `json:"description"`
}

// AddEventRequest records a location update
type AddEventRequest struct {
	Location    string `json:"location" binding:"max=200"`
	Description string `json:"description"`
}

// TrackingEventResponse represents a tracking event in API responses
type TrackingEventResponse struct {
	ID          uuid.UUID `json:"id"`
	ShipmentID  uuid.UUID `json:"shipmentId"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ToTrackingEventResponse converts a domain tracking event
func ToTrackingEventResponse(e *shipping.TrackingEvent) TrackingEventResponse {
	return TrackingEventResponse{
		ID:          e.ID,
		ShipmentID:  e.ShipmentID,
		Status:      string(e.Status),
		Location:    e.Location,
		Description: e.Description,
		OccurredAt:  e.OccurredAt,
	}
}

func toTrackingEventResponses(events []shipping.TrackingEvent) []TrackingEventResponse {
	out := make([]TrackingEventResponse, 0, len(events))
	for i := range events {
		out = append(out, ToTrackingEventResponse(&events[i]))
	}
	return out
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                uuid.UUID               `json:"id"`
	OrderID           string                  `json:"orderId"`
	TrackingNumber    string                  `json:"trackingNumber"`
	Carrier           string                  `json:"carrier"`
	Status            string                  `json:"status"`
	ShippingAddress   string                  `json:"shippingAddress"`
	Weight            decimal.Decimal         `json:"weight"`
	Cost              decimal.Decimal         `json:"cost"`
	EstimatedDelivery *time.Time              `json:"estimatedDelivery"`
	DeliveredAt       *time.Time              `json:"deliveredAt"`
	Events            []TrackingEventResponse `json:"events,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// ToShipmentResponse converts a domain shipment
func ToShipmentResponse(s *shipping.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:                s.ID,
		OrderID:           s.OrderID,
		TrackingNumber:    s.TrackingNumber,
		Carrier:           s.Carrier,
		Status:            string(s.Status),
		ShippingAddress:   s.ShippingAddress,
		Weight:            s.Weight,
		Cost:              s.Cost,
		EstimatedDelivery: s.EstimatedDelivery,
		DeliveredAt:       s.DeliveredAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if len(s.Events) > 0 {
		resp.Events = toTrackingEventResponses(s.Events)
	}
	return resp
}

func toShipmentResponses(shipments []shipping.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		out = append(out, ToShipmentResponse(&shipments[i]))
	}
	return out
}

// StatsResponse counts shipments per status and per carrier
type StatsResponse struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"byStatus"`
	ByCarrier map[string]int64 `json:"byCarrier"`
}
