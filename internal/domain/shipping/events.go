package shipping

import "github.com/storefront/platform/internal/domain/shared"

// AggregateTypeShipment is the aggregate type for shipment events
const AggregateTypeShipment = "Shipment"

// Event type constants
const (
	EventTypeShipmentCreated       = "ShipmentCreated"
	EventTypeShipmentStatusChanged = "ShipmentStatusChanged"
)

// ShipmentCreatedEvent is published when a shipment is booked
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        string `json:"order_id"`
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(s *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCreated, AggregateTypeShipment, s.ID),
		OrderID:         s.OrderID,
		TrackingNumber:  s.TrackingNumber,
		Carrier:         s.Carrier,
	}
}

// ShipmentStatusChangedEvent is published on every status move
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	TrackingNumber string `json:"tracking_number"`
	From           Status `json:"from"`
	To             Status `json:"to"`
}

// NewShipmentStatusChangedEvent creates a new ShipmentStatusChangedEvent
func NewShipmentStatusChangedEvent(s *Shipment, from Status) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentStatusChanged, AggregateTypeShipment, s.ID),
		TrackingNumber:  s.TrackingNumber,
		From:            from,
		To:              s.Status,
	}
}
