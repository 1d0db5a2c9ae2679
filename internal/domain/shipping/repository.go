package shipping

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows shipment listings
type Filter struct {
	Status  *Status
	Carrier string
}

// CountByKey is a grouped count
type CountByKey struct {
	Key   string
	Count int64
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	FindByOrder(ctx context.Context, orderID string) ([]Shipment, error)
	FindAll(ctx context.Context, filter Filter) ([]Shipment, error)
	Save(ctx context.Context, s *Shipment) error
	CountByStatus(ctx context.Context) ([]CountByKey, error)
	CountByCarrier(ctx context.Context) ([]CountByKey, error)
}

// TrackingEventRepository is append-only: there is no update or delete
type TrackingEventRepository interface {
	Append(ctx context.Context, event *TrackingEvent) error
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]TrackingEvent, error)
}
