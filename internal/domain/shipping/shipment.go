package shipping

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// Status is the delivery progress of a shipment
type Status string

const (
	StatusPending   Status = "pending"
	StatusPicked    Status = "picked"
	StatusTransit   Status = "transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// progression is the forward order of non-failure states
var progression = map[Status]int{
	StatusPending:   0,
	StatusPicked:    1,
	StatusTransit:   2,
	StatusDelivered: 3,
}

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	_, ok := progression[s]
	return ok || s == StatusFailed
}

// IsTerminal returns true for delivered and failed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// CanTransitionTo allows forward moves along the progression and a move to
// failed from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == StatusFailed {
		return true
	}
	return progression[next] > progression[s]
}

// Shipment is the physical delivery of an order
type Shipment struct {
	shared.BaseAggregateRoot
	OrderID           string          `gorm:"type:varchar(64);not null;index"`
	TrackingNumber    string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	Carrier           string          `gorm:"type:varchar(64);not null;index"`
	Status            Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippingAddress   string          `gorm:"type:text;not null"`
	Weight            decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Cost              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	Events            []TrackingEvent `gorm:"foreignKey:ShipmentID"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// TrackingEvent is an append-only log record for a shipment
type TrackingEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      Status    `gorm:"type:varchar(20);not null"`
	Location    string    `gorm:"type:varchar(200)"`
	Description string    `gorm:"type:text"`
	OccurredAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TrackingEvent) TableName() string {
	return "tracking_events"
}

// NewShipment creates a pending shipment and its first tracking event.
// The returned event must be persisted with the shipment.
func NewShipment(orderID, carrier, address string, weight, cost decimal.Decimal, eta *time.Time) (*Shipment, *TrackingEvent, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, nil, shared.NewValidationError("INVALID_ORDER", "Order id is required")
	}
	if strings.TrimSpace(carrier) == "" {
		return nil, nil, shared.NewValidationError("INVALID_CARRIER", "Carrier is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, nil, shared.NewValidationError("INVALID_ADDRESS", "Shipping address is required")
	}
	if weight.IsNegative() || cost.IsNegative() {
		return nil, nil, shared.NewValidationError("INVALID_AMOUNT", "Weight and cost cannot be negative")
	}

	s := &Shipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		TrackingNumber:    NewTrackingNumber(time.Now()),
		Carrier:           strings.TrimSpace(carrier),
		Status:            StatusPending,
		ShippingAddress:   address,
		Weight:            weight,
		Cost:              cost,
		EstimatedDelivery: eta,
	}
	event := s.newEvent(StatusPending, "", "Shipment created")
	s.AddDomainEvent(NewShipmentCreatedEvent(s))
	return s, event, nil
}

// UpdateDetails overwrites the logistics fields that may change in flight
func (s *Shipment) UpdateDetails(carrier, address string, weight, cost decimal.Decimal, eta *time.Time) error {
	if s.Status.IsTerminal() {
		return shared.NewInvalidStateError("Shipment is " + string(s.Status) + " and can no longer be edited")
	}
	if carrier != "" {
		s.Carrier = carrier
	}
	if address != "" {
		s.ShippingAddress = address
	}
	if weight.IsNegative() || cost.IsNegative() {
		return shared.NewValidationError("INVALID_AMOUNT", "Weight and cost cannot be negative")
	}
	s.Weight = weight
	s.Cost = cost
	s.EstimatedDelivery = eta
	s.UpdatedAt = time.Now()
	return nil
}

// ChangeStatus moves the shipment and returns the tracking event to append
func (s *Shipment) ChangeStatus(next Status, location, description string) (*TrackingEvent, error) {
	if !next.IsValid() {
		return nil, shared.NewValidationError("INVALID_STATUS", fmt.Sprintf("Unknown shipment status %q", next))
	}
	if !s.Status.CanTransitionTo(next) {
		return nil, shared.NewInvalidStateError(fmt.Sprintf("Shipment cannot move from %s to %s", s.Status, next))
	}
	from := s.Status
	s.Status = next
	now := time.Now()
	s.UpdatedAt = now
	if next == StatusDelivered {
		s.DeliveredAt = &now
	}
	if description == "" {
		description = "Status changed to " + string(next)
	}
	s.AddDomainEvent(NewShipmentStatusChangedEvent(s, from))
	return s.newEvent(next, location, description), nil
}

// RecordLocation appends a progress note without changing status
func (s *Shipment) RecordLocation(location, description string) (*TrackingEvent, error) {
	if s.Status.IsTerminal() {
		return nil, shared.NewInvalidStateError("Shipment is " + string(s.Status) + ", no further events can be recorded")
	}
	if strings.TrimSpace(location) == "" && strings.TrimSpace(description) == "" {
		return nil, shared.NewValidationError("INVALID_EVENT", "Location or description is required")
	}
	return s.newEvent(s.Status, location, description), nil
}

func (s *Shipment) newEvent(status Status, location, description string) *TrackingEvent {
	return &TrackingEvent{
		ID:          uuid.New(),
		ShipmentID:  s.ID,
		Status:      status,
		Location:    location,
		Description: description,
		OccurredAt:  time.Now(),
	}
}

// NewTrackingNumber returns a sortable unique tracking number
func NewTrackingNumber(now time.Time) string {
	return "TRK" + ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}
