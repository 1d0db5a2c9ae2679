package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/domain/shipping"
	"github.com/stretchr/testify/mock"
)

// MockShipmentRepository is a mock implementation of ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByOrder(ctx context.Context, orderID string) ([]shipping.Shipment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shipping.Filter) ([]shipping.Shipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, s *shipping.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) CountByStatus(ctx context.Context) ([]shipping.CountByKey, error) {
	args := m.Called(ctx)
	return args.Get(0).([]shipping.CountByKey), args.Error(1)
}

func (m *MockShipmentRepository) CountByCarrier(ctx context.Context) ([]shipping.CountByKey, error) {
	args := m.Called(ctx)
	return args.Get(0).([]shipping.CountByKey), args.Error(1)
}

// MockTrackingEventRepository is a mock implementation of TrackingEventRepository
type MockTrackingEventRepository struct {
	mock.Mock
}

func (m *MockTrackingEventRepository) Append(ctx context.Context, event *shipping.TrackingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockTrackingEventRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]shipping.TrackingEvent, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).([]shipping.TrackingEvent), args.Error(1)
}

// stubScope runs the unit of work directly against the mocks
type stubScope struct {
	shipments *MockShipmentRepository
	events    *MockTrackingEventRepository
}

func (s *stubScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *stubScope) Shipments() shipping.ShipmentRepository { return s.shipments }
func (s *stubScope) TrackingEvents() shipping.TrackingEventRepository { return s.events }

// recordingPublisher captures published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
