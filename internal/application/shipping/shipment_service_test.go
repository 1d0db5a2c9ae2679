package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/domain/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newShipmentFixture() (*ShipmentService, *MockShipmentRepository, *MockTrackingEventRepository, *recordingPublisher) {
	shipments := new(MockShipmentRepository)
	events := new(MockTrackingEventRepository)
	pub := &recordingPublisher{}
	svc := NewShipmentService(shipments, events, &stubScope{shipments: shipments, events: events}, pub, nil)
	return svc, shipments, events, pub
}

func newTestShipment(t *testing.T) *shipping.Shipment {
	t.Helper()
	s, _, err := shipping.NewShipment("ORD-9", "BlueDart", "12 MG Road, Pune", decimal.NewFromFloat(1.5), decimal.NewFromInt(80), nil)
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func TestShipmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists shipment and first event", func(t *testing.T) {
		svc, shipments, events, pub := newShipmentFixture()
		shipments.On("Save", ctx, mock.AnythingOfType("*shipping.Shipment")).Return(nil)
		events.On("Append", ctx, mock.MatchedBy(func(e *shipping.TrackingEvent) bool {
			return e.Status == shipping.StatusPending && e.Description == "Shipment created"
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateShipmentRequest{
			OrderID: "ORD-9", Carrier: "BlueDart", ShippingAddress: "12 MG Road, Pune",
			Weight: decimal.NewFromFloat(1.5), Cost: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Regexp(t, `^TRK[0-9A-Z]{26}$`, resp.TrackingNumber)
		require.Len(t, resp.Events, 1)
		require.Len(t, pub.events, 1)
		assert.Equal(t, shipping.EventTypeShipmentCreated, pub.events[0].EventType())
	})

	t.Run("event failure aborts", func(t *testing.T) {
		svc, shipments, events, pub := newShipmentFixture()
		shipments.On("Save", ctx, mock.Anything).Return(nil)
		events.On("Append", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := svc.Create(ctx, CreateShipmentRequest{OrderID: "ORD-9", Carrier: "DHL", ShippingAddress: "x"})
		require.Error(t, err)
		assert.Empty(t, pub.events)
	})

	t.Run("missing carrier", func(t *testing.T) {
		svc, shipments, _, _ := newShipmentFixture()
		_, err := svc.Create(ctx, CreateShipmentRequest{OrderID: "ORD-9", ShippingAddress: "x"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
		shipments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestShipmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("forward move appends event", func(t *testing.T) {
		svc, shipments, events, pub := newShipmentFixture()
		s := newTestShipment(t)
		shipments.On("FindByID", ctx, s.ID).Return(s, nil)
		shipments.On("Save", ctx, s).Return(nil)
		events.On("Append", ctx, mock.AnythingOfType("*shipping.TrackingEvent")).Return(nil)

		resp, err := svc.UpdateStatus(ctx, s.ID, UpdateStatusRequest{Status: "delivered", Location: "Pune"})
		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
		assert.NotNil(t, resp.DeliveredAt)
		require.Len(t, pub.events, 1)
		assert.Equal(t, shipping.EventTypeShipmentStatusChanged, pub.events[0].EventType())
	})

	t.Run("backward move is refused", func(t *testing.T) {
		svc, shipments, events, _ := newShipmentFixture()
		s := newTestShipment(t)
		s.Status = shipping.StatusTransit
		shipments.On("FindByID", ctx, s.ID).Return(s, nil)

		_, err := svc.UpdateStatus(ctx, s.ID, UpdateStatusRequest{Status: "picked"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindInvalidState))
		assert.Equal(t, shipping.StatusTransit, s.Status)
		events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestShipmentService_AddEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("terminal shipment refuses events", func(t *testing.T) {
		svc, shipments, events, _ := newShipmentFixture()
		s := newTestShipment(t)
		s.Status = shipping.StatusFailed
		shipments.On("FindByID", ctx, s.ID).Return(s, nil)

		_, err := svc.AddEvent(ctx, s.ID, AddEventRequest{Location: "Hub"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindInvalidState))
		events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("keeps current status", func(t *testing.T) {
		svc, shipments, events, _ := newShipmentFixture()
		s := newTestShipment(t)
		s.Status = shipping.StatusTransit
		shipments.On("FindByID", ctx, s.ID).Return(s, nil)
		events.On("Append", ctx, mock.Anything).Return(nil)

		resp, err := svc.AddEvent(ctx, s.ID, AddEventRequest{Location: "Mumbai hub"})
		require.NoError(t, err)
		assert.Equal(t, "transit", resp.Status)
		assert.Equal(t, "Mumbai hub", resp.Location)
	})
}

func TestShipmentService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, shipments, _, _ := newShipmentFixture()
	shipments.On("CountByStatus", ctx).Return([]shipping.CountByKey{{Key: "pending", Count: 2}, {Key: "delivered", Count: 5}}, nil)
	shipments.On("CountByCarrier", ctx).Return([]shipping.CountByKey{{Key: "DHL", Count: 7}}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(5), stats.ByStatus["delivered"])
	assert.Equal(t, int64(7), stats.ByCarrier["DHL"])
}
