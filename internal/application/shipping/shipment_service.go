package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/domain/shipping"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ShipmentService books shipments and appends to their tracking log
type ShipmentService struct {
	shipmentRepo shipping.ShipmentRepository
	eventRepo    shipping.TrackingEventRepository
	txScope      TransactionScope
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo shipping.ShipmentRepository,
	eventRepo shipping.TrackingEventRepository,
	txScope TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ShipmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		eventRepo:    eventRepo,
		txScope:      txScope,
		events:       events,
		logger:       logger,
	}
}

// Create inserts the shipment and its first tracking event together
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	shipment, first, err := shipping.NewShipment(req.OrderID, req.Carrier, req.ShippingAddress, req.Weight, req.Cost, req.EstimatedDelivery)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Shipments().Save(ctx, shipment); err != nil {
			return err
		}
		return repos.TrackingEvents().Append(ctx, first)
	})
	if err != nil {
		logger.With(ctx, s.logger).Error("Failed to create shipment",
			zap.String("order_id", req.OrderID),
			zap.String("kind", string(shared.KindOf(err))),
			zap.Error(err))
		return nil, err
	}

	shipment.Events = []shipping.TrackingEvent{*first}
	s.publish(ctx, shipment)
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// GetByID returns a shipment with its tracking events
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// Track looks a shipment up by tracking number
func (s *ShipmentService) Track(ctx context.Context, trackingNumber string) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// List returns shipments matching the filter
func (s *ShipmentService) List(ctx context.Context, filter shipping.Filter) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toShipmentResponses(shipments), nil
}

// ListByOrder returns every shipment of an order
func (s *ShipmentService) ListByOrder(ctx context.Context, orderID string) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toShipmentResponses(shipments), nil
}

// Update overwrites logistics fields. Status is only changed through UpdateStatus.
func (s *ShipmentService) Update(ctx context.Context, id uuid.UUID, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	weight, cost, eta := shipment.Weight, shipment.Cost, shipment.EstimatedDelivery
	if req.Weight != nil {
		weight = *req.Weight
	}
	if req.Cost != nil {
		cost = *req.Cost
	}
	if req.EstimatedDelivery != nil {
		eta = req.EstimatedDelivery
	}
	if err := shipment.UpdateDetails(req.Carrier, req.ShippingAddress, weight, cost, eta); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// UpdateStatus moves the shipment and appends the matching tracking event
// in one transaction.
func (s *ShipmentService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*ShipmentResponse, error) {
	var shipment *shipping.Shipment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		shipment, err = repos.Shipments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		event, err := shipment.ChangeStatus(shipping.Status(req.Status), req.Location, req.Description)
		if err != nil {
			return err
		}
		if err := repos.Shipments().Save(ctx, shipment); err != nil {
			return err
		}
		if err := repos.TrackingEvents().Append(ctx, event); err != nil {
			return err
		}
		shipment.Events = append(shipment.Events, *event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.With(ctx, s.logger).Info("Shipment status changed",
		zap.String("tracking_number", shipment.TrackingNumber),
		zap.String("status", string(shipment.Status)))
	s.publish(ctx, shipment)
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// AddEvent appends a location update without changing status
func (s *ShipmentService) AddEvent(ctx context.Context, id uuid.UUID, req AddEventRequest) (*TrackingEventResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := shipment.RecordLocation(req.Location, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		return nil, err
	}
	resp := ToTrackingEventResponse(event)
	return &resp, nil
}

// Events lists a shipment's tracking events, oldest first
func (s *ShipmentService) Events(ctx context.Context, id uuid.UUID) ([]TrackingEventResponse, error) {
	if _, err := s.shipmentRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTrackingEventResponses(events), nil
}

// Stats counts shipments per status and per carrier
func (s *ShipmentService) Stats(ctx context.Context) (*StatsResponse, error) {
	byStatus, err := s.shipmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCarrier, err := s.shipmentRepo.CountByCarrier(ctx)
	if err != nil {
		return nil, err
	}
	stats := &StatsResponse{
		ByStatus:  make(map[string]int64, len(byStatus)),
		ByCarrier: make(map[string]int64, len(byCarrier)),
	}
	for _, c := range byStatus {
		stats.ByStatus[c.Key] = c.Count
		stats.Total += c.Count
	}
	for _, c := range byCarrier {
		stats.ByCarrier[c.Key] = c.Count
	}
	return stats, nil
}

func (s *ShipmentService) publish(ctx context.Context, shipment *shipping.Shipment) {
	pending := shipment.GetDomainEvents()
	shipment.ClearDomainEvents()
	if s.events == nil || len(pending) == 0 {
		return
	}
	if err := s.events.Publish(ctx, pending...); err != nil {
		logger.With(ctx, s.logger).Warn("Failed to publish shipment events", zap.Error(err))
	}
}
