package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shipping"
	"gorm.io/gorm"
)

// GormShipmentRepository implements shipping.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

func preloadEvents(db *gorm.DB) *gorm.DB {
	return db.Order("occurred_at ASC")
}

// FindByID finds a shipment with its tracking history
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	var s shipping.Shipment
	if err := r.db.WithContext(ctx).Preload("Events", preloadEvents).First(&s, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Shipment")
	}
	return &s, nil
}

// FindByTrackingNumber finds a shipment with its tracking history
func (r *GormShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipment, error) {
	var s shipping.Shipment
	if err := r.db.WithContext(ctx).Preload("Events", preloadEvents).
		Where("tracking_number = ?", trackingNumber).
		First(&s).Error; err != nil {
		return nil, classify(err, "Shipment")
	}
	return &s, nil
}

// FindByOrder lists shipments of an order
func (r *GormShipmentRepository) FindByOrder(ctx context.Context, orderID string) ([]shipping.Shipment, error) {
	var shipments []shipping.Shipment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&shipments).Error; err != nil {
		return nil, classify(err, "Shipment")
	}
	return shipments, nil
}

// FindAll lists shipments newest first
func (r *GormShipmentRepository) FindAll(ctx context.Context, f shipping.Filter) ([]shipping.Shipment, error) {
	q := r.db.WithContext(ctx).Model(&shipping.Shipment{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Carrier != "" {
		q = q.Where("carrier = ?", f.Carrier)
	}
	var shipments []shipping.Shipment
	if err := q.Order("created_at DESC").Find(&shipments).Error; err != nil {
		return nil, classify(err, "Shipment")
	}
	return shipments, nil
}

// Save creates or updates the shipment row. Tracking events are written
// through the event repository only.
func (r *GormShipmentRepository) Save(ctx context.Context, s *shipping.Shipment) error {
	return saveVersioned(ctx, r.db, s, "Shipment", "Events")
}

// CountByStatus counts shipments per status
func (r *GormShipmentRepository) CountByStatus(ctx context.Context) ([]shipping.CountByKey, error) {
	return r.countBy(ctx, "status")
}

// CountByCarrier counts shipments per carrier
func (r *GormShipmentRepository) CountByCarrier(ctx context.Context) ([]shipping.CountByKey, error) {
	return r.countBy(ctx, "carrier")
}

func (r *GormShipmentRepository) countBy(ctx context.Context, column string) ([]shipping.CountByKey, error) {
	var rows []shipping.CountByKey
	if err := r.db.WithContext(ctx).Model(&shipping.Shipment{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order(column).
		Scan(&rows).Error; err != nil {
		return nil, classify(err, "Shipment")
	}
	return rows, nil
}

// GormTrackingEventRepository implements shipping.TrackingEventRepository using GORM
type GormTrackingEventRepository struct {
	db *gorm.DB
}

// NewGormTrackingEventRepository creates a new GormTrackingEventRepository
func NewGormTrackingEventRepository(db *gorm.DB) *GormTrackingEventRepository {
	return &GormTrackingEventRepository{db: db}
}

// Append inserts a tracking event
func (r *GormTrackingEventRepository) Append(ctx context.Context, e *shipping.TrackingEvent) error {
	return classify(r.db.WithContext(ctx).Create(e).Error, "Tracking event")
}

// FindByShipment returns the history oldest first
func (r *GormTrackingEventRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]shipping.TrackingEvent, error) {
	var events []shipping.TrackingEvent
	if err := r.db.WithContext(ctx).Where("shipment_id = ?", shipmentID).Order("occurred_at ASC").Find(&events).Error; err != nil {
		return nil, classify(err, "Tracking event")
	}
	return events, nil
}
