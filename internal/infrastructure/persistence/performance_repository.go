package persistence

import (
	"context"
	"time"

	"github.com/storefront/platform/internal/domain/performance"
	"gorm.io/gorm"
)

const defaultMetricLimit = 1000

// GormMetricRepository implements performance.Repository using GORM
type GormMetricRepository struct {
	db *gorm.DB
}

// NewGormMetricRepository creates a new GormMetricRepository
func NewGormMetricRepository(db *gorm.DB) *GormMetricRepository {
	return &GormMetricRepository{db: db}
}

// Save inserts a metric
func (r *GormMetricRepository) Save(ctx context.Context, m *performance.Metric) error {
	return classify(r.db.WithContext(ctx).Create(m).Error, "Metric")
}

// FindAll returns the most recent metrics matching the filter
func (r *GormMetricRepository) FindAll(ctx context.Context, f performance.Filter) ([]performance.Metric, error) {
	q := r.db.WithContext(ctx).Model(&performance.Metric{})
	if f.Service != "" {
		q = q.Where("service = ?", f.Service)
	}
	if f.Endpoint != "" {
		q = q.Where("endpoint = ?", f.Endpoint)
	}
	if f.Since != nil {
		q = q.Where("recorded_at >= ?", *f.Since)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultMetricLimit
	}
	var metrics []performance.Metric
	if err := q.Order("recorded_at DESC").Limit(limit).Find(&metrics).Error; err != nil {
		return nil, classify(err, "Metric")
	}
	return metrics, nil
}

// DeleteBefore removes metrics recorded before cutoff
func (r *GormMetricRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("recorded_at < ?", cutoff).Delete(&performance.Metric{})
	if res.Error != nil {
		return 0, classify(res.Error, "Metric")
	}
	return res.RowsAffected, nil
}
