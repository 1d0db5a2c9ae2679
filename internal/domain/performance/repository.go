package performance

import (
	"context"
	"time"
)

// Filter narrows metric queries
type Filter struct {
	Service  string
	Endpoint string
	Since    *time.Time
	Limit    int
}

// Repository defines the interface for metric persistence
type Repository interface {
	Save(ctx context.Context, m *Metric) error
	FindAll(ctx context.Context, filter Filter) ([]Metric, error)
	// DeleteBefore removes metrics older than cutoff and returns the number removed
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
