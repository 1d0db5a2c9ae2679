package performance

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/performance"
)

// RecordMetricRequest represents an ingested request measurement
type RecordMetricRequest struct {
	Service        string     `json:"service" binding:"required,max=64"`
	Endpoint       string     `json:"endpoint" binding:"required,max=255"`
	Method         string     `json:"method" binding:"required,max=10"`
	StatusCode     int        `json:"statusCode" binding:"required,min=100,max=599"`
	ResponseTimeMs float64    `json:"responseTimeMs" binding:"min=0"`
	RecordedAt     *time.Time `json:"recordedAt"`
}

// MetricResponse represents a stored metric
type MetricResponse struct {
	ID             uuid.UUID `json:"id"`
	Service        string    `json:"service"`
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	StatusCode     int       `json:"statusCode"`
	ResponseTimeMs float64   `json:"responseTimeMs"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// MetricQuery is the query string of the list and summary endpoints
type MetricQuery struct {
	Service  string     `form:"service"`
	Endpoint string     `form:"endpoint"`
	Since    *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit    int        `form:"limit" binding:"omitempty,min=1,max=10000"`
}

func (q MetricQuery) filter() performance.Filter {
	return performance.Filter{
		Service:  q.Service,
		Endpoint: q.Endpoint,
		Since:    q.Since,
		Limit:    q.Limit,
	}
}

// ToMetricResponse converts a domain metric to a response
func ToMetricResponse(m *performance.Metric) MetricResponse {
	return MetricResponse{
		ID:             m.ID,
		Service:        m.Service,
		Endpoint:       m.Endpoint,
		Method:         m.Method,
		StatusCode:     m.StatusCode,
		ResponseTimeMs: m.ResponseTimeMs,
		RecordedAt:     m.RecordedAt,
	}
}
