package performance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
)

// Metric is one observed request
type Metric struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Service        string    `gorm:"type:varchar(64);not null;index:idx_perf_service_endpoint,priority:1"`
	Endpoint       string    `gorm:"type:varchar(255);not null;index:idx_perf_service_endpoint,priority:2"`
	Method         string    `gorm:"type:varchar(10);not null"`
	StatusCode     int       `gorm:"not null"`
	ResponseTimeMs float64   `gorm:"not null"`
	RecordedAt     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Metric) TableName() string {
	return "performance_metrics"
}

// NewMetric validates and stamps a metric
func NewMetric(service, endpoint, method string, statusCode int, responseTimeMs float64, recordedAt time.Time) (*Metric, error) {
	service = strings.TrimSpace(service)
	endpoint = strings.TrimSpace(endpoint)
	if service == "" || endpoint == "" {
		return nil, shared.NewValidationError("INVALID_METRIC", "Service and endpoint are required")
	}
	if statusCode < 100 || statusCode > 599 {
		return nil, shared.NewValidationError("INVALID_STATUS_CODE", "Status code must be between 100 and 599")
	}
	if responseTimeMs < 0 || math.IsNaN(responseTimeMs) {
		return nil, shared.NewValidationError("INVALID_RESPONSE_TIME", "Response time cannot be negative")
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	return &Metric{
		ID:             uuid.New(),
		Service:        service,
		Endpoint:       endpoint,
		Method:         strings.ToUpper(method),
		StatusCode:     statusCode,
		ResponseTimeMs: responseTimeMs,
		RecordedAt:     recordedAt,
	}, nil
}

// IsError reports a 5xx response
func (m Metric) IsError() bool {
	return m.StatusCode >= 500
}

// EndpointSummary aggregates the metrics of one service endpoint
type EndpointSummary struct {
	Service   string  `json:"service"`
	Endpoint  string  `json:"endpoint"`
	Count     int     `json:"count"`
	AvgMs     float64 `json:"avgMs"`
	P95Ms     float64 `json:"p95Ms"`
	MaxMs     float64 `json:"maxMs"`
	ErrorRate float64 `json:"errorRate"`
}

// Summarize groups metrics by service and endpoint. Output is sorted by service then endpoint.
func Summarize(metrics []Metric) []EndpointSummary {
	type key struct{ service, endpoint string }
	groups := make(map[key][]Metric)
	for _, m := range metrics {
		k := key{m.Service, m.Endpoint}
		groups[k] = append(groups[k], m)
	}

	out := make([]EndpointSummary, 0, len(groups))
	for k, ms := range groups {
		times := make([]float64, len(ms))
		var sum float64
		var errors int
		for i, m := range ms {
			times[i] = m.ResponseTimeMs
			sum += m.ResponseTimeMs
			if m.IsError() {
				errors++
			}
		}
		sort.Float64s(times)
		out = append(out, EndpointSummary{
			Service:   k.service,
			Endpoint:  k.endpoint,
			Count:     len(ms),
			AvgMs:     round2(sum / float64(len(ms))),
			P95Ms:     Percentile(times, 95),
			MaxMs:     times[len(times)-1],
			ErrorRate: round2(float64(errors) / float64(len(ms))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Endpoint < out[j].Endpoint
	})
	return out
}

// Percentile returns the nearest-rank percentile of sorted values
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
