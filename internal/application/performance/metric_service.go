package performance

import (
	"context"
	"time"

	"github.com/storefront/platform/internal/domain/performance"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// MetricService ingests and summarizes request measurements
type MetricService struct {
	repo   performance.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMetricService creates a new MetricService
func NewMetricService(repo performance.Repository, logger *zap.Logger) *MetricService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricService{repo: repo, logger: logger, now: time.Now}
}

// Record stores one measurement
func (s *MetricService) Record(ctx context.Context, req RecordMetricRequest) (*MetricResponse, error) {
	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	m, err := performance.NewMetric(req.Service, req.Endpoint, req.Method, req.StatusCode, req.ResponseTimeMs, recordedAt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMetricResponse(m)
	return &resp, nil
}

// List returns raw metrics, newest first
func (s *MetricService) List(ctx context.Context, q MetricQuery) ([]MetricResponse, error) {
	metrics, err := s.repo.FindAll(ctx, q.filter())
	if err != nil {
		return nil, err
	}
	out := make([]MetricResponse, len(metrics))
	for i := range metrics {
		out[i] = ToMetricResponse(&metrics[i])
	}
	return out, nil
}

// Summary aggregates the matching metrics per service endpoint
func (s *MetricService) Summary(ctx context.Context, q MetricQuery) ([]performance.EndpointSummary, error) {
	metrics, err := s.repo.FindAll(ctx, q.filter())
	if err != nil {
		return nil, err
	}
	return performance.Summarize(metrics), nil
}

// Purge removes metrics older than retention
func (s *MetricService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	n, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		logger.With(ctx, s.logger).Error("Failed to purge performance metrics", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		logger.With(ctx, s.logger).Info("Purged performance metrics", zap.Int64("removed", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
