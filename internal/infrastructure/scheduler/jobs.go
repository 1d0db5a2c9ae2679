package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job names
const (
	JobPaymentExpiry    = "payment-expiry"
	JobMetricsRetention = "metrics-retention"
)

// PaymentExpirer fails payments left pending too long
type PaymentExpirer interface {
	ExpirePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// MetricPurger removes old performance metrics
type MetricPurger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// RegisterPaymentExpiry schedules the pending payment sweep
func RegisterPaymentExpiry(s *Scheduler, schedule string, olderThan time.Duration, expirer PaymentExpirer) error {
	return s.Register(JobPaymentExpiry, schedule, 5*time.Minute, func(ctx context.Context) error {
		n, err := expirer.ExpirePending(ctx, olderThan)
		if n > 0 {
			s.logger.Info("Expired pending payments", zap.Int("count", n))
		}
		return err
	})
}

// RegisterMetricsRetention schedules the metric retention purge
func RegisterMetricsRetention(s *Scheduler, schedule string, retention time.Duration, purger MetricPurger) error {
	return s.Register(JobMetricsRetention, schedule, 10*time.Minute, func(ctx context.Context) error {
		_, err := purger.Purge(ctx, retention)
		return err
	})
}
