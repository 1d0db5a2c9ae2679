package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront/platform/internal/domain/performance"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, metric *performance.Metric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

func (m *MockRepository) FindAll(ctx context.Context, filter performance.Filter) ([]performance.Metric, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]performance.Metric), args.Error(1)
}

func (m *MockRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestMetricService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid metric", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewMetricService(repo, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*performance.Metric")).Return(nil)

		resp, err := svc.Record(ctx, RecordMetricRequest{
			Service: "payments", Endpoint: "/payments", Method: "post", StatusCode: 201, ResponseTimeMs: 42,
		})
		require.NoError(t, err)
		assert.Equal(t, "POST", resp.Method)
		assert.False(t, resp.RecordedAt.IsZero())
	})

	t.Run("rejects a bad status code", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewMetricService(repo, nil)

		_, err := svc.Record(ctx, RecordMetricRequest{Service: "payments", Endpoint: "/", Method: "GET", StatusCode: 42})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestMetricService_Summary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewMetricService(repo, nil)

	metrics := make([]performance.Metric, 0, 20)
	for i := 1; i <= 20; i++ {
		status := 200
		if i == 20 {
			status = 503
		}
		metrics = append(metrics, performance.Metric{
			Service: "catalog", Endpoint: "/products", StatusCode: status, ResponseTimeMs: float64(i * 10),
		})
	}
	repo.On("FindAll", ctx, performance.Filter{Service: "catalog"}).Return(metrics, nil)

	got, err := svc.Summary(ctx, MetricQuery{Service: "catalog"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 20, got[0].Count)
	assert.Equal(t, 105.0, got[0].AvgMs)
	assert.Equal(t, 190.0, got[0].P95Ms)
	assert.Equal(t, 200.0, got[0].MaxMs)
	assert.Equal(t, 0.05, got[0].ErrorRate)
}

func TestMetricService_Purge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("deletes before the cutoff", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewMetricService(repo, nil)
		svc.now = func() time.Time { return now }
		repo.On("DeleteBefore", ctx, now.Add(-24*time.Hour)).Return(int64(7), nil)

		n, err := svc.Purge(ctx, 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})

	t.Run("propagates errors", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewMetricService(repo, nil)
		repo.On("DeleteBefore", ctx, mock.Anything).Return(int64(0), errors.New("db down"))

		_, err := svc.Purge(ctx, time.Hour)
		assert.Error(t, err)
	})
}
