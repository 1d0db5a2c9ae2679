package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type observation struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) Begin() func(method, route string, status int) {
	return func(method, route string, status int) {
		r.seen = append(r.seen, observation{method, route, status})
	}
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	prom := &recordingObserver{}
	mw, err := HTTPMetrics(HTTPMetricsConfig{Prometheus: prom, Meter: provider.Meter("test")})
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/payments/:id", okHandler)

	for _, path := range []string{"/payments/1", "/payments/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, prom.seen, 3)
	assert.Equal(t, observation{"GET", "/payments/:id", 200}, prom.seen[0])
	assert.Equal(t, observation{"GET", "", 404}, prom.seen[2])

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			if m.Name == "http_server_request_total" {
				sum := m.Data.(metricdata.Sum[int64])
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				assert.Equal(t, int64(3), total)
			}
		}
	}
	assert.True(t, found["http_server_request_total"])
	assert.True(t, found["http_server_request_duration_seconds"])
}

func TestHTTPMetrics_PrometheusOnly(t *testing.T) {
	prom := &recordingObserver{}
	mw, err := HTTPMetrics(HTTPMetricsConfig{Prometheus: prom})
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.POST("/refunds", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/refunds", nil))

	require.Len(t, prom.seen, 1)
	assert.Equal(t, 201, prom.seen[0].status)
}
