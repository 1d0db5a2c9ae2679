package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RequestObserver records one finished request. telemetry.HTTPMetrics
// implements it on top of the Prometheus registry.
type RequestObserver interface {
	Begin() func(method, route string, status int)
}

// HTTPMetricsConfig holds configuration for the metrics middleware
type HTTPMetricsConfig struct {
	// Prometheus feeds /metrics
	Prometheus RequestObserver
	// Meter, when set, also exports request counters over OTLP
	Meter metric.Meter
}

type otelHTTPMetrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newOtelHTTPMetrics(meter metric.Meter) (*otelHTTPMetrics, error) {
	requestTotal, err := meter.Int64Counter("http_server_request_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	requestDuration, err := meter.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency distribution in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10))
	if err != nil {
		return nil, err
	}
	activeRequests, err := meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	return &otelHTTPMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a middleware that records request count and latency
// labelled by the matched route pattern, never the raw path.
func HTTPMetrics(cfg HTTPMetricsConfig) (gin.HandlerFunc, error) {
	var otelMetrics *otelHTTPMetrics
	if cfg.Meter != nil {
		m, err := newOtelHTTPMetrics(cfg.Meter)
		if err != nil {
			return nil, err
		}
		otelMetrics = m
	}

	return func(c *gin.Context) {
		var done func(method, route string, status int)
		if cfg.Prometheus != nil {
			done = cfg.Prometheus.Begin()
		}
		ctx := c.Request.Context()
		start := time.Now()
		if otelMetrics != nil {
			otelMetrics.activeRequests.Add(ctx, 1)
		}

		c.Next()

		route := c.FullPath()
		method := c.Request.Method
		status := c.Writer.Status()
		if done != nil {
			done(method, route, status)
		}
		if otelMetrics != nil {
			if route == "" {
				route = "unmatched"
			}
			methodAttr := attribute.String("http.method", method)
			routeAttr := attribute.String("http.route", route)
			otelMetrics.activeRequests.Add(ctx, -1)
			otelMetrics.requestTotal.Add(ctx, 1, metric.WithAttributes(methodAttr, routeAttr, attribute.Int("http.status_code", status)))
			otelMetrics.requestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(methodAttr, routeAttr))
		}
	}, nil
}
