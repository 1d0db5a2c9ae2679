package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[string(a.Key)] = a.Value.Emit()
	}
	return out
}

func TestTracing(t *testing.T) {
	recorder := setupTracer(t)
	authn := &stubAuthenticator{tokens: map[string]*auth.Claims{"good": {UserID: "user-9"}}}

	router := gin.New()
	router.Use(
		RequestID(),
		TracingWithConfig(TracingConfig{ServiceName: "storefront", Enabled: true}),
		JWTAuthMiddlewareWithConfig(DefaultJWTConfig(authn)),
		SpanEnricher(),
	)
	router.GET("/shipments/:id", okHandler)
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/health", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/shipments/42", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	req.Header.Set(AuthHeaderKey, "Bearer good")
	router.ServeHTTP(httptest.NewRecorder(), req)

	boom := httptest.NewRequest(http.MethodGet, "/boom", nil)
	boom.Header.Set(AuthHeaderKey, "Bearer good")
	router.ServeHTTP(httptest.NewRecorder(), boom)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2, "health checks are not traced")

	first := spans[0]
	assert.Contains(t, first.Name(), "/shipments/:id")
	attrs := attrMap(first.Attributes())
	assert.Equal(t, "req-7", attrs["request_id"])
	assert.Equal(t, "user-9", attrs["user_id"])

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestTracing_Disabled(t *testing.T) {
	recorder := setupTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}), SpanEnricher())
	router.GET("/x", okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}
