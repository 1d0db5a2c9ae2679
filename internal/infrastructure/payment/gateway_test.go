package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(method payment.Method) payment.GatewayRequest {
	return payment.GatewayRequest{
		PaymentID:     "pay-1",
		TransactionID: "TXN-1",
		OrderID:       "ORD-1",
		Amount:        decimal.NewFromInt(1200),
		Currency:      "INR",
		Method:        method,
	}
}

func TestSimulatedGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("cash on delivery is always approved", func(t *testing.T) {
		g := NewSimulatedGateway(WithSeed(1))
		for range 50 {
			res, err := g.Authorize(ctx, testRequest(payment.MethodCOD))
			require.NoError(t, err)
			assert.True(t, res.Approved)
			assert.Regexp(t, `^SIM-[0-9A-F]{16}$`, res.Reference)
		}
	})

	t.Run("approval rate tracks the method", func(t *testing.T) {
		g := NewSimulatedGateway(WithSeed(42))
		approved := 0
		const n = 2000
		for range n {
			res, err := g.Authorize(ctx, testRequest(payment.MethodNetBanking))
			require.NoError(t, err)
			if res.Approved {
				approved++
			}
		}
		assert.InDelta(t, 0.85, float64(approved)/n, 0.05)
	})

	t.Run("same seed same outcomes", func(t *testing.T) {
		a, b := NewSimulatedGateway(WithSeed(7)), NewSimulatedGateway(WithSeed(7))
		for range 20 {
			ra, _ := a.Authorize(ctx, testRequest(payment.MethodCard))
			rb, _ := b.Authorize(ctx, testRequest(payment.MethodCard))
			assert.Equal(t, ra.Approved, rb.Approved)
		}
	})

	t.Run("capture needs a reference", func(t *testing.T) {
		g := NewSimulatedGateway()
		res, err := g.Capture(ctx, testRequest(payment.MethodCard))
		require.NoError(t, err)
		assert.False(t, res.Approved)

		req := testRequest(payment.MethodCard)
		req.Reference = "SIM-1"
		res, err = g.Capture(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.Approved)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		g := NewSimulatedGateway(WithLatency(time.Second))
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := g.Authorize(cctx, testRequest(payment.MethodCOD))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPGateway(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		var req payment.GatewayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case req.OrderID == "DECLINE":
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"reason":"insufficient funds"}`))
		case req.OrderID == "BROKEN":
			w.WriteHeader(http.StatusBadGateway)
		case r.URL.Path == "/authorize":
			assert.Equal(t, "TXN-1/authorize", r.Header.Get("Idempotency-Key"))
			_, _ = w.Write([]byte(`{"approved":true,"reference":"AUTH-9"}`))
		case r.URL.Path == "/capture":
			_, _ = w.Write([]byte(`{"approved":true,"reference":"` + req.Reference + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	g, err := NewHTTPGateway(HTTPGatewayConfig{BaseURL: server.URL + "/", APIKey: "key-123", Timeout: time.Second})
	require.NoError(t, err)

	t.Run("authorize and capture", func(t *testing.T) {
		res, err := g.Authorize(ctx, testRequest(payment.MethodCard))
		require.NoError(t, err)
		assert.True(t, res.Approved)
		assert.Equal(t, "AUTH-9", res.Reference)

		req := testRequest(payment.MethodCard)
		req.Reference = res.Reference
		res, err = g.Capture(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "AUTH-9", res.Reference)
	})

	t.Run("decline is a result", func(t *testing.T) {
		req := testRequest(payment.MethodCard)
		req.OrderID = "DECLINE"
		res, err := g.Authorize(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Approved)
		assert.Equal(t, "insufficient funds", res.Reason)
	})

	t.Run("server error is an error", func(t *testing.T) {
		req := testRequest(payment.MethodCard)
		req.OrderID = "BROKEN"
		_, err := g.Authorize(ctx, req)
		assert.Error(t, err)
	})
}

func TestNewGateway(t *testing.T) {
	g, err := NewGateway(config.PaymentConfig{Gateway: "simulated"})
	require.NoError(t, err)
	assert.Equal(t, "simulated", g.Name())

	_, err = NewGateway(config.PaymentConfig{Gateway: "http"})
	assert.Error(t, err)

	g, err = NewGateway(config.PaymentConfig{Gateway: "http", GatewayURL: "http://localhost:9999"})
	require.NoError(t, err)
	assert.Equal(t, "http", g.Name())

	_, err = NewGateway(config.PaymentConfig{Gateway: "stripe"})
	assert.Error(t, err)
}
