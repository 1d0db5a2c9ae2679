package payment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/storefront/platform/internal/domain/payment"
)

// HTTPGatewayConfig configures the HTTP gateway adapter
type HTTPGatewayConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPGateway talks to a processor exposing POST /authorize and POST /capture.
// 402 and 422 responses carry a decline; other non-2xx answers are transport errors.
type HTTPGateway struct {
	client *resty.Client
}

type gatewayErrorBody struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// NewHTTPGateway creates an HTTP gateway adapter
func NewHTTPGateway(cfg HTTPGatewayConfig) (*HTTPGateway, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("payment gateway url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "storefront-platform/1.0")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &HTTPGateway{client: client}, nil
}

// Name implements payment.Gateway
func (g *HTTPGateway) Name() string {
	return "http"
}

// Authorize implements payment.Gateway
func (g *HTTPGateway) Authorize(ctx context.Context, req payment.GatewayRequest) (payment.GatewayResult, error) {
	return g.call(ctx, "/authorize", req)
}

// Capture implements payment.Gateway
func (g *HTTPGateway) Capture(ctx context.Context, req payment.GatewayRequest) (payment.GatewayResult, error) {
	return g.call(ctx, "/capture", req)
}

func (g *HTTPGateway) call(ctx context.Context, path string, req payment.GatewayRequest) (payment.GatewayResult, error) {
	var result payment.GatewayResult
	var failure gatewayErrorBody

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", req.TransactionID+path).
		SetBody(req).
		SetResult(&result).
		SetError(&failure).
		Post(path)
	if err != nil {
		return payment.GatewayResult{}, fmt.Errorf("gateway %s: %w", path, err)
	}

	switch code := resp.StatusCode(); {
	case code >= 200 && code < 300:
		return result, nil
	case code == http.StatusPaymentRequired || code == http.StatusUnprocessableEntity:
		reason := failure.Reason
		if reason == "" {
			reason = failure.Message
		}
		if reason == "" {
			reason = "declined"
		}
		return payment.GatewayResult{Reason: reason}, nil
	default:
		return payment.GatewayResult{}, fmt.Errorf("gateway %s: unexpected status %d", path, code)
	}
}

var _ payment.Gateway = (*HTTPGateway)(nil)
