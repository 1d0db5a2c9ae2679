package payment

import (
	"fmt"

	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/infrastructure/config"
)

// NewGateway selects the gateway named by configuration
func NewGateway(cfg config.PaymentConfig) (payment.Gateway, error) {
	switch cfg.Gateway {
	case "", "simulated":
		return NewSimulatedGateway(), nil
	case "http":
		return NewHTTPGateway(HTTPGatewayConfig{
			BaseURL: cfg.GatewayURL,
			APIKey:  cfg.GatewayAPIKey,
			Timeout: cfg.GatewayTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", cfg.Gateway)
	}
}
