package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayRequest is what a processor needs to authorize or capture a charge
type GatewayRequest struct {
	PaymentID     string          `json:"payment_id"`
	TransactionID string          `json:"transaction_id"`
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        Method          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
}

// GatewayResult is the processor's answer. A declined request is a normal
// result with Approved=false; transport problems are returned as errors.
type GatewayResult struct {
	Approved  bool   `json:"approved"`
	Reference string `json:"reference"`
	Reason    string `json:"reason,omitempty"`
}

// Gateway is an external payment processor
type Gateway interface {
	// Name identifies the gateway in logs and responses
	Name() string
	// Authorize reserves the funds
	Authorize(ctx context.Context, req GatewayRequest) (GatewayResult, error)
	// Capture settles a previous authorization
	Capture(ctx context.Context, req GatewayRequest) (GatewayResult, error)
}

// CallbackEvent is the kind of asynchronous notification a processor sends
type CallbackEvent string

const (
	CallbackAuthorized CallbackEvent = "authorized"
	CallbackCaptured   CallbackEvent = "captured"
	CallbackFailed     CallbackEvent = "failed"
)

// IsValid checks if the callback event is known
func (e CallbackEvent) IsValid() bool {
	return e == CallbackAuthorized || e == CallbackCaptured || e == CallbackFailed
}
