package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/payment"
)

// CreatePaymentRequest represents a request to open a payment for an order
type CreatePaymentRequest struct {
	OrderID    string          `json:"orderId" binding:"required,max=64"`
	CustomerID string          `json:"customerId" binding:"required,max=64"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency" binding:"omitempty,len=3"`
	Method     string          `json:"method" binding:"required"`
}

// CallbackRequest is an asynchronous processor notification
type CallbackRequest struct {
	Event     string `json:"event" binding:"required,oneof=authorized captured failed"`
	Reference string `json:"reference" binding:"max=128"`
	Reason    string `json:"reason" binding:"max=500"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          string          `json:"orderId"`
	CustomerID       string          `json:"customerId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	TransactionID    string          `json:"transactionId"`
	GatewayReference string          `json:"gatewayReference,omitempty"`
	FailureReason    string          `json:"failureReason,omitempty"`
	RefundedAmount   decimal.Decimal `json:"refundedAmount"`
	ProcessedAt      *time.Time      `json:"processedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		OrderID:          p.OrderID,
		CustomerID:       p.CustomerID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Method:           string(p.Method),
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
		GatewayReference: p.GatewayReference,
		FailureReason:    p.FailureReason,
		RefundedAmount:   p.RefundedAmount,
		ProcessedAt:      p.ProcessedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toPaymentResponses(payments []payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}

// SummaryLine is a count and sum for one status or method
type SummaryLine struct {
	Key    string          `json:"key"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// StatsResponse aggregates payments by status and method
type StatsResponse struct {
	TotalCount  int64           `json:"totalCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ByStatus    []SummaryLine   `json:"byStatus"`
	ByMethod    []SummaryLine   `json:"byMethod"`
}

// CreateRefundRequest represents a request to refund a payment
type CreateRefundRequest struct {
	PaymentID uuid.UUID       `json:"paymentId" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason" binding:"max=500"`
}

// RefundResponse represents a refund in API responses
type RefundResponse struct {
	ID          uuid.UUID       `json:"id"`
	PaymentID   uuid.UUID       `json:"paymentId"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	Status      string          `json:"status"`
	ProcessedAt *time.Time      `json:"processedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToRefundResponse converts a domain refund
func ToRefundResponse(r *payment.Refund) RefundResponse {
	return RefundResponse{
		ID:          r.ID,
		PaymentID:   r.PaymentID,
		Amount:      r.Amount,
		Reason:      r.Reason,
		Status:      string(r.Status),
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func toRefundResponses(refunds []payment.Refund) []RefundResponse {
	out := make([]RefundResponse, 0, len(refunds))
	for i := range refunds {
		out = append(out, ToRefundResponse(&refunds[i]))
	}
	return out
}

// CreateMethodRequest represents a request to save a payment instrument
type CreateMethodRequest struct {
	CustomerID string `json:"customerId" binding:"required,max=64"`
	Type       string `json:"type" binding:"required"`
	Provider   string `json:"provider" binding:"max=64"`
	Label      string `json:"label" binding:"max=100"`
	Last4      string `json:"last4" binding:"omitempty,max=19,numeric"`
	IsDefault  bool   `json:"isDefault"`
}

// MethodResponse represents a saved instrument in API responses
type MethodResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customerId"`
	Type       string    `json:"type"`
	Provider   string    `json:"provider"`
	Label      string    `json:"label"`
	Last4      string    `json:"last4"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToMethodResponse converts a domain payment method
func ToMethodResponse(m *payment.PaymentMethod) MethodResponse {
	return MethodResponse{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Type:       string(m.Type),
		Provider:   m.Provider,
		Label:      m.Label,
		Last4:      m.Last4,
		IsDefault:  m.IsDefault,
		CreatedAt:  m.CreatedAt,
	}
}
