package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePayment = "Payment"
	AggregateTypeRefund  = "Refund"
)

// Event type constants
const (
	EventTypePaymentStatusChanged = "PaymentStatusChanged"
	EventTypeRefundCreated        = "RefundCreated"
)

// PaymentStatusChangedEvent is published on every state machine transition
type PaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID string          `json:"order_id"`
	Method  Method          `json:"method"`
	From    Status          `json:"from"`
	To      Status          `json:"to"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewPaymentStatusChangedEvent creates a new PaymentStatusChangedEvent
func NewPaymentStatusChangedEvent(p *Payment, from Status) *PaymentStatusChangedEvent {
	return &PaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentStatusChanged, AggregateTypePayment, p.ID),
		OrderID:         p.OrderID,
		Method:          p.Method,
		From:            from,
		To:              p.Status,
		Amount:          p.Amount,
	}
}

// RefundCreatedEvent is published when a refund is booked
type RefundCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewRefundCreatedEvent creates a new RefundCreatedEvent
func NewRefundCreatedEvent(r *Refund) *RefundCreatedEvent {
	return &RefundCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundCreated, AggregateTypeRefund, r.ID),
		PaymentID:       r.PaymentID,
		Amount:          r.Amount,
	}
}
