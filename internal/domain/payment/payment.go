package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// Method is the instrument a customer pays with
type Method string

const (
	MethodUPI        Method = "upi"
	MethodCard       Method = "card"
	MethodNetBanking Method = "netbanking"
	MethodWallet     Method = "wallet"
	MethodCOD        Method = "cod"
)

// AllMethods lists the supported payment methods
var AllMethods = []Method{MethodUPI, MethodCard, MethodNetBanking, MethodWallet, MethodCOD}

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	for _, v := range AllMethods {
		if v == m {
			return true
		}
	}
	return false
}

// Status is a payment lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusAuthorized Status = "authorized"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

// transitions is the payment state machine. completed is the captured state.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAuthorized, StatusFailed},
	StatusAuthorized: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusRefunded},
}

// CanTransitionTo reports whether moving from s to next is legal
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAuthorized, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions exist
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// DefaultCurrency is used when a payment does not name one
const DefaultCurrency = "INR"

// Payment is a single charge attempt against an order
type Payment struct {
	shared.BaseAggregateRoot
	OrderID          string          `gorm:"type:varchar(64);not null;index"`
	CustomerID       string          `gorm:"type:varchar(64);not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency         string          `gorm:"type:varchar(3);not null;default:'INR'"`
	Method           Method          `gorm:"type:varchar(20);not null"`
	Status           Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransactionID    string          `gorm:"type:varchar(64);uniqueIndex"`
	GatewayReference string          `gorm:"type:varchar(128)"`
	FailureReason    string          `gorm:"type:text"`
	RefundedAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ProcessedAt      *time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment
func NewPayment(orderID, customerID string, amount decimal.Decimal, currency string, method Method) (*Payment, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order id is required")
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer id is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("INVALID_METHOD", fmt.Sprintf("Unsupported payment method %q", method))
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		CustomerID:        customerID,
		Amount:            amount.Round(2),
		Currency:          strings.ToUpper(currency),
		Method:            method,
		Status:            StatusPending,
		RefundedAmount:    decimal.Zero,
	}
	p.TransactionID = "TXN-" + strings.ToUpper(strings.ReplaceAll(p.ID.String(), "-", "")[:16])
	return p, nil
}

func (p *Payment) transition(next Status) error {
	if !p.Status.CanTransitionTo(next) {
		return shared.NewInvalidStateError(fmt.Sprintf("Payment cannot move from %s to %s", p.Status, next))
	}
	from := p.Status
	p.Status = next
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPaymentStatusChangedEvent(p, from))
	return nil
}

// EnsureProcessable fails unless the payment is still pending
func (p *Payment) EnsureProcessable() error {
	if p.Status != StatusPending {
		return shared.NewInvalidStateError(fmt.Sprintf("Only pending payments can be processed, payment is %s", p.Status))
	}
	return nil
}

// Authorize records a gateway authorization
func (p *Payment) Authorize(reference string) error {
	if err := p.transition(StatusAuthorized); err != nil {
		return err
	}
	p.GatewayReference = reference
	return nil
}

// Capture completes an authorized payment
func (p *Payment) Capture() error {
	if err := p.transition(StatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	p.ProcessedAt = &now
	return nil
}

// Fail records a decline
func (p *Payment) Fail(reason string) error {
	if err := p.transition(StatusFailed); err != nil {
		return err
	}
	now := time.Now()
	p.FailureReason = reason
	p.ProcessedAt = &now
	return nil
}

// RefundableAmount is what is left to refund
func (p *Payment) RefundableAmount() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

// ApplyRefund books a refund against a completed payment. A refund that
// brings the refunded total to the full amount moves the payment to refunded.
func (p *Payment) ApplyRefund(amount decimal.Decimal) error {
	if p.Status != StatusCompleted {
		return shared.NewInvalidStateError(fmt.Sprintf("Refunds require a completed payment, payment is %s", p.Status))
	}
	if !amount.IsPositive() {
		return shared.NewValidationError("INVALID_AMOUNT", "Refund amount must be greater than zero")
	}
	if amount.GreaterThan(p.RefundableAmount()) {
		return shared.NewValidationError("REFUND_EXCEEDS_PAYMENT",
			fmt.Sprintf("Refund of %s exceeds refundable amount %s", amount.StringFixed(2), p.RefundableAmount().StringFixed(2)))
	}
	p.RefundedAmount = p.RefundedAmount.Add(amount)
	p.UpdatedAt = time.Now()
	if p.RefundedAmount.Equal(p.Amount) {
		return p.transition(StatusRefunded)
	}
	return nil
}
