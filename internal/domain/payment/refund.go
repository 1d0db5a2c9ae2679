package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// RefundStatus represents the status of a refund
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusRejected  RefundStatus = "rejected"
)

// Refund returns part or all of a completed payment
type Refund struct {
	shared.BaseAggregateRoot
	PaymentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reason      string          `gorm:"type:text"`
	Status      RefundStatus    `gorm:"type:varchar(20);not null;default:'pending'"`
	ProcessedAt *time.Time
}

// TableName returns the table name for GORM
func (Refund) TableName() string {
	return "refunds"
}

// NewRefund books a refund against p. The payment is mutated through
// ApplyRefund, so both rows must be saved together.
func NewRefund(p *Payment, amount decimal.Decimal, reason string) (*Refund, error) {
	amount = amount.Round(2)
	if err := p.ApplyRefund(amount); err != nil {
		return nil, err
	}
	now := time.Now()
	r := &Refund{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentID:         p.ID,
		Amount:            amount,
		Reason:            strings.TrimSpace(reason),
		Status:            RefundStatusProcessed,
		ProcessedAt:       &now,
	}
	r.AddDomainEvent(NewRefundCreatedEvent(r))
	return r, nil
}

// PaymentMethod is a saved instrument for a customer
type PaymentMethod struct {
	shared.BaseAggregateRoot
	CustomerID string `gorm:"type:varchar(64);not null;index"`
	Type       Method `gorm:"type:varchar(20);not null"`
	Provider   string `gorm:"type:varchar(64)"`
	Label      string `gorm:"type:varchar(100)"`
	Last4      string `gorm:"type:varchar(4)"`
	IsDefault  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a saved instrument
func NewPaymentMethod(customerID string, typ Method, provider, label, last4 string) (*PaymentMethod, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer id is required")
	}
	if !typ.IsValid() {
		return nil, shared.NewValidationError("INVALID_METHOD", "Unsupported payment method type")
	}
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	return &PaymentMethod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Type:              typ,
		Provider:          provider,
		Label:             label,
		Last4:             last4,
	}, nil
}
