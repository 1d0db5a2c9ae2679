package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows payment listings
type Filter struct {
	Status     *Status
	CustomerID string
	OrderID    string
}

// StatusSummary aggregates payments sharing a status or method
type StatusSummary struct {
	Key    string
	Count  int64
	Amount decimal.Decimal
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter Filter) ([]Payment, error)
	FindByOrder(ctx context.Context, orderID string) ([]Payment, error)
	// FindPendingBefore returns pending payments created before cutoff
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
	SummaryByStatus(ctx context.Context) ([]StatusSummary, error)
	SummaryByMethod(ctx context.Context) ([]StatusSummary, error)
}

// RefundRepository defines the interface for refund persistence
type RefundRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Refund, error)
	FindAll(ctx context.Context) ([]Refund, error)
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]Refund, error)
	Save(ctx context.Context, r *Refund) error
}

// PaymentMethodRepository defines the interface for saved instruments
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	FindByCustomer(ctx context.Context, customerID string) ([]PaymentMethod, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
	// ClearDefault unsets the default flag on every method of the customer
	ClearDefault(ctx context.Context, customerID string) error
	Save(ctx context.Context, m *PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
}
