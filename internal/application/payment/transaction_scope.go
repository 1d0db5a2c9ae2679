package payment

import (
	"context"

	"github.com/storefront/platform/internal/domain/payment"
)

// TransactionScope runs a unit of work against payment repositories that
// share one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction
type TransactionalRepositories interface {
	Payments() payment.PaymentRepository
	Refunds() payment.RefundRepository
	Methods() payment.PaymentMethodRepository
}
