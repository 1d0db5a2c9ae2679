package shipping

import (
	"context"

	"github.com/storefront/platform/internal/domain/shipping"
)

// TransactionScope runs a unit of work against shipping repositories that
// share one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction
type TransactionalRepositories interface {
	Shipments() shipping.ShipmentRepository
	TrackingEvents() shipping.TrackingEventRepository
}
