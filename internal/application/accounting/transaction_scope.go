package accounting

import (
	"context"

	"github.com/storefront/platform/internal/domain/accounting"
)

// TransactionScope runs a unit of work against accounting repositories that
// share one database transaction. Returning an error rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction
type TransactionalRepositories interface {
	Accounts() accounting.AccountRepository
	JournalEntries() accounting.JournalEntryRepository
}
