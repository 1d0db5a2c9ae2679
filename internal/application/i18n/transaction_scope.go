package i18n

import (
	"context"

	"github.com/storefront/platform/internal/domain/i18n"
)

// TransactionScope runs a unit of work against i18n repositories that share
// one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction
type TransactionalRepositories interface {
	Languages() i18n.LanguageRepository
	Translations() i18n.TranslationRepository
}
