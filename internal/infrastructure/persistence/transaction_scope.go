package persistence

import (
	"context"

	appacct "github.com/storefront/platform/internal/application/accounting"
	appi18n "github.com/storefront/platform/internal/application/i18n"
	apppay "github.com/storefront/platform/internal/application/payment"
	appship "github.com/storefront/platform/internal/application/shipping"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/i18n"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shipping"
	"gorm.io/gorm"
)

// runInTx executes fn in a transaction. Commit failures are classified like
// any other driver error.
func runInTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return classify(db.WithContext(ctx).Transaction(fn), "record")
}

// AccountingTransactionScope implements the accounting TransactionScope.
type AccountingTransactionScope struct {
	db *gorm.DB
}

// NewAccountingTransactionScope creates a new AccountingTransactionScope
func NewAccountingTransactionScope(db *gorm.DB) *AccountingTransactionScope {
	return &AccountingTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one transaction
func (s *AccountingTransactionScope) Execute(ctx context.Context, fn func(repos appacct.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(tx *gorm.DB) error {
		return fn(accountingTxRepos{tx: tx})
	})
}

type accountingTxRepos struct{ tx *gorm.DB }

func (r accountingTxRepos) Accounts() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r accountingTxRepos) JournalEntries() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

// PaymentTransactionScope implements the payment TransactionScope.
type PaymentTransactionScope struct {
	db *gorm.DB
}

// NewPaymentTransactionScope creates a new PaymentTransactionScope
func NewPaymentTransactionScope(db *gorm.DB) *PaymentTransactionScope {
	return &PaymentTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one transaction
func (s *PaymentTransactionScope) Execute(ctx context.Context, fn func(repos apppay.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(tx *gorm.DB) error {
		return fn(paymentTxRepos{tx: tx})
	})
}

type paymentTxRepos struct{ tx *gorm.DB }

func (r paymentTxRepos) Payments() payment.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r paymentTxRepos) Refunds() payment.RefundRepository {
	return NewGormRefundRepository(r.tx)
}

func (r paymentTxRepos) Methods() payment.PaymentMethodRepository {
	return NewGormPaymentMethodRepository(r.tx)
}

// ShippingTransactionScope implements the shipping TransactionScope.
type ShippingTransactionScope struct {
	db *gorm.DB
}

// NewShippingTransactionScope creates a new ShippingTransactionScope
func NewShippingTransactionScope(db *gorm.DB) *ShippingTransactionScope {
	return &ShippingTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one transaction
func (s *ShippingTransactionScope) Execute(ctx context.Context, fn func(repos appship.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(tx *gorm.DB) error {
		return fn(shippingTxRepos{tx: tx})
	})
}

type shippingTxRepos struct{ tx *gorm.DB }

func (r shippingTxRepos) Shipments() shipping.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

func (r shippingTxRepos) TrackingEvents() shipping.TrackingEventRepository {
	return NewGormTrackingEventRepository(r.tx)
}

// I18nTransactionScope implements the i18n TransactionScope.
type I18nTransactionScope struct {
	db *gorm.DB
}

// NewI18nTransactionScope creates a new I18nTransactionScope
func NewI18nTransactionScope(db *gorm.DB) *I18nTransactionScope {
	return &I18nTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one transaction
func (s *I18nTransactionScope) Execute(ctx context.Context, fn func(repos appi18n.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(tx *gorm.DB) error {
		return fn(i18nTxRepos{tx: tx})
	})
}

type i18nTxRepos struct{ tx *gorm.DB }

func (r i18nTxRepos) Languages() i18n.LanguageRepository {
	return NewGormLanguageRepository(r.tx)
}

func (r i18nTxRepos) Translations() i18n.TranslationRepository {
	return NewGormTranslationRepository(r.tx)
}

var (
	_ appacct.TransactionScope = (*AccountingTransactionScope)(nil)
	_ apppay.TransactionScope  = (*PaymentTransactionScope)(nil)
	_ appship.TransactionScope = (*ShippingTransactionScope)(nil)
	_ appi18n.TransactionScope = (*I18nTransactionScope)(nil)
)
