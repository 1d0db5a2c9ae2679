package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows account listings
type AccountFilter struct {
	Type   *AccountType
	Active *bool
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, code string) (*Account, error)
	// FindByReference resolves free text to an account by code or name
	FindByReference(ctx context.Context, ref string) (*Account, error)
	FindAll(ctx context.Context, filter AccountFilter) ([]Account, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// JournalEntryFilter narrows journal entry listings
type JournalEntryFilter struct {
	Status *JournalEntryStatus
	From   *time.Time
	To     *time.Time
}

// JournalEntryRepository defines the interface for journal entry persistence.
// Save writes the header and all lines.
type JournalEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)
	FindAll(ctx context.Context, filter JournalEntryFilter) ([]JournalEntry, error)
	Create(ctx context.Context, entry *JournalEntry) error
	UpdateStatus(ctx context.Context, entry *JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Balances sums posted lines per account within the optional date range
	Balances(ctx context.Context, from, to *time.Time) ([]AccountBalance, error)
}

// AccountBalance is the posted debit and credit total for one account.
// AccountID is nil for lines that never resolved to an account.
type AccountBalance struct {
	AccountID   *uuid.UUID
	AccountCode string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Net returns the balance in the account's normal direction
func (b AccountBalance) Net() decimal.Decimal {
	if b.AccountType.IsDebitNormal() {
		return b.Debit.Sub(b.Credit)
	}
	return b.Credit.Sub(b.Debit)
}
