package accounting

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// BalanceTolerance is the largest allowed difference between the debit
// and credit totals of one entry.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntryStatus represents the lifecycle state of an entry
type JournalEntryStatus string

const (
	JournalEntryStatusDraft    JournalEntryStatus = "draft"
	JournalEntryStatusPosted   JournalEntryStatus = "posted"
	JournalEntryStatusReversed JournalEntryStatus = "reversed"
)

// IsValid checks if the status is known
func (s JournalEntryStatus) IsValid() bool {
	switch s {
	case JournalEntryStatusDraft, JournalEntryStatusPosted, JournalEntryStatusReversed:
		return true
	}
	return false
}

// JournalEntry is a balanced double-entry record with its lines
type JournalEntry struct {
	shared.BaseAggregateRoot
	EntryNumber string             `gorm:"type:varchar(40);not null;uniqueIndex"`
	EntryDate   time.Time          `gorm:"not null;index"`
	Description string             `gorm:"type:text;not null"`
	Reference   string             `gorm:"type:varchar(100)"`
	Status      JournalEntryStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	TotalDebit  decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCredit decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	PostedAt    *time.Time
	ReversedAt  *time.Time
	ReversalOf  *uuid.UUID         `gorm:"type:uuid;index"`
	Lines       []JournalEntryLine `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalEntryLine is one debit or credit leg of an entry
type JournalEntryLine struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Account        string          `gorm:"type:varchar(200);not null"`
	AccountID      *uuid.UUID      `gorm:"type:uuid;index"`
	Description    string          `gorm:"type:text"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LineNumber     int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalEntryLine) TableName() string {
	return "journal_entry_lines"
}

// LineInput is the raw material for one line
type LineInput struct {
	Account     string
	AccountID   *uuid.UUID
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// NewJournalEntry validates the lines and builds a draft entry.
// An entry whose debit and credit totals differ by more than
// BalanceTolerance is rejected.
func NewJournalEntry(description, reference string, date time.Time, lines []LineInput) (*JournalEntry, error) {
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewValidationError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(lines) < 2 {
		return nil, shared.NewValidationError("INSUFFICIENT_LINES", "A journal entry needs at least two lines")
	}

	entry := &JournalEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntryNumber:       NewEntryNumber(time.Now()),
		EntryDate:         date,
		Description:       strings.TrimSpace(description),
		Reference:         reference,
		Status:            JournalEntryStatusDraft,
		Lines:             make([]JournalEntryLine, 0, len(lines)),
	}
	if entry.EntryDate.IsZero() {
		entry.EntryDate = entry.CreatedAt
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, in := range lines {
		if err := validateLine(i+1, in); err != nil {
			return nil, err
		}
		entry.Lines = append(entry.Lines, JournalEntryLine{
			ID:             uuid.New(),
			JournalEntryID: entry.ID,
			Account:        strings.TrimSpace(in.Account),
			AccountID:      in.AccountID,
			Description:    in.Description,
			Debit:          in.Debit.Round(2),
			Credit:         in.Credit.Round(2),
			LineNumber:     i + 1,
		})
		totalDebit = totalDebit.Add(in.Debit)
		totalCredit = totalCredit.Add(in.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance) {
		return nil, shared.NewValidationError("UNBALANCED_ENTRY",
			fmt.Sprintf("Debits (%s) and credits (%s) must balance", totalDebit.StringFixed(2), totalCredit.StringFixed(2)))
	}

	entry.TotalDebit = totalDebit.Round(2)
	entry.TotalCredit = totalCredit.Round(2)
	entry.AddDomainEvent(NewJournalEntryCreatedEvent(entry))

	return entry, nil
}

func validateLine(n int, in LineInput) error {
	if strings.TrimSpace(in.Account) == "" {
		return shared.NewValidationError("INVALID_LINE", fmt.Sprintf("Line %d: account is required", n))
	}
	if in.Debit.IsNegative() || in.Credit.IsNegative() {
		return shared.NewValidationError("INVALID_LINE", fmt.Sprintf("Line %d: amounts cannot be negative", n))
	}
	if in.Debit.IsPositive() && in.Credit.IsPositive() {
		return shared.NewValidationError("INVALID_LINE", fmt.Sprintf("Line %d: a line is either a debit or a credit", n))
	}
	if in.Debit.IsZero() && in.Credit.IsZero() {
		return shared.NewValidationError("INVALID_LINE", fmt.Sprintf("Line %d: debit or credit must be greater than zero", n))
	}
	return nil
}

// Post moves a draft entry to posted
func (e *JournalEntry) Post() error {
	if e.Status != JournalEntryStatusDraft {
		return shared.NewInvalidStateError(fmt.Sprintf("Only draft entries can be posted, entry is %s", e.Status))
	}
	now := time.Now()
	e.Status = JournalEntryStatusPosted
	e.PostedAt = &now
	e.UpdatedAt = now
	e.AddDomainEvent(NewJournalEntryPostedEvent(e))
	return nil
}

// Reverse marks a posted entry reversed and returns the posted mirror entry
// with debits and credits swapped.
func (e *JournalEntry) Reverse(reason string) (*JournalEntry, error) {
	if e.Status != JournalEntryStatusPosted {
		return nil, shared.NewInvalidStateError(fmt.Sprintf("Only posted entries can be reversed, entry is %s", e.Status))
	}

	inputs := make([]LineInput, 0, len(e.Lines))
	for _, l := range e.Lines {
		inputs = append(inputs, LineInput{
			Account:     l.Account,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Credit,
			Credit:      l.Debit,
		})
	}
	description := "Reversal of " + e.EntryNumber
	if reason != "" {
		description += ": " + reason
	}
	mirror, err := NewJournalEntry(description, e.EntryNumber, time.Now(), inputs)
	if err != nil {
		return nil, err
	}
	mirror.ReversalOf = &e.ID
	if err := mirror.Post(); err != nil {
		return nil, err
	}

	now := time.Now()
	e.Status = JournalEntryStatusReversed
	e.ReversedAt = &now
	e.UpdatedAt = now
	e.AddDomainEvent(NewJournalEntryReversedEvent(e, mirror))

	return mirror, nil
}

// CanDelete reports whether the entry may be removed
func (e *JournalEntry) CanDelete() bool {
	return e.Status == JournalEntryStatusDraft
}

const entryNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewEntryNumber formats JE-<unix millis>-<4 uppercase alphanumerics>
func NewEntryNumber(now time.Time) string {
	suffix := make([]byte, 4)
	limit := big.NewInt(int64(len(entryNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			n = big.NewInt(now.UnixNano() % int64(len(entryNumberAlphabet)))
		}
		suffix[i] = entryNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("JE-%d-%s", now.UnixMilli(), suffix)
}
