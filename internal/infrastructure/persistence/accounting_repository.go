package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormAccountRepository implements accounting.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	var a accounting.Account
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Account")
	}
	return &a, nil
}

// FindByCode finds an account by its code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*accounting.Account, error) {
	var a accounting.Account
	if err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&a).Error; err != nil {
		return nil, classify(err, "Account")
	}
	return &a, nil
}

// FindByReference matches the code exactly, then the name case-insensitively
func (r *GormAccountRepository) FindByReference(ctx context.Context, ref string) (*accounting.Account, error) {
	ref = strings.TrimSpace(ref)
	var a accounting.Account
	err := r.db.WithContext(ctx).
		Where("code = ? OR LOWER(name) = ?", ref, strings.ToLower(ref)).
		Order(gorm.Expr("CASE WHEN code = ? THEN 0 ELSE 1 END", ref)).
		First(&a).Error
	if err != nil {
		return nil, classify(err, "Account")
	}
	return &a, nil
}

// FindAll lists accounts ordered by code
func (r *GormAccountRepository) FindAll(ctx context.Context, f accounting.AccountFilter) ([]accounting.Account, error) {
	q := r.db.WithContext(ctx).Model(&accounting.Account{})
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	var accounts []accounting.Account
	if err := q.Order("code ASC").Find(&accounts).Error; err != nil {
		return nil, classify(err, "Account")
	}
	return accounts, nil
}

// ExistsByCode checks if an account code is taken
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accounting.Account{}).Where("code = ?", strings.TrimSpace(code)).Count(&count).Error; err != nil {
		return false, classify(err, "Account")
	}
	return count > 0, nil
}

// HasChildren checks if any account has this one as parent
func (r *GormAccountRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accounting.Account{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return false, classify(err, "Account")
	}
	return count > 0, nil
}

// IsReferenced checks if any journal line points at the account
func (r *GormAccountRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accounting.JournalEntryLine{}).Where("account_id = ?", id).Count(&count).Error; err != nil {
		return false, classify(err, "Account")
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, a *accounting.Account) error {
	return saveVersioned(ctx, r.db, a, "Account")
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&accounting.Account{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, "Account")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Account")
	}
	return nil
}

// GormJournalEntryRepository implements accounting.JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("line_number ASC")
}

// FindByID finds an entry with its lines
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.JournalEntry, error) {
	var e accounting.JournalEntry
	if err := r.db.WithContext(ctx).Preload("Lines", preloadLines).First(&e, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Journal entry")
	}
	return &e, nil
}

// FindAll lists entries newest first
func (r *GormJournalEntryRepository) FindAll(ctx context.Context, f accounting.JournalEntryFilter) ([]accounting.JournalEntry, error) {
	q := r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).Preload("Lines", preloadLines)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("entry_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("entry_date <= ?", *f.To)
	}
	var entries []accounting.JournalEntry
	if err := q.Order("entry_date DESC, created_at DESC").Find(&entries).Error; err != nil {
		return nil, classify(err, "Journal entry")
	}
	return entries, nil
}

// Create inserts the header and every line. Callers run it inside a
// transaction so a failed line leaves no header behind.
func (r *GormJournalEntryRepository) Create(ctx context.Context, e *accounting.JournalEntry) error {
	return classify(r.db.WithContext(ctx).Create(e).Error, "Journal entry")
}

// UpdateStatus persists the lifecycle columns only. The row must still be
// at the version e was loaded with, so two posts or reversals of the same
// entry cannot both succeed.
func (r *GormJournalEntryRepository) UpdateStatus(ctx context.Context, e *accounting.JournalEntry) error {
	expected := e.GetVersion()
	res := r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).
		Where("id = ? AND version = ?", e.ID, expected).
		Updates(map[string]any{
			"status":      e.Status,
			"posted_at":   e.PostedAt,
			"reversed_at": e.ReversedAt,
			"updated_at":  e.UpdatedAt,
			"version":     expected + 1,
		})
	if res.Error != nil {
		return classify(res.Error, "Journal entry")
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).Where("id = ?", e.ID).Count(&n).Error; err != nil {
			return classify(err, "Journal entry")
		}
		if n == 0 {
			return classify(gorm.ErrRecordNotFound, "Journal entry")
		}
		return staleWrite("Journal entry")
	}
	e.IncrementVersion()
	return nil
}

// Delete removes an entry and its lines
func (r *GormJournalEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("journal_entry_id = ?", id).Delete(&accounting.JournalEntryLine{}).Error; err != nil {
			return classify(err, "Journal entry")
		}
		res := tx.Delete(&accounting.JournalEntry{}, "id = ?", id)
		if res.Error != nil {
			return classify(res.Error, "Journal entry")
		}
		if res.RowsAffected == 0 {
			return classify(gorm.ErrRecordNotFound, "Journal entry")
		}
		return nil
	})
}

type balanceRow struct {
	AccountID   *uuid.UUID
	AccountCode string
	AccountName string
	AccountType string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Balances sums lines of posted and reversed entries per account.
// A reversed entry always has a posted mirror, so both are counted.
func (r *GormJournalEntryRepository) Balances(ctx context.Context, from, to *time.Time) ([]accounting.AccountBalance, error) {
	q := r.db.WithContext(ctx).
		Table("journal_entry_lines AS l").
		Select(`l.account_id AS account_id,
			COALESCE(a.code, '') AS account_code,
			COALESCE(a.name, 'Unassigned') AS account_name,
			COALESCE(a.type, '') AS account_type,
			COALESCE(SUM(l.debit), 0) AS debit,
			COALESCE(SUM(l.credit), 0) AS credit`).
		Joins("JOIN journal_entries AS e ON e.id = l.journal_entry_id").
		Joins("LEFT JOIN accounts AS a ON a.id = l.account_id").
		Where("e.status IN ?", []accounting.JournalEntryStatus{
			accounting.JournalEntryStatusPosted,
			accounting.JournalEntryStatusReversed,
		})
	if from != nil {
		q = q.Where("e.entry_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("e.entry_date <= ?", *to)
	}

	var rows []balanceRow
	if err := q.Group("l.account_id, a.code, a.name, a.type").Order("account_code ASC").Scan(&rows).Error; err != nil {
		return nil, classify(err, "Journal entry")
	}

	balances := make([]accounting.AccountBalance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, accounting.AccountBalance{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: accounting.AccountType(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		})
	}
	return balances, nil
}
