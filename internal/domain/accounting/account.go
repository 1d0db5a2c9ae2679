package accounting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
)

// AccountType classifies a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// IsValid checks if the type is one of the five account classes
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account grows with debits
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// ParseAccountType accepts any casing of the account class names
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range []AccountType{AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense} {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", shared.NewValidationError("INVALID_ACCOUNT_TYPE", "Account type must be one of Asset, Liability, Equity, Revenue, Expense")
}

// Account is a chart-of-accounts entry
type Account struct {
	shared.BaseAggregateRoot
	Code        string      `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name        string      `gorm:"type:varchar(200);not null"`
	Type        AccountType `gorm:"type:varchar(20);not null;index"`
	Description string      `gorm:"type:text"`
	IsActive    bool        `gorm:"not null;default:true"`
	ParentID    *uuid.UUID  `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates an active account
func NewAccount(code, name string, accountType AccountType) (*Account, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Account code cannot be empty")
	}
	if len(code) > 32 {
		return nil, shared.NewValidationError("INVALID_CODE", "Account code cannot exceed 32 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewValidationError("INVALID_ACCOUNT_TYPE", "Invalid account type")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		Type:              accountType,
		IsActive:          true,
	}, nil
}

// Update overwrites the mutable fields. The code is immutable once lines
// may reference it, so only name, type, description and activity change.
func (a *Account) Update(name, description string, accountType AccountType, active bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return shared.NewValidationError("INVALID_ACCOUNT_TYPE", "Invalid account type")
	}
	a.Name = strings.TrimSpace(name)
	a.Description = description
	a.Type = accountType
	a.IsActive = active
	a.UpdatedAt = time.Now()
	return nil
}

// SetParent links the account under another account
func (a *Account) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == a.ID {
		return shared.NewValidationError("INVALID_PARENT", "Account cannot be its own parent")
	}
	a.ParentID = parentID
	a.UpdatedAt = time.Now()
	return nil
}

// Matches reports whether a free-text account reference names this account
func (a *Account) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	return strings.EqualFold(a.Code, ref) || strings.EqualFold(a.Name, ref)
}
