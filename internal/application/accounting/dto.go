package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/accounting"
)

// CreateAccountRequest represents a request to open a new account
type CreateAccountRequest struct {
	Code        string     `json:"code" binding:"required,max=32"`
	Name        string     `json:"name" binding:"required,max=200"`
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description" binding:"max=2000"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// UpdateAccountRequest represents a request to update an account
type UpdateAccountRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description" binding:"max=2000"`
	IsActive    *bool      `json:"isActive"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	ParentID    *uuid.UUID `json:"parentId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToAccountResponse converts a domain account
func ToAccountResponse(a *accounting.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Type:        string(a.Type),
		Description: a.Description,
		IsActive:    a.IsActive,
		ParentID:    a.ParentID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// JournalLineRequest is one line of a new journal entry
type JournalLineRequest struct {
	Account     string          `json:"account" binding:"required,max=200"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description" binding:"max=500"`
}

// CreateJournalEntryRequest represents a request to record a journal entry
type CreateJournalEntryRequest struct {
	Description string               `json:"description" binding:"required,max=1000"`
	Reference   string               `json:"reference" binding:"max=100"`
	Date        *time.Time           `json:"date"`
	Entries     []JournalLineRequest `json:"entries" binding:"required,min=2,dive"`
}

// ReverseJournalEntryRequest carries an optional reversal reason
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// JournalLineResponse represents a journal line in API responses
type JournalLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	LineNumber  int             `json:"lineNumber"`
	Account     string          `json:"account"`
	AccountID   *uuid.UUID      `json:"accountId"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID          uuid.UUID             `json:"id"`
	EntryNumber string                `json:"entryNumber"`
	EntryDate   time.Time             `json:"entryDate"`
	Description string                `json:"description"`
	Reference   string                `json:"reference"`
	Status      string                `json:"status"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	ReversalOf  *uuid.UUID            `json:"reversalOf,omitempty"`
	PostedAt    *time.Time            `json:"postedAt"`
	ReversedAt  *time.Time            `json:"reversedAt"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ToJournalEntryResponse converts a domain journal entry
func ToJournalEntryResponse(e *accounting.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, JournalLineResponse{
			ID:          l.ID,
			LineNumber:  l.LineNumber,
			Account:     l.Account,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	return JournalEntryResponse{
		ID:          e.ID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Status:      string(e.Status),
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		ReversalOf:  e.ReversalOf,
		PostedAt:    e.PostedAt,
		ReversedAt:  e.ReversedAt,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ReverseResult holds the reversed entry and its posted mirror
type ReverseResult struct {
	Original JournalEntryResponse `json:"original"`
	Reversal JournalEntryResponse `json:"reversal"`
}

// ReportLineResponse is one account row of a financial report
type ReportLineResponse struct {
	AccountID   uuid.UUID       `json:"accountId"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

func toReportLines(lines []accounting.ReportLine) []ReportLineResponse {
	out := make([]ReportLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, ReportLineResponse{
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Amount:      l.Amount,
		})
	}
	return out
}

// ProfitAndLossResponse is the income statement for a period
type ProfitAndLossResponse struct {
	From          *time.Time           `json:"from"`
	To            *time.Time           `json:"to"`
	Revenue       []ReportLineResponse `json:"revenue"`
	Expenses      []ReportLineResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal      `json:"totalRevenue"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses"`
	NetProfit     decimal.Decimal      `json:"netProfit"`
}

// BalanceSheetResponse is the financial position at a date
type BalanceSheetResponse struct {
	AsOf             time.Time            `json:"asOf"`
	Assets           []ReportLineResponse `json:"assets"`
	Liabilities      []ReportLineResponse `json:"liabilities"`
	Equity           []ReportLineResponse `json:"equity"`
	TotalAssets      decimal.Decimal      `json:"totalAssets"`
	TotalLiabilities decimal.Decimal      `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal      `json:"totalEquity"`
	RetainedEarnings decimal.Decimal      `json:"retainedEarnings"`
	Balanced         bool                 `json:"balanced"`
	Unassigned       UnassignedTotals     `json:"unassigned"`
}

// UnassignedTotals sums lines that never resolved to an account
type UnassignedTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceLineResponse is one account's raw totals
type TrialBalanceLineResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse lists all account totals
type TrialBalanceResponse struct {
	AsOf        time.Time                  `json:"asOf"`
	Lines       []TrialBalanceLineResponse `json:"lines"`
	TotalDebit  decimal.Decimal            `json:"totalDebit"`
	TotalCredit decimal.Decimal            `json:"totalCredit"`
	Balanced    bool                       `json:"balanced"`
}
