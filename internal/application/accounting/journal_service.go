package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JournalEntryService records and reports on double-entry journal entries
type JournalEntryService struct {
	entryRepo accounting.JournalEntryRepository
	txScope   TransactionScope
	events    shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewJournalEntryService creates a new JournalEntryService. events may be nil.
func NewJournalEntryService(
	entryRepo accounting.JournalEntryRepository,
	txScope TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *JournalEntryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalEntryService{
		entryRepo: entryRepo,
		txScope:   txScope,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates and records a draft entry. Lines are matched to accounts
// by code or name; unmatched lines keep only the submitted text. Header and
// lines are written in one transaction.
func (s *JournalEntryService) Create(ctx context.Context, req CreateJournalEntryRequest) (*JournalEntryResponse, error) {
	inputs := make([]accounting.LineInput, 0, len(req.Entries))
	for _, l := range req.Entries {
		inputs = append(inputs, accounting.LineInput{
			Account:     l.Account,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	entry, err := accounting.NewJournalEntry(req.Description, req.Reference, date, inputs)
	if err != nil {
		logger.With(ctx, s.logger).Warn("Journal entry rejected", zap.String("kind", string(shared.KindOf(err))), zap.Error(err))
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for i := range entry.Lines {
			account, err := repos.Accounts().FindByReference(ctx, entry.Lines[i].Account)
			if err != nil {
				if shared.IsKind(err, shared.KindNotFound) {
					continue
				}
				return err
			}
			entry.Lines[i].AccountID = &account.ID
		}
		return repos.JournalEntries().Create(ctx, entry)
	})
	if err != nil {
		logger.With(ctx, s.logger).Error("Failed to create journal entry", zap.String("kind", string(shared.KindOf(err))), zap.Error(err))
		return nil, err
	}

	s.publish(ctx, entry)
	logger.With(ctx, s.logger).Info("Journal entry created",
		zap.String("entry_number", entry.EntryNumber),
		zap.String("total", entry.TotalDebit.StringFixed(2)))

	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// GetByID returns an entry with its lines
func (s *JournalEntryService) GetByID(ctx context.Context, id uuid.UUID) (*JournalEntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// List returns entries matching the filter
func (s *JournalEntryService) List(ctx context.Context, filter accounting.JournalEntryFilter) ([]JournalEntryResponse, error) {
	entries, err := s.entryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]JournalEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToJournalEntryResponse(&entries[i]))
	}
	return out, nil
}

// Post moves a draft entry to posted
func (s *JournalEntryService) Post(ctx context.Context, id uuid.UUID) (*JournalEntryResponse, error) {
	var entry *accounting.JournalEntry
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, err = repos.JournalEntries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := entry.Post(); err != nil {
			return err
		}
		return repos.JournalEntries().UpdateStatus(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, entry)
	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// Reverse marks a posted entry reversed and records its posted mirror in
// the same transaction.
func (s *JournalEntryService) Reverse(ctx context.Context, id uuid.UUID, reason string) (*ReverseResult, error) {
	var original, mirror *accounting.JournalEntry
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		original, err = repos.JournalEntries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		mirror, err = original.Reverse(reason)
		if err != nil {
			return err
		}
		if err := repos.JournalEntries().UpdateStatus(ctx, original); err != nil {
			return err
		}
		return repos.JournalEntries().Create(ctx, mirror)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, original)
	s.publish(ctx, mirror)
	logger.With(ctx, s.logger).Info("Journal entry reversed",
		zap.String("entry_number", original.EntryNumber),
		zap.String("reversal", mirror.EntryNumber))

	return &ReverseResult{
		Original: ToJournalEntryResponse(original),
		Reversal: ToJournalEntryResponse(mirror),
	}, nil
}

// Delete removes a draft entry and its lines
func (s *JournalEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !entry.CanDelete() {
		return shared.NewInvalidStateError("Only draft entries can be deleted, entry is " + string(entry.Status))
	}
	return s.entryRepo.Delete(ctx, id)
}

// ProfitAndLoss reports revenue against expenses for posted entries in range
func (s *JournalEntryService) ProfitAndLoss(ctx context.Context, from, to *time.Time) (*ProfitAndLossResponse, error) {
	balances, err := s.entryRepo.Balances(ctx, from, to)
	if err != nil {
		return nil, err
	}
	report := accounting.BuildProfitAndLoss(balances, from, to)
	return &ProfitAndLossResponse{
		From:          report.From,
		To:            report.To,
		Revenue:       toReportLines(report.Revenue),
		Expenses:      toReportLines(report.Expenses),
		TotalRevenue:  report.TotalRevenue,
		TotalExpenses: report.TotalExpenses,
		NetProfit:     report.NetProfit,
	}, nil
}

// BalanceSheet reports the position as of a date. A nil date means now.
func (s *JournalEntryService) BalanceSheet(ctx context.Context, asOf *time.Time) (*BalanceSheetResponse, error) {
	at := s.asOf(asOf)
	balances, err := s.entryRepo.Balances(ctx, nil, &at)
	if err != nil {
		return nil, err
	}
	sheet := accounting.BuildBalanceSheet(balances, at)
	return &BalanceSheetResponse{
		AsOf:             sheet.AsOf,
		Assets:           toReportLines(sheet.Assets),
		Liabilities:      toReportLines(sheet.Liabilities),
		Equity:           toReportLines(sheet.Equity),
		TotalAssets:      sheet.TotalAssets,
		TotalLiabilities: sheet.TotalLiabilities,
		TotalEquity:      sheet.TotalEquity,
		RetainedEarnings: sheet.RetainedEarnings,
		Balanced:         sheet.Balanced,
		Unassigned:       UnassignedTotals{Debit: sheet.UnassignedDebit, Credit: sheet.UnassignedCredit},
	}, nil
}

// TrialBalance lists every account's totals as of a date
func (s *JournalEntryService) TrialBalance(ctx context.Context, asOf *time.Time) (*TrialBalanceResponse, error) {
	at := s.asOf(asOf)
	balances, err := s.entryRepo.Balances(ctx, nil, &at)
	if err != nil {
		return nil, err
	}
	tb := accounting.BuildTrialBalance(balances, at)
	lines := make([]TrialBalanceLineResponse, 0, len(tb.Lines))
	for _, l := range tb.Lines {
		lines = append(lines, TrialBalanceLineResponse{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			AccountType: string(l.AccountType),
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	return &TrialBalanceResponse{
		AsOf:        tb.AsOf,
		Lines:       lines,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		Balanced:    tb.Balanced,
	}, nil
}

func (s *JournalEntryService) asOf(t *time.Time) time.Time {
	if t == nil {
		return s.now()
	}
	return *t
}

func (s *JournalEntryService) publish(ctx context.Context, entry *accounting.JournalEntry) {
	events := entry.GetDomainEvents()
	entry.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		logger.With(ctx, s.logger).Warn("Failed to publish journal entry events", zap.Error(err))
	}
}
