package accounting

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJournalFixture() (*JournalEntryService, *MockAccountRepository, *MockJournalEntryRepository, *recordingPublisher) {
	accounts := new(MockAccountRepository)
	entries := new(MockJournalEntryRepository)
	pub := &recordingPublisher{}
	svc := NewJournalEntryService(entries, &stubScope{accounts: accounts, entries: entries}, pub, nil)
	return svc, accounts, entries, pub
}

func balancedRequest() CreateJournalEntryRequest {
	return CreateJournalEntryRequest{
		Description: "Cash sale",
		Entries: []JournalLineRequest{
			{Account: "1000", Debit: decimal.NewFromInt(500)},
			{Account: "Sales", Credit: decimal.NewFromInt(500)},
		},
	}
}

func TestJournalEntryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves accounts and persists a draft", func(t *testing.T) {
		svc, accounts, entries, pub := newJournalFixture()
		cash, _ := accounting.NewAccount("1000", "Cash", accounting.AccountTypeAsset)
		accounts.On("FindByReference", ctx, "1000").Return(cash, nil)
		accounts.On("FindByReference", ctx, "Sales").Return(nil, shared.NewNotFoundError("Account"))
		entries.On("Create", ctx, mock.AnythingOfType("*accounting.JournalEntry")).Return(nil)

		resp, err := svc.Create(ctx, balancedRequest())
		require.NoError(t, err)

		assert.Equal(t, "draft", resp.Status)
		assert.Regexp(t, regexp.MustCompile(`^JE-\d+-[A-Z0-9]{4}$`), resp.EntryNumber)
		require.Len(t, resp.Lines, 2)
		assert.Equal(t, &cash.ID, resp.Lines[0].AccountID)
		assert.Nil(t, resp.Lines[1].AccountID)
		require.Len(t, pub.events, 1)
		assert.Equal(t, accounting.EventTypeJournalEntryCreated, pub.events[0].EventType())
	})

	t.Run("unbalanced entry persists nothing", func(t *testing.T) {
		svc, _, entries, _ := newJournalFixture()
		req := balancedRequest()
		req.Entries[1].Credit = decimal.NewFromFloat(499.98)

		_, err := svc.Create(ctx, req)
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
		entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("within tolerance is accepted", func(t *testing.T) {
		svc, accounts, entries, _ := newJournalFixture()
		accounts.On("FindByReference", ctx, mock.Anything).Return(nil, shared.NewNotFoundError("Account"))
		entries.On("Create", ctx, mock.Anything).Return(nil)
		req := balancedRequest()
		req.Entries[1].Credit = decimal.NewFromFloat(499.995)

		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		svc, accounts, entries, pub := newJournalFixture()
		accounts.On("FindByReference", ctx, mock.Anything).Return(nil, shared.NewNotFoundError("Account"))
		entries.On("Create", ctx, mock.Anything).Return(shared.NewUpstreamError("database operation failed", assert.AnError))

		_, err := svc.Create(ctx, balancedRequest())
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindUpstream))
		assert.Empty(t, pub.events)
	})
}

func draftEntry(t *testing.T) *accounting.JournalEntry {
	t.Helper()
	e, err := accounting.NewJournalEntry("Rent", "", time.Now(), []accounting.LineInput{
		{Account: "Rent", Debit: decimal.NewFromInt(100)},
		{Account: "Cash", Credit: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)
	e.ClearDomainEvents()
	return e
}

func TestJournalEntryService_PostAndReverse(t *testing.T) {
	ctx := context.Background()

	t.Run("post draft", func(t *testing.T) {
		svc, _, entries, _ := newJournalFixture()
		e := draftEntry(t)
		entries.On("FindByID", ctx, e.ID).Return(e, nil)
		entries.On("UpdateStatus", ctx, e).Return(nil)

		resp, err := svc.Post(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "posted", resp.Status)
		assert.NotNil(t, resp.PostedAt)
	})

	t.Run("post twice is an invalid state", func(t *testing.T) {
		svc, _, entries, _ := newJournalFixture()
		e := draftEntry(t)
		require.NoError(t, e.Post())
		entries.On("FindByID", ctx, e.ID).Return(e, nil)

		_, err := svc.Post(ctx, e.ID)
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindInvalidState))
		entries.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("reverse creates posted mirror", func(t *testing.T) {
		svc, _, entries, _ := newJournalFixture()
		e := draftEntry(t)
		require.NoError(t, e.Post())
		entries.On("FindByID", ctx, e.ID).Return(e, nil)
		entries.On("UpdateStatus", ctx, e).Return(nil)
		entries.On("Create", ctx, mock.AnythingOfType("*accounting.JournalEntry")).Return(nil)

		result, err := svc.Reverse(ctx, e.ID, "duplicate")
		require.NoError(t, err)
		assert.Equal(t, "reversed", result.Original.Status)
		assert.Equal(t, "posted", result.Reversal.Status)
		assert.Equal(t, &e.ID, result.Reversal.ReversalOf)
		assert.True(t, result.Reversal.Lines[0].Credit.Equal(decimal.NewFromInt(100)))
	})

	t.Run("delete refuses posted entries", func(t *testing.T) {
		svc, _, entries, _ := newJournalFixture()
		e := draftEntry(t)
		require.NoError(t, e.Post())
		entries.On("FindByID", ctx, e.ID).Return(e, nil)

		err := svc.Delete(ctx, e.ID)
		require.Error(t, err)
		entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestJournalEntryService_Reports(t *testing.T) {
	ctx := context.Background()
	svc, _, entries, _ := newJournalFixture()
	cash, rev, exp := uuid.New(), uuid.New(), uuid.New()
	balances := []accounting.AccountBalance{
		{AccountID: &cash, AccountCode: "1000", AccountName: "Cash", AccountType: accounting.AccountTypeAsset, Debit: decimal.NewFromInt(1000), Credit: decimal.NewFromInt(300)},
		{AccountID: &rev, AccountCode: "4000", AccountName: "Sales", AccountType: accounting.AccountTypeRevenue, Credit: decimal.NewFromInt(1000)},
		{AccountID: &exp, AccountCode: "5000", AccountName: "Rent", AccountType: accounting.AccountTypeExpense, Debit: decimal.NewFromInt(300)},
	}
	entries.On("Balances", ctx, mock.Anything, mock.Anything).Return(balances, nil)

	pl, err := svc.ProfitAndLoss(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, pl.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, pl.TotalExpenses.Equal(decimal.NewFromInt(300)))
	assert.True(t, pl.NetProfit.Equal(decimal.NewFromInt(700)))

	bs, err := svc.BalanceSheet(ctx, nil)
	require.NoError(t, err)
	assert.True(t, bs.TotalAssets.Equal(decimal.NewFromInt(700)))
	assert.True(t, bs.RetainedEarnings.Equal(decimal.NewFromInt(700)))
	assert.True(t, bs.Balanced)

	tb, err := svc.TrialBalance(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tb.Lines, 3)
	assert.True(t, tb.Balanced)
}
