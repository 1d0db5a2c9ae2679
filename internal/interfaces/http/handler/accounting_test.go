package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	appacct "github.com/storefront/platform/internal/application/accounting"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountingRouter(t *testing.T) (*gin.Engine, *persistence.Database) {
	t.Helper()
	db := newTestDatabase(t)
	accounts := appacct.NewAccountService(persistence.NewGormAccountRepository(db.DB), nil)
	journal := appacct.NewJournalEntryService(
		persistence.NewGormJournalEntryRepository(db.DB),
		persistence.NewAccountingTransactionScope(db.DB),
		nil, nil,
	)
	h := NewAccountingHandler(accounts, journal)

	r := newTestEngine("accounting")
	g := r.Group("/accounting")
	g.POST("/accounts", h.CreateAccount)
	g.GET("/accounts", h.ListAccounts)
	g.DELETE("/accounts/:id", h.DeleteAccount)
	g.POST("/journal-entries", h.CreateJournalEntry)
	g.GET("/journal-entries", h.ListJournalEntries)
	g.GET("/journal-entries/:id", h.GetJournalEntry)
	g.POST("/journal-entries/:id/post", h.PostJournalEntry)
	g.POST("/journal-entries/:id/reverse", h.ReverseJournalEntry)
	g.DELETE("/journal-entries/:id", h.DeleteJournalEntry)
	g.GET("/reports/profit-loss", h.ProfitAndLoss)
	g.GET("/reports/balance-sheet", h.BalanceSheet)
	return r, db
}

func cashSaleEntry() map[string]any {
	return map[string]any{
		"description": "Cash sale",
		"entries": []map[string]any{
			{"account": "1000", "debit": "100.00", "credit": "0"},
			{"account": "4000", "debit": "0", "credit": "100.00"},
		},
	}
}

func TestAccountingHandler_CreateJournalEntry(t *testing.T) {
	r, _ := newAccountingRouter(t)

	w, env := perform(t, r, http.MethodPost, "/accounting/journal-entries", cashSaleEntry())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := decodeData[appacct.JournalEntryResponse](t, env)
	assert.Regexp(t, `^JE-\d+-[A-Z0-9]{4}$`, entry.EntryNumber)
	assert.Equal(t, "draft", entry.Status)
	assert.Len(t, entry.Lines, 2)
	assert.Equal(t, "100", entry.TotalDebit.String())
}

func TestAccountingHandler_UnbalancedEntryPersistsNothing(t *testing.T) {
	r, db := newAccountingRouter(t)

	body := map[string]any{
		"description": "Broken",
		"entries": []map[string]any{
			{"account": "1000", "debit": "100.00"},
			{"account": "4000", "credit": "99.50"},
		},
	}
	w, env := perform(t, r, http.MethodPost, "/accounting/journal-entries", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "accounting", env.Service)

	var headers, lines int64
	require.NoError(t, db.DB.Table("journal_entries").Count(&headers).Error)
	require.NoError(t, db.DB.Table("journal_entry_lines").Count(&lines).Error)
	assert.Zero(t, headers)
	assert.Zero(t, lines)
}

func TestAccountingHandler_RejectsSingleLine(t *testing.T) {
	r, _ := newAccountingRouter(t)

	body := map[string]any{
		"description": "One line",
		"entries":     []map[string]any{{"account": "1000", "debit": "10"}},
	}
	w, env := perform(t, r, http.MethodPost, "/accounting/journal-entries", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
}

func TestAccountingHandler_PostAndReverse(t *testing.T) {
	r, _ := newAccountingRouter(t)

	_, env := perform(t, r, http.MethodPost, "/accounting/journal-entries", cashSaleEntry())
	entry := decodeData[appacct.JournalEntryResponse](t, env)
	path := "/accounting/journal-entries/" + entry.ID.String()

	w, _ := perform(t, r, http.MethodPost, path+"/reverse", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "drafts cannot be reversed")

	w, env = perform(t, r, http.MethodPost, path+"/post", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "posted", decodeData[appacct.JournalEntryResponse](t, env).Status)

	w, _ = perform(t, r, http.MethodPost, path+"/post", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = perform(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "posted entries cannot be deleted")

	w, env = perform(t, r, http.MethodPost, path+"/reverse", map[string]string{"reason": "duplicate"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decodeData[appacct.ReverseResult](t, env)
	assert.Equal(t, "reversed", result.Original.Status)
	assert.Equal(t, "posted", result.Reversal.Status)
	require.NotNil(t, result.Reversal.ReversalOf)
	assert.Equal(t, entry.ID, *result.Reversal.ReversalOf)

	w, env = perform(t, r, http.MethodGet, "/accounting/journal-entries?status=posted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), *env.Count)

	w, _ = perform(t, r, http.MethodGet, "/accounting/journal-entries?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountingHandler_ProfitAndLoss(t *testing.T) {
	r, _ := newAccountingRouter(t)

	for _, acct := range []map[string]string{
		{"code": "1000", "name": "Cash", "type": "Asset"},
		{"code": "4000", "name": "Sales", "type": "Revenue"},
	} {
		w, _ := perform(t, r, http.MethodPost, "/accounting/accounts", acct)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w, _ := perform(t, r, http.MethodPost, "/accounting/accounts", map[string]string{"code": "1000", "name": "Dup", "type": "Asset"})
	assert.Equal(t, http.StatusConflict, w.Code)

	_, env := perform(t, r, http.MethodPost, "/accounting/journal-entries", cashSaleEntry())
	entry := decodeData[appacct.JournalEntryResponse](t, env)
	perform(t, r, http.MethodPost, "/accounting/journal-entries/"+entry.ID.String()+"/post", nil)

	w, env = perform(t, r, http.MethodGet, "/accounting/reports/profit-loss", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pl := decodeData[appacct.ProfitAndLossResponse](t, env)
	assert.Equal(t, "100", pl.TotalRevenue.String())
	assert.Equal(t, "100", pl.NetProfit.String())

	w, env = perform(t, r, http.MethodGet, "/accounting/reports/balance-sheet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeData[appacct.BalanceSheetResponse](t, env).Balanced)

	w, _ = perform(t, r, http.MethodGet, "/accounting/reports/profit-loss?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = perform(t, r, http.MethodGet, "/accounting/accounts?type=revenue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), *env.Count)
}
