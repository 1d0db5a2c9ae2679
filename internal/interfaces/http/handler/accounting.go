package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appacct "github.com/storefront/platform/internal/application/accounting"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/shared"
)

// AccountingHandler serves the chart of accounts, journal entries and reports
type AccountingHandler struct {
	BaseHandler
	accounts *appacct.AccountService
	journal  *appacct.JournalEntryService
}

// NewAccountingHandler creates a new accounting handler
func NewAccountingHandler(accounts *appacct.AccountService, journal *appacct.JournalEntryService) *AccountingHandler {
	return &AccountingHandler{accounts: accounts, journal: journal}
}

// CreateAccount godoc
// @Summary      Open an account
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        request body appacct.CreateAccountRequest true "Account"
// @Success      201 {object} dto.Response{data=appacct.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/accounts [post]
func (h *AccountingHandler) CreateAccount(c *gin.Context) {
	var req appacct.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	account, err := h.accounts.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// ListAccounts godoc
// @Summary      List accounts
// @Tags         accounting
// @Produce      json
// @Param        type   query string false "Account class"
// @Param        active query bool   false "Active flag"
// @Success      200 {object} dto.Response{data=[]appacct.AccountResponse}
// @Security     BearerAuth
// @Router       /accounting/accounts [get]
func (h *AccountingHandler) ListAccounts(c *gin.Context) {
	var filter accounting.AccountFilter
	if raw := c.Query("type"); raw != "" {
		t, err := accounting.ParseAccountType(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		filter.Type = &t
	}
	active, err := queryBool(c, "active")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter.Active = active

	accounts, err := h.accounts.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, accounts, len(accounts))
}

// GetAccount godoc
// @Summary      Get an account
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response{data=appacct.AccountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/accounts/{id} [get]
func (h *AccountingHandler) GetAccount(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	account, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// UpdateAccount godoc
// @Summary      Update an account
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Account ID"
// @Param        request body appacct.UpdateAccountRequest true "Account"
// @Success      200 {object} dto.Response{data=appacct.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/accounts/{id} [put]
func (h *AccountingHandler) UpdateAccount(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appacct.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	account, err := h.accounts.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteAccount godoc
// @Summary      Delete an account
// @Description  Refused while journal lines or child accounts reference it
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/accounts/{id} [delete]
func (h *AccountingHandler) DeleteAccount(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Account deleted")
}

// CreateJournalEntry godoc
// @Summary      Record a journal entry
// @Description  Creates a draft entry. Debits and credits must balance within 0.01.
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        request body appacct.CreateJournalEntryRequest true "Journal entry"
// @Success      201 {object} dto.Response{data=appacct.JournalEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/journal-entries [post]
func (h *AccountingHandler) CreateJournalEntry(c *gin.Context) {
	var req appacct.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	entry, err := h.journal.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListJournalEntries godoc
// @Summary      List journal entries
// @Tags         accounting
// @Produce      json
// @Param        status query string false "draft, posted or reversed"
// @Param        from   query string false "Start date"
// @Param        to     query string false "End date"
// @Success      200 {object} dto.Response{data=[]appacct.JournalEntryResponse}
// @Security     BearerAuth
// @Router       /accounting/journal-entries [get]
func (h *AccountingHandler) ListJournalEntries(c *gin.Context) {
	var filter accounting.JournalEntryFilter
	if raw := c.Query("status"); raw != "" {
		status := accounting.JournalEntryStatus(raw)
		if !status.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_STATUS", "status must be draft, posted or reversed"))
			return
		}
		filter.Status = &status
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}
	filter.From, filter.To = from, to

	entries, err := h.journal.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, entries, len(entries))
}

// GetJournalEntry godoc
// @Summary      Get a journal entry with its lines
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Success      200 {object} dto.Response{data=appacct.JournalEntryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/journal-entries/{id} [get]
func (h *AccountingHandler) GetJournalEntry(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.journal.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// PostJournalEntry godoc
// @Summary      Post a draft journal entry
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Success      200 {object} dto.Response{data=appacct.JournalEntryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/journal-entries/{id}/post [post]
func (h *AccountingHandler) PostJournalEntry(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.journal.Post(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Journal entry posted", entry)
}

// ReverseJournalEntry godoc
// @Summary      Reverse a posted journal entry
// @Description  Marks the entry reversed and books a posted mirror entry
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        id      path string                             true  "Journal entry ID"
// @Param        request body appacct.ReverseJournalEntryRequest false "Reason"
// @Success      200 {object} dto.Response{data=appacct.ReverseResult}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/journal-entries/{id}/reverse [post]
func (h *AccountingHandler) ReverseJournalEntry(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appacct.ReverseJournalEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}
	result, err := h.journal.Reverse(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Journal entry reversed", result)
}

// DeleteJournalEntry godoc
// @Summary      Delete a draft journal entry
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounting/journal-entries/{id} [delete]
func (h *AccountingHandler) DeleteJournalEntry(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.journal.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Journal entry deleted")
}

// ProfitAndLoss godoc
// @Summary      Profit and loss report
// @Tags         accounting
// @Produce      json
// @Param        from query string false "Start date"
// @Param        to   query string false "End date"
// @Success      200 {object} dto.Response{data=appacct.ProfitAndLossResponse}
// @Security     BearerAuth
// @Router       /accounting/reports/profit-loss [get]
func (h *AccountingHandler) ProfitAndLoss(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}
	report, err := h.journal.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// BalanceSheet godoc
// @Summary      Balance sheet
// @Tags         accounting
// @Produce      json
// @Param        asOf query string false "Report date"
// @Success      200 {object} dto.Response{data=appacct.BalanceSheetResponse}
// @Security     BearerAuth
// @Router       /accounting/reports/balance-sheet [get]
func (h *AccountingHandler) BalanceSheet(c *gin.Context) {
	asOf, err := queryTime(c, "asOf")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	report, err := h.journal.BalanceSheet(c.Request.Context(), endOfDay(c, "asOf", asOf))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// TrialBalance godoc
// @Summary      Trial balance
// @Tags         accounting
// @Produce      json
// @Param        asOf query string false "Report date"
// @Success      200 {object} dto.Response{data=appacct.TrialBalanceResponse}
// @Security     BearerAuth
// @Router       /accounting/reports/trial-balance [get]
func (h *AccountingHandler) TrialBalance(c *gin.Context) {
	asOf, err := queryTime(c, "asOf")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	report, err := h.journal.TrialBalance(c.Request.Context(), endOfDay(c, "asOf", asOf))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

func (h *AccountingHandler) dateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	from, err := queryTime(c, "from")
	if err != nil {
		h.HandleError(c, err)
		return nil, nil, false
	}
	to, err = queryTime(c, "to")
	if err != nil {
		h.HandleError(c, err)
		return nil, nil, false
	}
	return from, endOfDay(c, "to", to), true
}
