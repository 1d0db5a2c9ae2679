package accounting

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportLine is one account's contribution to a report
type ReportLine struct {
	AccountID   uuid.UUID
	AccountCode string
	AccountName string
	Amount      decimal.Decimal
}

// ProfitAndLoss summarises revenue against expenses over a period
type ProfitAndLoss struct {
	From          *time.Time
	To            *time.Time
	Revenue       []ReportLine
	Expenses      []ReportLine
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// BalanceSheet lists the financial position at a point in time
type BalanceSheet struct {
	AsOf             time.Time
	Assets           []ReportLine
	Liabilities      []ReportLine
	Equity           []ReportLine
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	RetainedEarnings decimal.Decimal
	Balanced         bool
	UnassignedDebit  decimal.Decimal
	UnassignedCredit decimal.Decimal
}

// TrialBalanceLine holds raw debit and credit totals for an account
type TrialBalanceLine struct {
	AccountCode string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalance is the list of all account totals
type TrialBalance struct {
	AsOf        time.Time
	Lines       []TrialBalanceLine
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
}

// BuildProfitAndLoss computes revenue and expense totals from balances
func BuildProfitAndLoss(balances []AccountBalance, from, to *time.Time) ProfitAndLoss {
	report := ProfitAndLoss{
		From:          from,
		To:            to,
		Revenue:       []ReportLine{},
		Expenses:      []ReportLine{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, b := range balances {
		if b.AccountID == nil {
			continue
		}
		switch b.AccountType {
		case AccountTypeRevenue:
			report.Revenue = append(report.Revenue, toReportLine(b))
			report.TotalRevenue = report.TotalRevenue.Add(b.Net())
		case AccountTypeExpense:
			report.Expenses = append(report.Expenses, toReportLine(b))
			report.TotalExpenses = report.TotalExpenses.Add(b.Net())
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	sortLines(report.Revenue)
	sortLines(report.Expenses)
	return report
}

// BuildBalanceSheet computes the position as of a date. Net profit to date
// is carried into equity as retained earnings.
func BuildBalanceSheet(balances []AccountBalance, asOf time.Time) BalanceSheet {
	sheet := BalanceSheet{
		AsOf:             asOf,
		Assets:           []ReportLine{},
		Liabilities:      []ReportLine{},
		Equity:           []ReportLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
		UnassignedDebit:  decimal.Zero,
		UnassignedCredit: decimal.Zero,
	}
	for _, b := range balances {
		if b.AccountID == nil {
			sheet.UnassignedDebit = sheet.UnassignedDebit.Add(b.Debit)
			sheet.UnassignedCredit = sheet.UnassignedCredit.Add(b.Credit)
			continue
		}
		switch b.AccountType {
		case AccountTypeAsset:
			sheet.Assets = append(sheet.Assets, toReportLine(b))
			sheet.TotalAssets = sheet.TotalAssets.Add(b.Net())
		case AccountTypeLiability:
			sheet.Liabilities = append(sheet.Liabilities, toReportLine(b))
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(b.Net())
		case AccountTypeEquity:
			sheet.Equity = append(sheet.Equity, toReportLine(b))
			sheet.TotalEquity = sheet.TotalEquity.Add(b.Net())
		case AccountTypeRevenue:
			sheet.RetainedEarnings = sheet.RetainedEarnings.Add(b.Net())
		case AccountTypeExpense:
			sheet.RetainedEarnings = sheet.RetainedEarnings.Sub(b.Net())
		}
	}
	sheet.TotalEquity = sheet.TotalEquity.Add(sheet.RetainedEarnings)
	diff := sheet.TotalAssets.Sub(sheet.TotalLiabilities.Add(sheet.TotalEquity)).Abs()
	sheet.Balanced = diff.LessThanOrEqual(BalanceTolerance)
	sortLines(sheet.Assets)
	sortLines(sheet.Liabilities)
	sortLines(sheet.Equity)
	return sheet
}

// BuildTrialBalance lists every account's debit and credit totals
func BuildTrialBalance(balances []AccountBalance, asOf time.Time) TrialBalance {
	tb := TrialBalance{
		AsOf:        asOf,
		Lines:       make([]TrialBalanceLine, 0, len(balances)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		code, name := b.AccountCode, b.AccountName
		if b.AccountID == nil {
			code, name = "", "Unassigned"
		}
		tb.Lines = append(tb.Lines, TrialBalanceLine{
			AccountCode: code,
			AccountName: name,
			AccountType: b.AccountType,
			Debit:       b.Debit,
			Credit:      b.Credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(b.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(b.Credit)
	}
	sort.Slice(tb.Lines, func(i, j int) bool { return tb.Lines[i].AccountCode < tb.Lines[j].AccountCode })
	tb.Balanced = tb.TotalDebit.Sub(tb.TotalCredit).Abs().LessThanOrEqual(BalanceTolerance)
	return tb
}

func toReportLine(b AccountBalance) ReportLine {
	return ReportLine{
		AccountID:   *b.AccountID,
		AccountCode: b.AccountCode,
		AccountName: b.AccountName,
		Amount:      b.Net(),
	}
}

func sortLines(lines []ReportLine) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].AccountCode < lines[j].AccountCode })
}
