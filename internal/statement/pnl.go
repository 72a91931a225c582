package statement

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// ProfitAndLoss is the income statement view.
type ProfitAndLoss struct {
	Revenue           Section         `json:"revenue"`
	COGS              Section         `json:"cogs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingExpenses Section         `json:"operating_expenses"`
	// OtherIncomeExpense is net on the debit side: positive means net
	// non-operating expense.
	OtherIncomeExpense Section         `json:"other_income_expense"`
	NetIncome          decimal.Decimal `json:"net_income"`
}

// BuildProfitAndLoss derives the P&L from one folded balance map.
//
//	grossProfit = revenue - cogs
//	netIncome   = grossProfit - operatingExpenses - otherIncomeExpense
func BuildProfitAndLoss(reg *registry.Registry, balances map[string]ledger.FoldedBalance, agg *aggregate.Aggregator) ProfitAndLoss {
	pnl := ProfitAndLoss{
		Revenue:            categorySection("Revenue", reg, balances, ledger.CategoryRevenue),
		COGS:               categorySection("Cost of Goods Sold", reg, balances, ledger.CategoryCOGS),
		OperatingExpenses:  categorySection("Operating Expenses", reg, balances, ledger.CategoryExpense),
		OtherIncomeExpense: categorySection("Other Income / Expense", reg, balances, ledger.CategoryOther),
	}
	pnl.GrossProfit = pnl.Revenue.Total.Sub(pnl.COGS.Total)
	pnl.NetIncome = pnl.GrossProfit.Sub(pnl.OperatingExpenses.Total).Sub(pnl.OtherIncomeExpense.Total)
	return pnl
}
