package statement

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/dictionary"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// CashFlowLine is one named flow on the cash flow statement. Amount is
// signed from the cash perspective: positive means cash in.
type CashFlowLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowActivity groups the lines of one activity with its subtotal.
type CashFlowActivity struct {
	Label string          `json:"label"`
	Lines []CashFlowLine  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// CashFlow is the indirect-method cash flow statement.
type CashFlow struct {
	Operating   CashFlowActivity `json:"operating"`
	Investing   CashFlowActivity `json:"investing"`
	Financing   CashFlowActivity `json:"financing"`
	NetCashFlow decimal.Decimal  `json:"net_cash_flow"`
}

func (a *CashFlowActivity) addLine(label string, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	a.Lines = append(a.Lines, CashFlowLine{Label: label, Amount: amount})
	a.Total = a.Total.Add(amount)
}

// BuildCashFlow derives the cash flow statement from one folded balance map.
// With a single period the working-capital deltas are the period balances
// themselves (delta from a zero baseline).
func BuildCashFlow(reg *registry.Registry, balances map[string]ledger.FoldedBalance, agg *aggregate.Aggregator, netIncome decimal.Decimal) CashFlow {
	cf := CashFlow{
		Operating: CashFlowActivity{Label: "Operating Activities"},
		Investing: CashFlowActivity{Label: "Investing Activities"},
		Financing: CashFlowActivity{Label: "Financing Activities"},
	}

	cf.Operating.addLine("Net Income", netIncome)

	// Depreciation and amortization add back: non-cash expense.
	depreciation := decimal.Zero
	for _, a := range reg.ByCategory(ledger.CategoryExpense) {
		if agg.CashFlowLineOf(a) == dictionary.LineDepreciation {
			depreciation = depreciation.Add(balances[a.Code].Balance)
		}
	}
	cf.Operating.addLine("Depreciation & Amortization", depreciation)

	// Working capital: growing receivables consume cash, growing payables
	// and other current obligations free it.
	receivables := decimal.Zero
	for _, a := range reg.ByCategory(ledger.CategoryAssets) {
		if agg.CashFlowLineOf(a) == dictionary.LineReceivables {
			receivables = receivables.Add(balances[a.Code].Balance)
		}
	}
	cf.Operating.addLine("Change in Receivables", receivables.Neg())

	liabilityLines := []struct {
		kind  dictionary.LineKind
		label string
	}{
		{dictionary.LinePayables, "Change in Payables"},
		{dictionary.LineAccrued, "Change in Accrued Liabilities"},
		{dictionary.LineDeferred, "Change in Deferred Revenue"},
		{dictionary.LinePayroll, "Change in Payroll Liabilities"},
		{dictionary.LineTax, "Change in Tax Liabilities"},
	}
	ltBorrowing := decimal.Zero
	for _, spec := range liabilityLines {
		total := decimal.Zero
		for _, a := range reg.ByCategory(ledger.CategoryLiabilities) {
			if agg.LiabilitySubcategoryOf(a) == ledger.SubcategoryLongTermLiability {
				continue
			}
			if agg.CashFlowLineOf(a) == spec.kind {
				total = total.Add(balances[a.Code].Balance)
			}
		}
		cf.Operating.addLine(spec.label, total)
	}
	for _, a := range reg.ByCategory(ledger.CategoryLiabilities) {
		if agg.LiabilitySubcategoryOf(a) == ledger.SubcategoryLongTermLiability {
			ltBorrowing = ltBorrowing.Add(balances[a.Code].Balance)
		}
	}

	// Investing: spend on fixed assets and investments.
	capex := decimal.Zero
	investments := decimal.Zero
	for _, a := range reg.ByCategory(ledger.CategoryAssets) {
		switch {
		case agg.CashFlowLineOf(a) == dictionary.LineDepreciation:
			// Accumulated depreciation is the add-back's contra, not spend.
		case agg.CashFlowLineOf(a) == dictionary.LineInvestment:
			investments = investments.Add(balances[a.Code].Balance)
		case agg.AssetSubcategoryOf(a) == ledger.SubcategoryFixedAsset:
			capex = capex.Add(balances[a.Code].Balance)
		}
	}
	cf.Investing.addLine("Capital Expenditures", capex.Neg())
	cf.Investing.addLine("Purchases of Investments", investments.Neg())

	// Financing: owner contributions, stock issuance, long-term borrowing.
	contributions := decimal.Zero
	stock := decimal.Zero
	for _, a := range reg.ByCategory(ledger.CategoryEquity) {
		switch agg.CashFlowLineOf(a) {
		case dictionary.LineContribution:
			contributions = contributions.Add(balances[a.Code].Balance)
		case dictionary.LineStock:
			stock = stock.Add(balances[a.Code].Balance)
		}
	}
	cf.Financing.addLine("Owner Contributions", contributions)
	cf.Financing.addLine("Stock Issuance", stock)
	cf.Financing.addLine("Long-Term Borrowing", ltBorrowing)

	cf.NetCashFlow = cf.Operating.Total.Add(cf.Investing.Total).Add(cf.Financing.Total)
	return cf
}
