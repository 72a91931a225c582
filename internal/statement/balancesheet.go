package statement

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// BalanceSheet is the statement of financial position. Equity includes the
// period's net income folded into the Current Year Earnings account so the
// accounting identity Assets = Liabilities + Equity holds.
type BalanceSheet struct {
	CurrentAssets       Section         `json:"current_assets"`
	FixedAssets         Section         `json:"fixed_assets"`
	OtherAssets         Section         `json:"other_assets"`
	TotalAssets         decimal.Decimal `json:"total_assets"`
	CurrentLiabilities  Section         `json:"current_liabilities"`
	LongTermLiabilities Section         `json:"long_term_liabilities"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`
	Equity              Section         `json:"equity"`
	TotalEquity         decimal.Decimal `json:"total_equity"`
	// TotalLiabilitiesAndEquity equals TotalAssets within rounding tolerance.
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
}

// BuildBalanceSheet derives the balance sheet from one folded balance map
// and the P&L's net income for the same fold.
func BuildBalanceSheet(reg *registry.Registry, balances map[string]ledger.FoldedBalance, agg *aggregate.Aggregator, netIncome decimal.Decimal) BalanceSheet {
	var current, fixed, other []ledger.Account
	for _, a := range reg.ByCategory(ledger.CategoryAssets) {
		switch agg.AssetSubcategoryOf(a) {
		case ledger.SubcategoryCurrentAsset:
			current = append(current, a)
		case ledger.SubcategoryFixedAsset:
			fixed = append(fixed, a)
		default:
			other = append(other, a)
		}
	}
	var curLiab, ltLiab []ledger.Account
	for _, a := range reg.ByCategory(ledger.CategoryLiabilities) {
		if agg.LiabilitySubcategoryOf(a) == ledger.SubcategoryLongTermLiability {
			ltLiab = append(ltLiab, a)
		} else {
			curLiab = append(curLiab, a)
		}
	}

	bs := BalanceSheet{
		CurrentAssets:       section("Current Assets", current, balances),
		FixedAssets:         section("Fixed Assets", fixed, balances),
		OtherAssets:         section("Other Assets", other, balances),
		CurrentLiabilities:  section("Current Liabilities", curLiab, balances),
		LongTermLiabilities: section("Long-Term Liabilities", ltLiab, balances),
		Equity:              categorySection("Equity", reg, balances, ledger.CategoryEquity),
	}
	bs.TotalAssets = bs.CurrentAssets.Total.Add(bs.FixedAssets.Total).Add(bs.OtherAssets.Total)
	bs.TotalLiabilities = bs.CurrentLiabilities.Total.Add(bs.LongTermLiabilities.Total)

	// Fold the period's net income into Current Year Earnings.
	for i := range bs.Equity.Lines {
		if bs.Equity.Lines[i].Code == ledger.CodeCurrentYearEarnings {
			bs.Equity.Lines[i].Amount = bs.Equity.Lines[i].Amount.Add(netIncome)
		}
	}
	bs.Equity.Total = bs.Equity.Total.Add(netIncome)
	bs.TotalEquity = bs.Equity.Total
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	return bs
}
