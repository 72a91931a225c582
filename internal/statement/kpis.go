package statement

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// ExecutiveSummary carries the headline totals and ratios of the dashboard.
// Every ratio guards its denominator: 0 instead of NaN or Inf.
type ExecutiveSummary struct {
	Revenue          decimal.Decimal `json:"revenue"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	NetIncome        decimal.Decimal `json:"net_income"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	NetCashFlow      decimal.Decimal `json:"net_cash_flow"`

	GrossMargin    float64 `json:"gross_margin"`
	NetMargin      float64 `json:"net_margin"`
	CurrentRatio   float64 `json:"current_ratio"`
	ReturnOnAssets float64 `json:"return_on_assets"`
	ReturnOnEquity float64 `json:"return_on_equity"`
}

// BuildExecutiveSummary derives the KPI panel from the same folded balances
// as the three statements, so the numbers can never disagree.
func BuildExecutiveSummary(reg *registry.Registry, balances map[string]ledger.FoldedBalance, agg *aggregate.Aggregator) ExecutiveSummary {
	pnl := BuildProfitAndLoss(reg, balances, agg)
	bs := BuildBalanceSheet(reg, balances, agg, pnl.NetIncome)
	cf := BuildCashFlow(reg, balances, agg, pnl.NetIncome)

	return ExecutiveSummary{
		Revenue:          pnl.Revenue.Total,
		GrossProfit:      pnl.GrossProfit,
		NetIncome:        pnl.NetIncome,
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
		NetCashFlow:      cf.NetCashFlow,

		GrossMargin:    ratio(pnl.GrossProfit, pnl.Revenue.Total),
		NetMargin:      ratio(pnl.NetIncome, pnl.Revenue.Total),
		CurrentRatio:   ratio(bs.TotalAssets, bs.TotalLiabilities),
		ReturnOnAssets: ratio(pnl.NetIncome, bs.TotalAssets),
		ReturnOnEquity: ratio(pnl.NetIncome, bs.TotalEquity),
	}
}
