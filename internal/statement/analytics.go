package statement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// ShareLine is an account amount with its share of the section total.
type ShareLine struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Share  float64         `json:"share"`
}

// ActivityLine ranks an account by gross posting volume, both sides summed.
type ActivityLine struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Debits   decimal.Decimal `json:"debits"`
	Credits  decimal.Decimal `json:"credits"`
	Activity decimal.Decimal `json:"activity"`
}

// Analytics is the advanced-analytics panel: spending and revenue
// composition plus the most active accounts, all from the same fold as
// every other view.
type Analytics struct {
	ExpenseBreakdown []ShareLine      `json:"expense_breakdown"`
	RevenueMix       []ShareLine      `json:"revenue_mix"`
	TopAccounts      []ActivityLine   `json:"top_accounts"`
	OperatingRatio   float64          `json:"operating_ratio"`
	Summary          ExecutiveSummary `json:"summary"`
}

const topAccountsLimit = 10

// BuildAnalytics derives the analytics panel from one folded balance map.
func BuildAnalytics(reg *registry.Registry, balances map[string]ledger.FoldedBalance, agg *aggregate.Aggregator) Analytics {
	a := Analytics{
		Summary: BuildExecutiveSummary(reg, balances, agg),
	}

	a.ExpenseBreakdown = shareLines(reg.ByCategory(ledger.CategoryExpense), balances)
	a.RevenueMix = shareLines(reg.ByCategory(ledger.CategoryRevenue), balances)
	a.OperatingRatio = ratio(a.Summary.Revenue.Sub(a.Summary.NetIncome), a.Summary.Revenue)

	for _, acc := range reg.Accounts() {
		b := balances[acc.Code]
		activity := b.Debits.Add(b.Credits)
		if activity.IsZero() {
			continue
		}
		a.TopAccounts = append(a.TopAccounts, ActivityLine{
			Code:     acc.Code,
			Name:     acc.Name,
			Debits:   b.Debits,
			Credits:  b.Credits,
			Activity: activity,
		})
	}
	sort.SliceStable(a.TopAccounts, func(i, j int) bool {
		return a.TopAccounts[i].Activity.GreaterThan(a.TopAccounts[j].Activity)
	})
	if len(a.TopAccounts) > topAccountsLimit {
		a.TopAccounts = a.TopAccounts[:topAccountsLimit]
	}
	return a
}

func shareLines(accounts []ledger.Account, balances map[string]ledger.FoldedBalance) []ShareLine {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(balances[acc.Code].Balance)
	}
	out := make([]ShareLine, 0, len(accounts))
	for _, acc := range accounts {
		b := balances[acc.Code].Balance
		if b.IsZero() {
			continue
		}
		out = append(out, ShareLine{Code: acc.Code, Name: acc.Name, Amount: b, Share: ratio(b, total)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	return out
}
