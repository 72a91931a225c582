// Package aggregate groups folded balances by category and by the
// classification tags/heuristics statements need for their sub-groupings.
package aggregate

import (
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/dictionary"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// Aggregator sums folded balances into the buckets statements are built
// from. Classification prefers the explicit subcategory tag on the account;
// the name-substring heuristics are a logged fallback for unlabeled data.
type Aggregator struct {
	log *slog.Logger
}

// New constructs an aggregator. A nil logger disables fallback logging.
func New(log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{log: log}
}

// SumByCategory totals the balances of every account in one category.
func (g *Aggregator) SumByCategory(reg *registry.Registry, balances map[string]ledger.FoldedBalance, c ledger.Category) decimal.Decimal {
	total := decimal.Zero
	for _, a := range reg.ByCategory(c) {
		total = total.Add(balances[a.Code].Balance)
	}
	return total
}

// SumByPattern totals the balances of accounts whose name contains substr
// (case-insensitive).
func (g *Aggregator) SumByPattern(reg *registry.Registry, balances map[string]ledger.FoldedBalance, substr string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range reg.ByNamePattern(substr, true) {
		total = total.Add(balances[a.Code].Balance)
	}
	return total
}

// AssetSplit buckets asset balances for the balance sheet.
type AssetSplit struct {
	Current decimal.Decimal
	Fixed   decimal.Decimal
	Other   decimal.Decimal
}

// Total returns the sum of all three buckets.
func (s AssetSplit) Total() decimal.Decimal {
	return s.Current.Add(s.Fixed).Add(s.Other)
}

// SplitAssets buckets every asset account into current/fixed/other. Accounts
// matching no pattern land in Other; nothing is dropped.
func (g *Aggregator) SplitAssets(reg *registry.Registry, balances map[string]ledger.FoldedBalance) AssetSplit {
	var split AssetSplit
	for _, a := range reg.ByCategory(ledger.CategoryAssets) {
		b := balances[a.Code].Balance
		switch g.AssetSubcategoryOf(a) {
		case ledger.SubcategoryCurrentAsset:
			split.Current = split.Current.Add(b)
		case ledger.SubcategoryFixedAsset:
			split.Fixed = split.Fixed.Add(b)
		default:
			split.Other = split.Other.Add(b)
		}
	}
	return split
}

// LiabilitySplit buckets liability balances for the balance sheet.
type LiabilitySplit struct {
	Current  decimal.Decimal
	LongTerm decimal.Decimal
}

// Total returns the sum of both buckets.
func (s LiabilitySplit) Total() decimal.Decimal {
	return s.Current.Add(s.LongTerm)
}

// SplitLiabilities buckets every liability account into current/long-term.
func (g *Aggregator) SplitLiabilities(reg *registry.Registry, balances map[string]ledger.FoldedBalance) LiabilitySplit {
	var split LiabilitySplit
	for _, a := range reg.ByCategory(ledger.CategoryLiabilities) {
		b := balances[a.Code].Balance
		if g.LiabilitySubcategoryOf(a) == ledger.SubcategoryLongTermLiability {
			split.LongTerm = split.LongTerm.Add(b)
		} else {
			split.Current = split.Current.Add(b)
		}
	}
	return split
}

// AssetSubcategoryOf resolves the asset classification for one account:
// explicit tag first, name heuristic as fallback.
func (g *Aggregator) AssetSubcategoryOf(a ledger.Account) ledger.Subcategory {
	switch a.Subcategory {
	case ledger.SubcategoryCurrentAsset, ledger.SubcategoryFixedAsset, ledger.SubcategoryOtherAsset:
		return a.Subcategory
	}
	sub := dictionary.AssetSubcategory(a.Name)
	g.log.Debug("subcategory heuristic fallback", "account", a.Code, "name", a.Name, "resolved", string(sub))
	return sub
}

// LiabilitySubcategoryOf resolves the liability classification for one account.
func (g *Aggregator) LiabilitySubcategoryOf(a ledger.Account) ledger.Subcategory {
	switch a.Subcategory {
	case ledger.SubcategoryCurrentLiability, ledger.SubcategoryLongTermLiability:
		return a.Subcategory
	}
	sub := dictionary.LiabilitySubcategory(a.Name)
	g.log.Debug("subcategory heuristic fallback", "account", a.Code, "name", a.Name, "resolved", string(sub))
	return sub
}

// CashFlowLineOf maps an account onto the cash-flow line it feeds.
func (g *Aggregator) CashFlowLineOf(a ledger.Account) dictionary.LineKind {
	return dictionary.CashFlowLine(a.Name)
}

// IsCashLike reports whether the account behaves like cash for the cash-flow
// and reconciliation views.
func (g *Aggregator) IsCashLike(a ledger.Account) bool {
	if a.Subcategory == ledger.SubcategoryCurrentAsset && strings.Contains(strings.ToLower(a.Name), "cash") {
		return true
	}
	return a.Category == ledger.CategoryAssets && dictionary.IsCashLike(a.Name)
}
