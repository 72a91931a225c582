// Package statement projects folded balances into the financial views the
// dashboard renders. Every projector is a pure function over one folded
// balance map and the registry, so all views derived from the same ledger
// agree with each other.
package statement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// Line is one account row inside a statement section.
type Line struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Section is a labeled, ordered group of lines with a subtotal.
type Section struct {
	Label string          `json:"label"`
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// section builds a Section from the given accounts, sorted by code.
func section(label string, accounts []ledger.Account, balances map[string]ledger.FoldedBalance) Section {
	s := Section{Label: label, Lines: make([]Line, 0, len(accounts)), Total: decimal.Zero}
	for _, a := range accounts {
		b := balances[a.Code].Balance
		s.Lines = append(s.Lines, Line{Code: a.Code, Name: a.Name, Amount: b})
		s.Total = s.Total.Add(b)
	}
	sort.Slice(s.Lines, func(i, j int) bool { return s.Lines[i].Code < s.Lines[j].Code })
	return s
}

// categorySection builds a Section from every account of one category.
func categorySection(label string, reg *registry.Registry, balances map[string]ledger.FoldedBalance, c ledger.Category) Section {
	return section(label, reg.ByCategory(c), balances)
}

// ratio divides safely: a zero denominator yields 0, never NaN or Inf.
func ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	f, _ := num.Div(den).Float64()
	return f
}
