// Package registry holds the chart of accounts for one dashboard session.
// Accounts are loaded once from the external feed and are append-only
// afterwards; there is no removal operation.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
)

// Registry is a code-keyed chart of accounts. All methods are safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byCode map[string]ledger.Account
	codes  []string // sorted, for deterministic iteration
}

// New builds a registry from the feed's account rows and synthesizes
// placeholders for the well-known codes the feed may omit, so downstream
// consumers never fail to find them.
func New(accounts []ledger.Account) (*Registry, error) {
	r := &Registry{byCode: make(map[string]ledger.Account, len(accounts))}
	for _, a := range accounts {
		if err := r.add(a); err != nil {
			return nil, err
		}
	}
	r.ensureWellKnown()
	return r, nil
}

// Add appends a new account. Codes are unique; re-adding an existing code
// fails with errs.ErrDuplicateCode.
func (r *Registry) Add(a ledger.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(a)
}

func (r *Registry) add(a ledger.Account) error {
	if a.Code == "" {
		return fmt.Errorf("account code required: %w", errs.ErrInvalid)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("account %s: invalid category %q: %w", a.Code, a.Category, errs.ErrInvalid)
	}
	if a.NormalBalance != ledger.SideDebit && a.NormalBalance != ledger.SideCredit {
		a.NormalBalance = a.Category.NormalSide()
	}
	if existing, ok := r.byCode[a.Code]; ok {
		// A real feed row replaces a synthesized placeholder; anything else
		// is a duplicate.
		if !existing.Placeholder {
			return fmt.Errorf("account %s: %w", a.Code, errs.ErrDuplicateCode)
		}
		r.byCode[a.Code] = a
		return nil
	}
	r.byCode[a.Code] = a
	i := sort.SearchStrings(r.codes, a.Code)
	r.codes = append(r.codes, "")
	copy(r.codes[i+1:], r.codes[i:])
	r.codes[i] = a.Code
	return nil
}

// ensureWellKnown synthesizes zero-balance placeholder entries for the
// deferred-revenue accounts and the Current Year Earnings equity account.
func (r *Registry) ensureWellKnown() {
	for code, name := range ledger.DeferredRevenueCodes {
		if _, ok := r.byCode[code]; ok {
			continue
		}
		_ = r.add(ledger.Account{
			Code:          code,
			Name:          name,
			Category:      ledger.CategoryLiabilities,
			NormalBalance: ledger.SideCredit,
			Subcategory:   ledger.SubcategoryCurrentLiability,
			Placeholder:   true,
		})
	}
	if _, ok := r.byCode[ledger.CodeCurrentYearEarnings]; !ok {
		_ = r.add(ledger.Account{
			Code:          ledger.CodeCurrentYearEarnings,
			Name:          "Current Year Earnings",
			Category:      ledger.CategoryEquity,
			NormalBalance: ledger.SideCredit,
			Placeholder:   true,
		})
	}
}

// Lookup returns the account for a code.
func (r *Registry) Lookup(code string) (ledger.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byCode[code]
	return a, ok
}

// Accounts returns all accounts in code order.
func (r *Registry) Accounts() []ledger.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ledger.Account, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, r.byCode[code])
	}
	return out
}

// ByCategory returns the accounts of one category in code order.
func (r *Registry) ByCategory(c ledger.Category) []ledger.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ledger.Account, 0)
	for _, code := range r.codes {
		if a := r.byCode[code]; a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

// ByNamePattern returns accounts whose name contains substr.
func (r *Registry) ByNamePattern(substr string, caseInsensitive bool) []ledger.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if caseInsensitive {
		substr = strings.ToLower(substr)
	}
	out := make([]ledger.Account, 0)
	for _, code := range r.codes {
		a := r.byCode[code]
		name := a.Name
		if caseInsensitive {
			name = strings.ToLower(name)
		}
		if strings.Contains(name, substr) {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of registered accounts, placeholders included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}
