// Package ingest normalizes the two external feed shapes into the canonical
// internal representations. The folding engine never sees a raw feed record:
// both transaction shapes become ledger.Transaction, so folding has a single
// code path.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/meta"
	"github.com/openbooks/reporting/internal/slug"
)

// Warning flags a feed record that could not be normalized. The record is
// skipped, never guessed at; the caller decides how to surface it.
type Warning struct {
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail"`
}

// ChartRow is one chart-of-accounts record as delivered by the feed.
type ChartRow struct {
	AccountNumber string            `json:"account_number"`
	AccountName   string            `json:"account_name"`
	AccountType   string            `json:"account_type"`
	Category      string            `json:"category"`
	NormalBalance string            `json:"normal_balance"`
	Balance       decimal.Decimal   `json:"balance"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// FlatRow is the legacy flattened transaction shape:
// credit from_account, debit to_account, by the full amount.
type FlatRow struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Description string          `json:"description,omitempty"`
}

// JournalLine is one line of a journal entry, carrying explicit debit and
// credit amounts for its account.
type JournalLine struct {
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntry groups journal lines under a parent entry.
type JournalEntry struct {
	Reference string        `json:"reference"`
	Date      time.Time     `json:"date"`
	EntryType string        `json:"entry_type,omitempty"`
	Lines     []JournalLine `json:"lines"`
}

// Accounts converts chart rows into registry accounts. Rows without an
// account number are skipped with a warning. Subcategory tags arrive in
// metadata and are promoted onto the account after slug normalization.
func Accounts(rows []ChartRow) ([]ledger.Account, []Warning) {
	out := make([]ledger.Account, 0, len(rows))
	warnings := make([]Warning, 0)
	for i, row := range rows {
		if strings.TrimSpace(row.AccountNumber) == "" {
			warnings = append(warnings, Warning{Index: i, Field: "account_number", Detail: "missing account number; row skipped"})
			continue
		}
		category, ok := parseCategory(row.Category)
		if !ok {
			// account_type is the older field; fall back before giving up.
			category, ok = parseCategory(row.AccountType)
		}
		if !ok {
			warnings = append(warnings, Warning{Index: i, Field: "category", Detail: fmt.Sprintf("unknown category %q; row skipped", row.Category)})
			continue
		}
		a := ledger.Account{
			Code:           strings.TrimSpace(row.AccountNumber),
			Name:           strings.TrimSpace(row.AccountName),
			Category:       category,
			NormalBalance:  parseSide(row.NormalBalance, category),
			OpeningBalance: row.Balance,
			Metadata:       meta.New(row.Metadata),
		}
		if tag, ok := a.Metadata.SubcategoryTag(); ok {
			a.Subcategory = parseSubcategory(tag, category)
		}
		out = append(out, a)
	}
	return out, warnings
}

// FlatTransactions normalizes legacy flattened transactions. Amounts are
// unsigned magnitudes; negative amounts violate the convention and are
// rejected rather than silently re-signed.
func FlatTransactions(rows []FlatRow) ([]ledger.Transaction, []Warning) {
	out := make([]ledger.Transaction, 0, len(rows))
	warnings := make([]Warning, 0)
	for i, row := range rows {
		if row.FromAccount == "" && row.ToAccount == "" {
			warnings = append(warnings, Warning{Index: i, Field: "from_account", Detail: "transaction names neither account; skipped"})
			continue
		}
		if row.Amount.IsNegative() {
			warnings = append(warnings, Warning{Index: i, Field: "amount", Detail: "negative amount violates unsigned-magnitude convention; skipped"})
			continue
		}
		out = append(out, ledger.Transaction{
			ID:          uuid.New(),
			Date:        row.Date,
			Kind:        ledger.KindLegacyTransfer,
			Description: row.Description,
			FromAccount: strings.TrimSpace(row.FromAccount),
			ToAccount:   strings.TrimSpace(row.ToAccount),
			Amount:      row.Amount,
		})
	}
	return out, warnings
}

// JournalTransactions flattens journal entries into canonical explicit
// lines. Each line posts its debit and credit to its own account.
func JournalTransactions(entries []JournalEntry) ([]ledger.Transaction, []Warning) {
	out := make([]ledger.Transaction, 0)
	warnings := make([]Warning, 0)
	for i, entry := range entries {
		for j, line := range entry.Lines {
			if strings.TrimSpace(line.AccountCode) == "" {
				warnings = append(warnings, Warning{Index: i, Field: "account_code", Detail: fmt.Sprintf("entry %s line %d: missing account code; skipped", entry.Reference, j)})
				continue
			}
			if line.Debit.IsNegative() || line.Credit.IsNegative() {
				warnings = append(warnings, Warning{Index: i, Field: "amount", Detail: fmt.Sprintf("entry %s line %d: negative amount; skipped", entry.Reference, j)})
				continue
			}
			if line.Debit.IsZero() && line.Credit.IsZero() {
				warnings = append(warnings, Warning{Index: i, Field: "amount", Detail: fmt.Sprintf("entry %s line %d: no debit or credit amount; skipped", entry.Reference, j)})
				continue
			}
			code := strings.TrimSpace(line.AccountCode)
			out = append(out, ledger.Transaction{
				ID:          uuid.New(),
				Date:        entry.Date,
				Kind:        ledger.KindExplicitLine,
				Description: line.Description,
				Reference:   entry.Reference,
				ToAccount:   code,
				FromAccount: code,
				Debit:       line.Debit,
				Credit:      line.Credit,
			})
		}
	}
	return out, warnings
}

func parseCategory(s string) (ledger.Category, bool) {
	switch slug.Slugify(s) {
	case "assets", "asset":
		return ledger.CategoryAssets, true
	case "liabilities", "liability":
		return ledger.CategoryLiabilities, true
	case "equity":
		return ledger.CategoryEquity, true
	case "revenue", "income":
		return ledger.CategoryRevenue, true
	case "cogs", "cost_of_goods_sold":
		return ledger.CategoryCOGS, true
	case "expense", "expenses":
		return ledger.CategoryExpense, true
	case "other_income_expense", "other_income", "other_expense", "other":
		return ledger.CategoryOther, true
	}
	return "", false
}

func parseSide(s string, c ledger.Category) ledger.Side {
	switch slug.Slugify(s) {
	case "debit":
		return ledger.SideDebit
	case "credit":
		return ledger.SideCredit
	}
	return c.NormalSide()
}

func parseSubcategory(tag string, c ledger.Category) ledger.Subcategory {
	switch slug.Slugify(tag) {
	case "current_asset", "current", "short_term":
		if c == ledger.CategoryLiabilities {
			return ledger.SubcategoryCurrentLiability
		}
		return ledger.SubcategoryCurrentAsset
	case "fixed_asset", "fixed":
		return ledger.SubcategoryFixedAsset
	case "other_asset":
		return ledger.SubcategoryOtherAsset
	case "current_liability":
		return ledger.SubcategoryCurrentLiability
	case "long_term_liability", "long_term":
		return ledger.SubcategoryLongTermLiability
	}
	return ledger.SubcategoryNone
}
