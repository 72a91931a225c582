package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/meta"
)

// Side represents the accounting position of a posting.
type Side string

const (
	// SideDebit records a value on the debit side of an account.
	SideDebit Side = "debit"
	// SideCredit records a value on the credit side of an account.
	SideCredit Side = "credit"
)

// Category is the top-level accounting classification of an account.
type Category string

const (
	// CategoryAssets increases on the debit side and holds owned resources.
	CategoryAssets Category = "assets"
	// CategoryLiabilities increases on the credit side and tracks obligations.
	CategoryLiabilities Category = "liabilities"
	// CategoryEquity captures the residual interest in the entity.
	CategoryEquity Category = "equity"
	// CategoryRevenue represents inflows that increase equity.
	CategoryRevenue Category = "revenue"
	// CategoryCOGS represents direct costs of delivering revenue.
	CategoryCOGS Category = "cogs"
	// CategoryExpense represents operating outflows that decrease equity.
	CategoryExpense Category = "expense"
	// CategoryOther covers non-operating income and expense.
	CategoryOther Category = "other_income_expense"
)

// Categories lists every category in statement order.
var Categories = []Category{
	CategoryAssets,
	CategoryLiabilities,
	CategoryEquity,
	CategoryRevenue,
	CategoryCOGS,
	CategoryExpense,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAssets, CategoryLiabilities, CategoryEquity,
		CategoryRevenue, CategoryCOGS, CategoryExpense, CategoryOther:
		return true
	}
	return false
}

// NormalSide returns the side on which accounts of this category
// conventionally increase.
func (c Category) NormalSide() Side {
	switch c {
	case CategoryLiabilities, CategoryEquity, CategoryRevenue:
		return SideCredit
	}
	return SideDebit
}

// Subcategory is an explicit classification tag carried on an account.
// When present it takes priority over the name-substring heuristics.
type Subcategory string

const (
	SubcategoryNone              Subcategory = ""
	SubcategoryCurrentAsset      Subcategory = "current_asset"
	SubcategoryFixedAsset        Subcategory = "fixed_asset"
	SubcategoryOtherAsset        Subcategory = "other_asset"
	SubcategoryCurrentLiability  Subcategory = "current_liability"
	SubcategoryLongTermLiability Subcategory = "long_term_liability"
)

// CodeCurrentYearEarnings is the reserved equity account that receives the
// period's net income so the balance sheet identity holds.
const CodeCurrentYearEarnings = "39900"

// DeferredRevenueCodes are well-known liability accounts the registry
// guarantees to exist even when the chart-of-accounts feed omits them.
var DeferredRevenueCodes = map[string]string{
	"24000": "Deferred Revenue",
	"24010": "Deferred Revenue - Subscriptions",
	"24020": "Deferred Revenue - Support",
	"24030": "Deferred Revenue - Licensing",
}

// Account is one row of the chart of accounts. Accounts are loaded once per
// session and are append-only afterwards.
type Account struct {
	// Code uniquely identifies the account within the registry, e.g. "40100".
	Code          string
	Name          string
	Category      Category
	NormalBalance Side
	// Subcategory, when set, overrides the name-based classification
	// heuristics used by the aggregator.
	Subcategory Subcategory
	// OpeningBalance is the feed-provided starting balance. The folding
	// engine ignores it unless explicitly configured otherwise.
	OpeningBalance decimal.Decimal
	// Metadata holds additional key-value attributes from the feed.
	Metadata meta.Metadata `json:"metadata,omitempty"`
	// Placeholder marks accounts synthesized by the registry for
	// well-known codes missing from the feed.
	Placeholder bool
}

// TransactionKind tags the two wire shapes a ledger line can arrive in.
type TransactionKind string

const (
	// KindExplicitLine carries independent debit/credit amounts tied to
	// the to/from accounts of a journal-entry line pair.
	KindExplicitLine TransactionKind = "explicit_line"
	// KindLegacyTransfer carries a single amount meaning
	// "credit FromAccount, debit ToAccount".
	KindLegacyTransfer TransactionKind = "legacy_transfer"
)

// Transaction is the canonical internal representation of one ledger line.
// Both external shapes are normalized into this at ingest so folding has a
// single code path.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`

	// FromAccount receives the credit leg, ToAccount the debit leg.
	FromAccount string `json:"from_account,omitempty"`
	ToAccount   string `json:"to_account,omitempty"`

	// Amount is the legacy-transfer magnitude. Zero for explicit lines.
	Amount decimal.Decimal `json:"amount"`
	// Debit and Credit are the explicit-line amounts. Zero for transfers.
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// FoldedBalance is the derived per-account accumulation of all postings.
// It is recomputed in full on every render and never mutated in place.
type FoldedBalance struct {
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
	Balance decimal.Decimal `json:"balance"`
}
