package dictionary

import (
	"strings"

	"github.com/openbooks/reporting/internal/ledger"
)

// LineKind names a cash-flow statement line an account feeds into.
type LineKind string

const (
	LineReceivables  LineKind = "receivables"
	LineDepreciation LineKind = "depreciation"
	LinePayables     LineKind = "payables"
	LineAccrued      LineKind = "accrued"
	LineDeferred     LineKind = "deferred"
	LinePayroll      LineKind = "payroll"
	LineTax          LineKind = "tax"
	LineEquipment    LineKind = "equipment"
	LineSoftware     LineKind = "software"
	LineCloud        LineKind = "cloud"
	LineInvestment   LineKind = "investment"
	LineContribution LineKind = "contribution"
	LineStock        LineKind = "stock"
	LineOther        LineKind = "other"
)

// Keyword tables are ordered: the first matching entry wins. Matching is
// case-insensitive substring match on the account name, which is deliberately
// fuzzy; accounts that match nothing fall into the catch-all bucket and are
// never dropped.
var currentAssetKeywords = []string{"cash", "bank", "receivable", "prepaid", "short term", "short-term"}

var fixedAssetKeywords = []string{"equipment", "depreciation", "software", "cloud", "llm data"}

var longTermLiabilityKeywords = []string{"long term", "long-term", "loan", "note", "mortgage", "bond"}

var cashFlowKeywords = []struct {
	kind     LineKind
	keywords []string
}{
	{LineReceivables, []string{"receivable"}},
	{LineDepreciation, []string{"depreciation", "amortization"}},
	{LinePayables, []string{"payable"}},
	{LineAccrued, []string{"accrued"}},
	{LineDeferred, []string{"deferred"}},
	{LinePayroll, []string{"payroll", "salary", "wages"}},
	{LineTax, []string{"tax"}},
	{LineEquipment, []string{"equipment"}},
	{LineSoftware, []string{"software"}},
	{LineCloud, []string{"cloud"}},
	{LineInvestment, []string{"investment"}},
	{LineContribution, []string{"contribution"}},
	{LineStock, []string{"stock", "share"}},
}

var cashLikeKeywords = []string{"cash", "bank", "checking", "savings"}

func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AssetSubcategory classifies an asset account name into
// current/fixed/other. Fallback used only when the account carries no
// explicit subcategory tag.
func AssetSubcategory(name string) ledger.Subcategory {
	switch {
	case containsAny(name, currentAssetKeywords):
		return ledger.SubcategoryCurrentAsset
	case containsAny(name, fixedAssetKeywords):
		return ledger.SubcategoryFixedAsset
	}
	return ledger.SubcategoryOtherAsset
}

// LiabilitySubcategory classifies a liability account name. Anything not
// recognisably long-term counts as current.
func LiabilitySubcategory(name string) ledger.Subcategory {
	if containsAny(name, longTermLiabilityKeywords) {
		return ledger.SubcategoryLongTermLiability
	}
	return ledger.SubcategoryCurrentLiability
}

// CashFlowLine maps an account name onto the cash-flow line it feeds.
func CashFlowLine(name string) LineKind {
	lower := strings.ToLower(name)
	for _, entry := range cashFlowKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.kind
			}
		}
	}
	return LineOther
}

// IsCashLike reports whether the account name looks like a cash or bank
// account, used by the cash-flow and reconciliation views.
func IsCashLike(name string) bool {
	return containsAny(name, cashLikeKeywords)
}
