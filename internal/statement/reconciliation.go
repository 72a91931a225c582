package statement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// BankLine is one line from an external bank statement. Amount is signed
// from the bank's perspective: positive means a deposit into the account.
type BankLine struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReconciliationView compares book postings on a cash account against a
// bank statement. Matching is by same calendar day and magnitude; anything
// unmatched on either side is listed, never dropped.
type ReconciliationView struct {
	Code               string                 `json:"code"`
	Name               string                 `json:"name"`
	BookBalance        decimal.Decimal        `json:"book_balance"`
	StatementBalance   decimal.Decimal        `json:"statement_balance"`
	Difference         decimal.Decimal        `json:"difference"`
	Matched            []GeneralLedgerPosting `json:"matched"`
	UnmatchedBook      []GeneralLedgerPosting `json:"unmatched_book"`
	UnmatchedStatement []BankLine             `json:"unmatched_statement"`
}

// BuildReconciliation reconciles one cash-like account. Book postings come
// from the same general-ledger derivation the GL browser uses, so the two
// views cannot disagree on the account's activity.
func BuildReconciliation(reg *registry.Registry, txs []ledger.Transaction, agg *aggregate.Aggregator, code string, bank []BankLine) (ReconciliationView, error) {
	account, ok := reg.Lookup(code)
	if !ok {
		return ReconciliationView{}, fmt.Errorf("account %s: %w", code, errs.ErrNotFound)
	}
	if !agg.IsCashLike(account) {
		return ReconciliationView{}, fmt.Errorf("account %s is not a cash account: %w", code, errs.ErrUnprocessable)
	}
	gl, err := BuildGeneralLedger(reg, txs, code)
	if err != nil {
		return ReconciliationView{}, err
	}

	view := ReconciliationView{
		Code:               account.Code,
		Name:               account.Name,
		BookBalance:        gl.ClosingBalance,
		Matched:            make([]GeneralLedgerPosting, 0),
		UnmatchedBook:      make([]GeneralLedgerPosting, 0),
		UnmatchedStatement: make([]BankLine, 0),
	}

	used := make([]bool, len(gl.Postings))
	for _, line := range bank {
		view.StatementBalance = view.StatementBalance.Add(line.Amount)
		// A deposit is a debit on a debit-normal cash account.
		wantSide := ledger.SideDebit
		magnitude := line.Amount
		if line.Amount.IsNegative() {
			wantSide = ledger.SideCredit
			magnitude = line.Amount.Neg()
		}
		matched := false
		for i, p := range gl.Postings {
			if used[i] || p.Side != wantSide || !p.Amount.Equal(magnitude) {
				continue
			}
			if !sameDay(p.Date, line.Date) {
				continue
			}
			used[i] = true
			view.Matched = append(view.Matched, p)
			matched = true
			break
		}
		if !matched {
			view.UnmatchedStatement = append(view.UnmatchedStatement, line)
		}
	}
	for i, p := range gl.Postings {
		if !used[i] {
			view.UnmatchedBook = append(view.UnmatchedBook, p)
		}
	}
	view.Difference = view.BookBalance.Sub(view.StatementBalance)
	return view, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
