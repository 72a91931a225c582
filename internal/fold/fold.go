// Package fold implements the transaction-to-balance derivation at the core
// of every statement view. One canonical implementation is invoked by all
// projectors; any two statements rendered from the same ledger therefore
// agree by construction.
package fold

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// Warning is a non-fatal data-quality signal surfaced to the caller instead
// of being swallowed. Folding always completes; warnings describe which
// contributions were skipped.
type Warning struct {
	Code        string `json:"code"`
	Transaction string `json:"transaction,omitempty"`
	Account     string `json:"account,omitempty"`
	Detail      string `json:"detail"`
}

// Result is the output of one fold pass: a complete balance map (every
// registered account appears, untouched accounts at zero) plus warnings.
type Result struct {
	Balances map[string]ledger.FoldedBalance
	Warnings []Warning
}

type options struct {
	openingBalances bool
	asOf            *time.Time
}

// Option configures a fold pass.
type Option func(*options)

// WithOpeningBalances makes the feed-provided opening balance the fallback
// balance for accounts no transaction touches. Off by default: statements
// stay reproducible from the ledger alone.
func WithOpeningBalances() Option {
	return func(o *options) { o.openingBalances = true }
}

// WithAsOf restricts folding to transactions dated on or before t.
func WithAsOf(t time.Time) Option {
	return func(o *options) { o.asOf = &t }
}

type accumulator struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// Fold accumulates all transaction postings into per-account debit/credit
// totals and reduces them to signed balances by normal-balance side.
// It is pure: no shared state is read or written, so concurrent renders may
// call it freely.
func Fold(reg *registry.Registry, txs []ledger.Transaction, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	acc := make(map[string]accumulator)
	warnings := make([]Warning, 0)

	warn := func(code string, tx ledger.Transaction, account, detail string) {
		id := ""
		if tx.ID != uuid.Nil {
			id = tx.ID.String()
		}
		warnings = append(warnings, Warning{Code: code, Transaction: id, Account: account, Detail: detail})
	}

	post := func(tx ledger.Transaction, code string, side ledger.Side, amount decimal.Decimal) {
		if code == "" || !amount.IsPositive() {
			return
		}
		if _, ok := reg.Lookup(code); !ok {
			warn(errs.ErrUnknownAccount.Error(), tx, code, fmt.Sprintf("transaction references unknown account %q; leg skipped", code))
			return
		}
		a := acc[code]
		if side == ledger.SideDebit {
			a.debits = a.debits.Add(amount)
		} else {
			a.credits = a.credits.Add(amount)
		}
		acc[code] = a
	}

	for _, tx := range txs {
		if o.asOf != nil && tx.Date.After(*o.asOf) {
			continue
		}
		switch tx.Kind {
		case ledger.KindExplicitLine:
			if !tx.Debit.IsPositive() && !tx.Credit.IsPositive() {
				warn(errs.ErrMalformedTransaction.Error(), tx, "", "explicit line carries no positive debit or credit; skipped")
				continue
			}
			// The two legs are independent: a line may contribute to
			// both sides, and they need not net to the same account.
			post(tx, tx.ToAccount, ledger.SideDebit, tx.Debit)
			post(tx, tx.FromAccount, ledger.SideCredit, tx.Credit)
		case ledger.KindLegacyTransfer:
			if tx.FromAccount == "" && tx.ToAccount == "" {
				warn(errs.ErrMalformedTransaction.Error(), tx, "", "legacy transfer names neither account; skipped")
				continue
			}
			if tx.Amount.IsNegative() {
				warn(errs.ErrNegativeAmount.Error(), tx, "", "legacy transfer amount is negative; skipped")
				continue
			}
			// Money leaves FromAccount, arrives at ToAccount.
			post(tx, tx.FromAccount, ledger.SideCredit, tx.Amount)
			post(tx, tx.ToAccount, ledger.SideDebit, tx.Amount)
		default:
			warn(errs.ErrMalformedTransaction.Error(), tx, "", fmt.Sprintf("unknown transaction kind %q; skipped", tx.Kind))
		}
	}

	// Every registered account gets a balance, touched or not, so statements
	// never silently omit a zero-balance account.
	balances := make(map[string]ledger.FoldedBalance, reg.Len())
	for _, account := range reg.Accounts() {
		a := acc[account.Code]
		balance := a.debits.Sub(a.credits)
		if account.NormalBalance == ledger.SideCredit {
			balance = a.credits.Sub(a.debits)
		}
		if o.openingBalances && a.debits.IsZero() && a.credits.IsZero() {
			balance = account.OpeningBalance
		}
		balances[account.Code] = ledger.FoldedBalance{Debits: a.debits, Credits: a.credits, Balance: balance}
	}

	observeFold(time.Since(start), len(warnings))
	return Result{Balances: balances, Warnings: warnings}
}

// TotalDebits sums the debit side across all folded balances.
func TotalDebits(balances map[string]ledger.FoldedBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Debits)
	}
	return total
}

// TotalCredits sums the credit side across all folded balances.
func TotalCredits(balances map[string]ledger.FoldedBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Credits)
	}
	return total
}
