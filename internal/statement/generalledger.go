package statement

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// GeneralLedgerPosting is one side of a transaction as it hit the account,
// with the running balance after it.
type GeneralLedgerPosting struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Side        ledger.Side     `json:"side"`
	Amount      decimal.Decimal `json:"amount"`
	Running     decimal.Decimal `json:"running_balance"`
}

// GeneralLedgerView is the per-account transaction browser.
type GeneralLedgerView struct {
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	Category       ledger.Category        `json:"category"`
	NormalBalance  ledger.Side            `json:"normal_balance"`
	Postings       []GeneralLedgerPosting `json:"postings"`
	TotalDebits    decimal.Decimal        `json:"total_debits"`
	TotalCredits   decimal.Decimal        `json:"total_credits"`
	ClosingBalance decimal.Decimal        `json:"closing_balance"`
}

// BuildGeneralLedger lists every posting that touched one account in date
// order with a running balance. The closing balance equals the folded
// balance for the same ledger, by construction.
func BuildGeneralLedger(reg *registry.Registry, txs []ledger.Transaction, code string) (GeneralLedgerView, error) {
	account, ok := reg.Lookup(code)
	if !ok {
		return GeneralLedgerView{}, fmt.Errorf("account %s: %w", code, errs.ErrNotFound)
	}

	type posting struct {
		date        time.Time
		description string
		reference   string
		side        ledger.Side
		amount      decimal.Decimal
	}
	postings := make([]posting, 0)
	add := func(tx ledger.Transaction, side ledger.Side, amount decimal.Decimal) {
		if !amount.IsPositive() {
			return
		}
		postings = append(postings, posting{
			date:        tx.Date,
			description: tx.Description,
			reference:   tx.Reference,
			side:        side,
			amount:      amount,
		})
	}
	for _, tx := range txs {
		switch tx.Kind {
		case ledger.KindExplicitLine:
			if tx.ToAccount == code {
				add(tx, ledger.SideDebit, tx.Debit)
			}
			if tx.FromAccount == code {
				add(tx, ledger.SideCredit, tx.Credit)
			}
		case ledger.KindLegacyTransfer:
			if tx.ToAccount == code {
				add(tx, ledger.SideDebit, tx.Amount)
			}
			if tx.FromAccount == code {
				add(tx, ledger.SideCredit, tx.Amount)
			}
		}
	}
	sort.SliceStable(postings, func(i, j int) bool { return postings[i].date.Before(postings[j].date) })

	view := GeneralLedgerView{
		Code:          account.Code,
		Name:          account.Name,
		Category:      account.Category,
		NormalBalance: account.NormalBalance,
		Postings:      make([]GeneralLedgerPosting, 0, len(postings)),
	}
	running := decimal.Zero
	for _, p := range postings {
		if p.side == ledger.SideDebit {
			view.TotalDebits = view.TotalDebits.Add(p.amount)
		} else {
			view.TotalCredits = view.TotalCredits.Add(p.amount)
		}
		delta := p.amount
		if p.side != account.NormalBalance {
			delta = delta.Neg()
		}
		running = running.Add(delta)
		view.Postings = append(view.Postings, GeneralLedgerPosting{
			Date:        p.date,
			Description: p.description,
			Reference:   p.reference,
			Side:        p.side,
			Amount:      p.amount,
			Running:     running,
		})
	}
	view.ClosingBalance = running
	return view, nil
}
