package v1

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/fold"
	"github.com/openbooks/reporting/internal/ingest"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/statement"
)

// postAccountRequest mirrors the chart-of-accounts feed record.
type postAccountRequest = ingest.ChartRow

type accountResponse struct {
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	Category       ledger.Category    `json:"category"`
	NormalBalance  ledger.Side        `json:"normal_balance"`
	Subcategory    ledger.Subcategory `json:"subcategory,omitempty"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	Placeholder    bool               `json:"placeholder,omitempty"`
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		Code:           a.Code,
		Name:           a.Name,
		Category:       a.Category,
		NormalBalance:  a.NormalBalance,
		Subcategory:    a.Subcategory,
		OpeningBalance: a.OpeningBalance,
		Placeholder:    a.Placeholder,
	}
}

// postTransactionsRequest accepts both feed shapes, together or separately.
type postTransactionsRequest struct {
	Transactions []ingest.FlatRow      `json:"transactions,omitempty"`
	Entries      []ingest.JournalEntry `json:"entries,omitempty"`
}

type postTransactionsResponse struct {
	Added    int              `json:"added"`
	Warnings []ingest.Warning `json:"warnings"`
}

type balancesResponse struct {
	Balances map[string]ledger.FoldedBalance `json:"balances"`
	Warnings []fold.Warning                  `json:"warnings"`
}

type pnlResponse struct {
	ProfitAndLoss statement.ProfitAndLoss `json:"profit_and_loss"`
	Warnings      []fold.Warning          `json:"warnings"`
}

type balanceSheetResponse struct {
	BalanceSheet statement.BalanceSheet `json:"balance_sheet"`
	Warnings     []fold.Warning         `json:"warnings"`
}

type cashFlowResponse struct {
	CashFlow statement.CashFlow `json:"cash_flow"`
	Warnings []fold.Warning     `json:"warnings"`
}

type kpisResponse struct {
	Summary  statement.ExecutiveSummary `json:"summary"`
	Warnings []fold.Warning             `json:"warnings"`
}

type analyticsResponse struct {
	Analytics statement.Analytics `json:"analytics"`
	Warnings  []fold.Warning      `json:"warnings"`
}

type generalLedgerResponse struct {
	Ledger   statement.GeneralLedgerView `json:"ledger"`
	Warnings []fold.Warning              `json:"warnings"`
}

// postReconciliationRequest carries the bank statement side of the view.
type postReconciliationRequest struct {
	Account   string               `json:"account"`
	BankLines []statement.BankLine `json:"bank_lines"`
}

type reconciliationResponse struct {
	Reconciliation statement.ReconciliationView `json:"reconciliation"`
	Warnings       []fold.Warning               `json:"warnings"`
}
