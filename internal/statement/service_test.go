package statement

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/ledger"
)

// countingSource wraps fixed feeds and counts how often they are read, so
// tests can observe snapshot reuse.
type countingSource struct {
	version  atomic.Uint64
	accounts []ledger.Account
	txs      []ledger.Transaction
	reads    atomic.Int64
}

func (c *countingSource) Accounts(context.Context) ([]ledger.Account, error) {
	c.reads.Add(1)
	return c.accounts, nil
}

func (c *countingSource) Transactions(context.Context) ([]ledger.Transaction, error) {
	return c.txs, nil
}

func (c *countingSource) Version(context.Context) (uint64, error) {
	return c.version.Load(), nil
}

func TestServiceSnapshotReuse(t *testing.T) {
	src := &countingSource{
		accounts: []ledger.Account{
			{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets},
			{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue},
		},
		txs: []ledger.Transaction{{
			ID:          uuid.New(),
			Kind:        ledger.KindLegacyTransfer,
			FromAccount: "40100",
			ToAccount:   "10100",
			Amount:      decimal.NewFromInt(500),
		}},
	}
	svc := New(src, nil)
	ctx := context.Background()

	if _, _, err := svc.Balances(ctx); err != nil {
		t.Fatalf("balances: %v", err)
	}
	if _, _, err := svc.ProfitAndLoss(ctx); err != nil {
		t.Fatalf("pnl: %v", err)
	}
	if _, _, err := svc.ExecutiveSummary(ctx); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got := src.reads.Load(); got != 1 {
		t.Fatalf("expected a single feed read across views, got %d", got)
	}

	// Moving the version invalidates the snapshot.
	src.version.Add(1)
	if _, _, err := svc.Balances(ctx); err != nil {
		t.Fatalf("balances after version bump: %v", err)
	}
	if got := src.reads.Load(); got != 2 {
		t.Fatalf("expected refold after version move, got %d reads", got)
	}
}

func TestServiceViewsAgree(t *testing.T) {
	src := &countingSource{
		accounts: []ledger.Account{
			{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets},
			{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue},
			{Code: "60100", Name: "Payroll Expense", Category: ledger.CategoryExpense},
		},
		txs: []ledger.Transaction{
			{ID: uuid.New(), Kind: ledger.KindLegacyTransfer, FromAccount: "40100", ToAccount: "10100", Amount: decimal.NewFromInt(1000)},
			{ID: uuid.New(), Kind: ledger.KindLegacyTransfer, FromAccount: "10100", ToAccount: "60100", Amount: decimal.NewFromInt(400)},
		},
	}
	svc := New(src, nil)
	ctx := context.Background()

	pnl, _, err := svc.ProfitAndLoss(ctx)
	if err != nil {
		t.Fatalf("pnl: %v", err)
	}
	bs, _, err := svc.BalanceSheet(ctx)
	if err != nil {
		t.Fatalf("balance sheet: %v", err)
	}
	sum, _, err := svc.ExecutiveSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !sum.NetIncome.Equal(pnl.NetIncome) {
		t.Fatalf("summary and pnl disagree on net income: %s vs %s", sum.NetIncome, pnl.NetIncome)
	}
	if !bs.TotalAssets.Equal(bs.TotalLiabilitiesAndEquity) {
		t.Fatalf("identity broken through service: %+v", bs)
	}

	gl, _, err := svc.GeneralLedger(ctx, "10100")
	if err != nil {
		t.Fatalf("general ledger: %v", err)
	}
	balances, _, err := svc.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if !gl.ClosingBalance.Equal(balances["10100"].Balance) {
		t.Fatalf("general ledger closing %s != folded %s", gl.ClosingBalance, balances["10100"].Balance)
	}
}
