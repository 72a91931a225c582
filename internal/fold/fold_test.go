package fold

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

func testRegistry(t *testing.T, accounts ...ledger.Account) *registry.Registry {
	t.Helper()
	reg, err := registry.New(accounts)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func legacyTransfer(from, to string, amount int64) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.New(),
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        ledger.KindLegacyTransfer,
		FromAccount: from,
		ToAccount:   to,
		Amount:      dec(amount),
	}
}

func explicitLine(code string, debit, credit int64) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.New(),
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        ledger.KindExplicitLine,
		ToAccount:   code,
		FromAccount: code,
		Debit:       dec(debit),
		Credit:      dec(credit),
	}
}

func TestFold_LegacyTransfer(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
	)
	res := Fold(reg, []ledger.Transaction{legacyTransfer("40100", "10100", 500)})
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", res.Warnings)
	}
	rev := res.Balances["40100"]
	if !rev.Credits.Equal(dec(500)) || !rev.Debits.IsZero() || !rev.Balance.Equal(dec(500)) {
		t.Fatalf("revenue balance wrong: %+v", rev)
	}
	cash := res.Balances["10100"]
	if !cash.Debits.Equal(dec(500)) || !cash.Credits.IsZero() || !cash.Balance.Equal(dec(500)) {
		t.Fatalf("cash balance wrong: %+v", cash)
	}
}

func TestFold_ExplicitLines(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "60100", Name: "Office Expense", Category: ledger.CategoryExpense, NormalBalance: ledger.SideDebit},
	)
	txs := []ledger.Transaction{
		explicitLine("60100", 200, 0),
		explicitLine("60100", 100, 50),
	}
	res := Fold(reg, txs)
	b := res.Balances["60100"]
	if !b.Debits.Equal(dec(300)) || !b.Credits.Equal(dec(50)) {
		t.Fatalf("accumulation wrong: %+v", b)
	}
	if !b.Balance.Equal(dec(250)) {
		t.Fatalf("expected balance 250, got %s", b.Balance)
	}
}

func TestFold_EmptyLedgerYieldsCompleteZeroMap(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		ledger.Account{Code: "20100", Name: "Payable", Category: ledger.CategoryLiabilities, NormalBalance: ledger.SideCredit},
		ledger.Account{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
	)
	res := Fold(reg, nil)
	if len(res.Balances) != reg.Len() {
		t.Fatalf("expected %d balances, got %d", reg.Len(), len(res.Balances))
	}
	for code, b := range res.Balances {
		if !b.Balance.IsZero() || !b.Debits.IsZero() || !b.Credits.IsZero() {
			t.Fatalf("account %s not zero: %+v", code, b)
		}
	}
}

func TestFold_UnknownAccountWarnsAndSkipsLeg(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
	)
	res := Fold(reg, []ledger.Transaction{legacyTransfer("99999", "10100", 100)})
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %+v", res.Warnings)
	}
	if res.Warnings[0].Code != "unknown_account" || res.Warnings[0].Account != "99999" {
		t.Fatalf("unexpected warning: %+v", res.Warnings[0])
	}
	// The known leg still posts.
	if !res.Balances["10100"].Debits.Equal(dec(100)) {
		t.Fatalf("known leg not posted: %+v", res.Balances["10100"])
	}
}

func TestFold_MalformedTransactionsWarn(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
	)
	txs := []ledger.Transaction{
		{ID: uuid.New(), Kind: ledger.KindLegacyTransfer, Amount: dec(100)}, // neither account
		{ID: uuid.New(), Kind: ledger.KindExplicitLine, ToAccount: "10100"}, // no amounts
		{ID: uuid.New(), Kind: ledger.KindLegacyTransfer, FromAccount: "10100", Amount: dec(-5)},
	}
	res := Fold(reg, txs)
	if len(res.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %+v", res.Warnings)
	}
	if !res.Balances["10100"].Balance.IsZero() {
		t.Fatalf("malformed transactions must contribute zero")
	}
}

func TestFold_Idempotent(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		ledger.Account{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
	)
	txs := []ledger.Transaction{
		legacyTransfer("40100", "10100", 500),
		explicitLine("10100", 25, 0),
	}
	first := Fold(reg, txs)
	second := Fold(reg, txs)
	if len(first.Balances) != len(second.Balances) {
		t.Fatalf("balance map sizes differ")
	}
	for code, b := range first.Balances {
		b2 := second.Balances[code]
		if !b.Debits.Equal(b2.Debits) || !b.Credits.Equal(b2.Credits) || !b.Balance.Equal(b2.Balance) {
			t.Fatalf("account %s differs between folds: %+v vs %+v", code, b, b2)
		}
	}
}

func TestFold_DoubleEntryConservation(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		ledger.Account{Code: "20100", Name: "Payable", Category: ledger.CategoryLiabilities, NormalBalance: ledger.SideCredit},
		ledger.Account{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
	)
	txs := []ledger.Transaction{
		legacyTransfer("40100", "10100", 500),
		legacyTransfer("20100", "10100", 120),
		legacyTransfer("10100", "20100", 40),
	}
	res := Fold(reg, txs)
	if !TotalDebits(res.Balances).Equal(TotalCredits(res.Balances)) {
		t.Fatalf("debits %s != credits %s", TotalDebits(res.Balances), TotalCredits(res.Balances))
	}
}

func TestFold_OpeningBalanceFallback(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit, OpeningBalance: dec(900)},
		ledger.Account{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit, OpeningBalance: dec(111)},
	)
	txs := []ledger.Transaction{legacyTransfer("40100", "10100", 10)}

	// Default: the feed balance is disregarded.
	res := Fold(reg, nil)
	if !res.Balances["10100"].Balance.IsZero() {
		t.Fatalf("opening balance must be ignored by default: %+v", res.Balances["10100"])
	}

	// With the flag, it is the fallback for untouched accounts only.
	res = Fold(reg, txs, WithOpeningBalances())
	if !res.Balances["10100"].Balance.Equal(dec(10)) {
		t.Fatalf("touched account must use transaction-derived balance: %+v", res.Balances["10100"])
	}
	res = Fold(reg, nil, WithOpeningBalances())
	if !res.Balances["10100"].Balance.Equal(dec(900)) {
		t.Fatalf("untouched account must fall back to opening balance: %+v", res.Balances["10100"])
	}
}

func TestFold_AsOfFiltersLaterTransactions(t *testing.T) {
	reg := testRegistry(t,
		ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		ledger.Account{Code: "40100", Name: "Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
	)
	early := legacyTransfer("40100", "10100", 100)
	late := legacyTransfer("40100", "10100", 50)
	late.Date = early.Date.AddDate(0, 1, 0)

	res := Fold(reg, []ledger.Transaction{early, late}, WithAsOf(early.Date))
	if !res.Balances["10100"].Balance.Equal(dec(100)) {
		t.Fatalf("as-of fold wrong: %+v", res.Balances["10100"])
	}
}
