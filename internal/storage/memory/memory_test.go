package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
)

func TestAppendAccount(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := ledger.Account{Code: "10100", Name: "Cash", Category: ledger.CategoryAssets}
	if err := s.AppendAccount(ctx, a); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendAccount(ctx, a); !errors.Is(err, errs.ErrDuplicateCode) {
		t.Fatalf("expected duplicate code error, got %v", err)
	}
	if err := s.AppendAccount(ctx, ledger.Account{}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid for empty code, got %v", err)
	}

	got, err := s.GetAccount(ctx, "10100")
	if err != nil || got.Name != "Cash" {
		t.Fatalf("get: %+v, %v", got, err)
	}
	if _, err := s.GetAccount(ctx, "99999"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAccountsSortedByCode(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, code := range []string{"60100", "10100", "40100"} {
		if err := s.AppendAccount(ctx, ledger.Account{Code: code, Category: ledger.CategoryAssets}); err != nil {
			t.Fatalf("append %s: %v", code, err)
		}
	}
	accounts, err := s.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	want := []string{"10100", "40100", "60100"}
	for i, a := range accounts {
		if a.Code != want[i] {
			t.Fatalf("listing not sorted: %+v", accounts)
		}
	}
}

func TestVersionMovesOnEveryMutation(t *testing.T) {
	s := New()
	ctx := context.Background()

	v0, _ := s.Version(ctx)
	if err := s.AppendAccount(ctx, ledger.Account{Code: "10100", Category: ledger.CategoryAssets}); err != nil {
		t.Fatalf("append: %v", err)
	}
	v1, _ := s.Version(ctx)
	if v1 == v0 {
		t.Fatalf("version must move on account append")
	}

	tx := ledger.Transaction{
		ID:        uuid.New(),
		Date:      time.Now().UTC(),
		Kind:      ledger.KindLegacyTransfer,
		ToAccount: "10100",
		Amount:    decimal.NewFromInt(5),
	}
	if err := s.AddTransactions(ctx, []ledger.Transaction{tx}); err != nil {
		t.Fatalf("add: %v", err)
	}
	v2, _ := s.Version(ctx)
	if v2 == v1 {
		t.Fatalf("version must move on transaction append")
	}

	// No-op appends leave the version alone.
	if err := s.AddTransactions(ctx, nil); err != nil {
		t.Fatalf("empty add: %v", err)
	}
	v3, _ := s.Version(ctx)
	if v3 != v2 {
		t.Fatalf("empty append must not move version")
	}

	txs, _ := s.Transactions(ctx)
	if len(txs) != 1 || txs[0].ID != tx.ID {
		t.Fatalf("transactions wrong: %+v", txs)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.SeedAccount(ledger.Account{Code: "10100", Category: ledger.CategoryAssets})
	s.SeedTransaction(ledger.Transaction{ID: uuid.New(), Kind: ledger.KindLegacyTransfer, ToAccount: "10100", Amount: decimal.NewFromInt(1)})

	before, _ := s.Version(context.Background())
	s.Reset()
	after, _ := s.Version(context.Background())
	if after == before {
		t.Fatalf("reset must move version")
	}
	accounts, _ := s.Accounts(context.Background())
	txs, _ := s.Transactions(context.Background())
	if len(accounts) != 0 || len(txs) != 0 {
		t.Fatalf("reset must clear state: %d accounts, %d txs", len(accounts), len(txs))
	}
}
