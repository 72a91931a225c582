package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open for init: %v", err)
	}
	defer s.Close()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	path := filepath.Join(repoRoot, "db", "migrations", "001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	// Exec may contain multiple statements; pgx supports this
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
}

func truncateAll(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open for truncate: %v", err)
	}
	defer s.Close()
	_, _ = s.pool.Exec(ctx, `truncate table transactions, accounts cascade`)
	_, _ = s.pool.Exec(ctx, `update feed_version set version = 0`)
}

func TestStore_FeedsRoundTrip(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	truncateAll(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}

	v0, err := s.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}

	a := ledger.Account{
		Code:           "10100",
		Name:           "Cash - Operating",
		Category:       ledger.CategoryAssets,
		NormalBalance:  ledger.SideDebit,
		OpeningBalance: decimal.NewFromInt(900),
	}
	if err := s.AppendAccount(ctx, a); err != nil {
		t.Fatalf("append account: %v", err)
	}
	if err := s.AppendAccount(ctx, a); !errors.Is(err, errs.ErrDuplicateCode) {
		t.Fatalf("expected duplicate code, got %v", err)
	}

	got, err := s.GetAccount(ctx, "10100")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Name != a.Name || !got.OpeningBalance.Equal(a.OpeningBalance) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if _, err := s.GetAccount(ctx, "99999"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	tx := ledger.Transaction{
		ID:          uuid.New(),
		Date:        time.Now().UTC().Truncate(time.Second),
		Kind:        ledger.KindLegacyTransfer,
		Description: "test transfer",
		ToAccount:   "10100",
		Amount:      decimal.NewFromInt(500),
	}
	if err := s.AddTransactions(ctx, []ledger.Transaction{tx}); err != nil {
		t.Fatalf("add transactions: %v", err)
	}

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != tx.ID || !txs[0].Amount.Equal(tx.Amount) {
		t.Fatalf("transaction round trip mismatch: %+v", txs)
	}
	if txs[0].FromAccount != "" {
		t.Fatalf("null from_account should read back empty: %+v", txs[0])
	}

	// Each write bumped the feed version once.
	v1, err := s.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v1 != v0+2 {
		t.Fatalf("expected version %d, got %d", v0+2, v1)
	}
}
