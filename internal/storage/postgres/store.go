package postgres

// Package postgres provides a pgx-backed implementation of the account and
// transaction feeds.
//
// It is intentionally small and explicit. Migrations that create the
// expected schema live under db/migrations. This package focuses on mapping
// between the domain entities and SQL rows.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/meta"
)

// Store holds a pgx connection pool and implements the feed interfaces used
// by the statement service. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Accounts implements statement.DataSource.
func (s *Store) Accounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.pool.Query(ctx, `
        select code, name, category, normal_balance, subcategory, opening_balance::text, metadata
        from accounts
        order by code
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Account, 0)
	for rows.Next() {
		var a ledger.Account
		var opening string
		var mdBytes []byte
		if err := rows.Scan(&a.Code, &a.Name, &a.Category, &a.NormalBalance, &a.Subcategory, &opening, &mdBytes); err != nil {
			return nil, err
		}
		if a.OpeningBalance, err = decimal.NewFromString(opening); err != nil {
			return nil, fmt.Errorf("account %s: bad opening balance: %w", a.Code, err)
		}
		if len(mdBytes) > 0 {
			var m meta.Metadata
			if err := m.UnmarshalJSON(mdBytes); err == nil {
				a.Metadata = m
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAccount returns one account by code.
func (s *Store) GetAccount(ctx context.Context, code string) (ledger.Account, error) {
	var a ledger.Account
	var opening string
	var mdBytes []byte
	err := s.pool.QueryRow(ctx, `
        select code, name, category, normal_balance, subcategory, opening_balance::text, metadata
        from accounts
        where code = $1
    `, code).Scan(&a.Code, &a.Name, &a.Category, &a.NormalBalance, &a.Subcategory, &opening, &mdBytes)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return ledger.Account{}, err
	}
	if a.OpeningBalance, err = decimal.NewFromString(opening); err != nil {
		return ledger.Account{}, fmt.Errorf("account %s: bad opening balance: %w", a.Code, err)
	}
	if len(mdBytes) > 0 {
		var m meta.Metadata
		if err := m.UnmarshalJSON(mdBytes); err == nil {
			a.Metadata = m
		}
	}
	return a, nil
}

// Transactions implements statement.DataSource.
func (s *Store) Transactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
        select id, date, kind, description, reference, coalesce(from_account,''), coalesce(to_account,''),
               amount::text, debit::text, credit::text
        from transactions
        order by date asc, id asc
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Transaction, 0)
	for rows.Next() {
		var tx ledger.Transaction
		var amount, debit, credit string
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Kind, &tx.Description, &tx.Reference, &tx.FromAccount, &tx.ToAccount, &amount, &debit, &credit); err != nil {
			return nil, err
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %s: bad amount: %w", tx.ID, err)
		}
		if tx.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("transaction %s: bad debit: %w", tx.ID, err)
		}
		if tx.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("transaction %s: bad credit: %w", tx.ID, err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Version implements statement.DataSource. The feed_version row is bumped by
// every write path in this store.
func (s *Store) Version(ctx context.Context) (uint64, error) {
	var v int64
	if err := s.pool.QueryRow(ctx, `select version from feed_version`).Scan(&v); err != nil {
		return 0, err
	}
	return uint64(v), nil
}

// AppendAccount inserts a chart-of-accounts row. The chart is append-only;
// a duplicate code conflicts.
func (s *Store) AppendAccount(ctx context.Context, a ledger.Account) error {
	if err := a.Metadata.Validate(); err != nil {
		return err
	}
	md, _ := a.Metadata.MarshalStableJSON()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	ct, err := tx.Exec(ctx, `
        insert into accounts (code, name, category, normal_balance, subcategory, opening_balance, metadata)
        values ($1,$2,$3,$4,$5,$6,$7)
        on conflict (code) do nothing
    `, a.Code, a.Name, a.Category, a.NormalBalance, a.Subcategory, a.OpeningBalance, md)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", a.Code, errs.ErrDuplicateCode)
	}
	if _, err := tx.Exec(ctx, `update feed_version set version = version + 1`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// AddTransactions appends posted transactions in one transaction.
func (s *Store) AddTransactions(ctx context.Context, txs []ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	dbtx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback(ctx) }()
	for _, tx := range txs {
		if _, err := dbtx.Exec(ctx, `
            insert into transactions (id, date, kind, description, reference, from_account, to_account, amount, debit, credit)
            values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        `, tx.ID, tx.Date, tx.Kind, tx.Description, tx.Reference, nullIfEmpty(tx.FromAccount), nullIfEmpty(tx.ToAccount), tx.Amount, tx.Debit, tx.Credit); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	if _, err := dbtx.Exec(ctx, `update feed_version set version = version + 1`); err != nil {
		return err
	}
	return dbtx.Commit(ctx)
}

// SeedDev inserts a minimal chart and one legacy transfer for quick local
// testing.
func (s *Store) SeedDev(ctx context.Context) ([]ledger.Account, error) {
	accs := []ledger.Account{
		{Code: "10100", Name: "Cash - Operating", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		{Code: "40100", Name: "Subscription Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
		{Code: "60100", Name: "Payroll Expense", Category: ledger.CategoryExpense, NormalBalance: ledger.SideDebit},
	}
	for _, a := range accs {
		if err := s.AppendAccount(ctx, a); err != nil && !errors.Is(err, errs.ErrDuplicateCode) {
			return nil, err
		}
	}
	seed := ledger.Transaction{
		ID:          uuid.New(),
		Date:        time.Now().UTC(),
		Kind:        ledger.KindLegacyTransfer,
		Description: "dev seed",
		FromAccount: "40100",
		ToAccount:   "10100",
		Amount:      decimal.NewFromInt(500),
	}
	if err := s.AddTransactions(ctx, []ledger.Transaction{seed}); err != nil {
		return nil, err
	}
	return accs, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
