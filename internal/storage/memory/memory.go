package memory

// Package memory provides a simple in-memory feed store used for development
// and tests. It keeps code paths easy to follow while allowing a real DB to
// be plugged in behind the same interface.
import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/openbooks/reporting/internal/errs"
	"github.com/openbooks/reporting/internal/ledger"
)

// Store is an in-memory implementation of the account and transaction feeds.
// It is guarded by an RWMutex for concurrent reads/writes and bumps a
// version counter on every mutation so snapshot caches can invalidate.
type Store struct {
	mu      sync.RWMutex
	version uint64
	byCode  map[string]ledger.Account
	codes   []string // sorted for deterministic listings
	txs     []ledger.Transaction
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{byCode: make(map[string]ledger.Account)}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedAccount(a ledger.Account) { _ = s.AppendAccount(context.Background(), a) }
func (s *Store) SeedTransaction(tx ledger.Transaction) {
	_ = s.AddTransactions(context.Background(), []ledger.Transaction{tx})
}

// Reset clears all state, for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	s.byCode = map[string]ledger.Account{}
	s.codes = nil
	s.txs = nil
	s.version++
	s.mu.Unlock()
}

// Accounts implements statement.DataSource.
func (s *Store) Accounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, 0, len(s.codes))
	for _, code := range s.codes {
		out = append(out, s.byCode[code])
	}
	return out, nil
}

// Transactions implements statement.DataSource.
func (s *Store) Transactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

// Version implements statement.DataSource. It moves on every mutation.
func (s *Store) Version(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}

// AppendAccount adds an account to the chart. The chart is append-only;
// duplicate codes conflict.
func (s *Store) AppendAccount(_ context.Context, a ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Code == "" {
		return errs.ErrInvalid
	}
	if _, ok := s.byCode[a.Code]; ok {
		return fmt.Errorf("account %s: %w", a.Code, errs.ErrDuplicateCode)
	}
	s.byCode[a.Code] = a
	i := sort.SearchStrings(s.codes, a.Code)
	s.codes = append(s.codes, "")
	copy(s.codes[i+1:], s.codes[i:])
	s.codes[i] = a.Code
	s.version++
	return nil
}

// GetAccount returns one account by code.
func (s *Store) GetAccount(_ context.Context, code string) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byCode[code]
	if !ok {
		return ledger.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// AddTransactions appends posted transactions to the ledger. Transactions
// are immutable once added.
func (s *Store) AddTransactions(_ context.Context, txs []ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, txs...)
	s.version++
	return nil
}
