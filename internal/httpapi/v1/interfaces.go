package v1

import (
	"context"

	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/statement"
)

// FeedWriter abstracts the append paths of the feed store.
type FeedWriter interface {
	// AppendAccount adds one account to the chart. The chart is append-only.
	AppendAccount(ctx context.Context, a ledger.Account) error
	// AddTransactions appends posted transactions to the ledger.
	AddTransactions(ctx context.Context, txs []ledger.Transaction) error
}

// AccountReader abstracts single-account reads.
type AccountReader interface {
	// GetAccount returns one account by code.
	GetAccount(ctx context.Context, code string) (ledger.Account, error)
}

// FeedStore composes everything the HTTP surface needs from a storage
// backend. Both the in-memory and the postgres store satisfy it.
type FeedStore interface {
	statement.DataSource
	FeedWriter
	AccountReader
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
