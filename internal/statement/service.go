package statement

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/openbooks/reporting/internal/aggregate"
	"github.com/openbooks/reporting/internal/fold"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/registry"
)

// DataSource supplies the two external feeds the engine consumes. The
// version increments whenever either collection changes; it drives cache
// invalidation.
type DataSource interface {
	Accounts(ctx context.Context) ([]ledger.Account, error)
	Transactions(ctx context.Context) ([]ledger.Transaction, error)
	Version(ctx context.Context) (uint64, error)
}

// snapshot is one immutable fold of the inputs. Readers get the whole
// snapshot or none of it; there is no partially-updated state to observe.
type snapshot struct {
	version uint64
	reg     *registry.Registry
	txs     []ledger.Transaction
	result  fold.Result
}

// Service renders every statement view from a shared folded-balance
// snapshot, recomputed only when the inputs' version moves.
type Service struct {
	src  DataSource
	agg  *aggregate.Aggregator
	log  *slog.Logger
	opts []fold.Option
	cur  atomic.Pointer[snapshot]
}

// New constructs the statement service. Fold options (e.g.
// fold.WithOpeningBalances) apply to every render.
func New(src DataSource, log *slog.Logger, opts ...fold.Option) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{src: src, agg: aggregate.New(log), log: log, opts: opts}
}

// current returns the snapshot for the inputs' present version, folding
// afresh when stale. Concurrent callers may fold redundantly; the result is
// identical either way and the pointer swap is atomic.
func (s *Service) current(ctx context.Context) (*snapshot, error) {
	version, err := s.src.Version(ctx)
	if err != nil {
		return nil, err
	}
	if snap := s.cur.Load(); snap != nil && snap.version == version {
		return snap, nil
	}
	accounts, err := s.src.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := registry.New(accounts)
	if err != nil {
		return nil, err
	}
	txs, err := s.src.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	result := fold.Fold(reg, txs, s.opts...)
	if len(result.Warnings) > 0 {
		s.log.Warn("fold emitted data-quality warnings", "count", len(result.Warnings))
	}
	snap := &snapshot{version: version, reg: reg, txs: txs, result: result}
	s.cur.Store(snap)
	return snap, nil
}

// Balances returns the folded balance map keyed by account code.
func (s *Service) Balances(ctx context.Context) (map[string]ledger.FoldedBalance, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, nil, err
	}
	return snap.result.Balances, snap.result.Warnings, nil
}

// ProfitAndLoss renders the P&L view.
func (s *Service) ProfitAndLoss(ctx context.Context) (ProfitAndLoss, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return ProfitAndLoss{}, nil, err
	}
	return BuildProfitAndLoss(snap.reg, snap.result.Balances, s.agg), snap.result.Warnings, nil
}

// BalanceSheet renders the balance sheet with the Current Year Earnings fold.
func (s *Service) BalanceSheet(ctx context.Context) (BalanceSheet, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return BalanceSheet{}, nil, err
	}
	pnl := BuildProfitAndLoss(snap.reg, snap.result.Balances, s.agg)
	return BuildBalanceSheet(snap.reg, snap.result.Balances, s.agg, pnl.NetIncome), snap.result.Warnings, nil
}

// CashFlow renders the cash flow statement.
func (s *Service) CashFlow(ctx context.Context) (CashFlow, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return CashFlow{}, nil, err
	}
	pnl := BuildProfitAndLoss(snap.reg, snap.result.Balances, s.agg)
	return BuildCashFlow(snap.reg, snap.result.Balances, s.agg, pnl.NetIncome), snap.result.Warnings, nil
}

// ExecutiveSummary renders the KPI panel.
func (s *Service) ExecutiveSummary(ctx context.Context) (ExecutiveSummary, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return ExecutiveSummary{}, nil, err
	}
	return BuildExecutiveSummary(snap.reg, snap.result.Balances, s.agg), snap.result.Warnings, nil
}

// GeneralLedger renders the per-account transaction browser.
func (s *Service) GeneralLedger(ctx context.Context, code string) (GeneralLedgerView, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return GeneralLedgerView{}, nil, err
	}
	view, err := BuildGeneralLedger(snap.reg, snap.txs, code)
	if err != nil {
		return GeneralLedgerView{}, nil, err
	}
	return view, snap.result.Warnings, nil
}

// Reconciliation renders the bank reconciliation view for a cash account.
func (s *Service) Reconciliation(ctx context.Context, code string, bank []BankLine) (ReconciliationView, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return ReconciliationView{}, nil, err
	}
	view, err := BuildReconciliation(snap.reg, snap.txs, s.agg, code, bank)
	if err != nil {
		return ReconciliationView{}, nil, err
	}
	return view, snap.result.Warnings, nil
}

// Analytics renders the advanced analytics panel.
func (s *Service) Analytics(ctx context.Context) (Analytics, []fold.Warning, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return Analytics{}, nil, err
	}
	return BuildAnalytics(snap.reg, snap.result.Balances, s.agg), snap.result.Warnings, nil
}

// Registry exposes the current chart of accounts snapshot.
func (s *Service) Registry(ctx context.Context) (*registry.Registry, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.reg, nil
}
