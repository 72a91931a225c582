// Package v1 wires the HTTP surface of the reporting engine.
// It keeps handlers thin, delegating derivation to the statement service.
package v1

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/openbooks/reporting/internal/fold"
	"github.com/openbooks/reporting/internal/statement"
)

// Server wires handlers and middleware using Chi.
type Server struct {
	svc   *statement.Service
	store FeedStore
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware. Fold options
// (e.g. fold.WithOpeningBalances) apply to every statement render.
func New(store FeedStore, logger *slog.Logger, opts ...fold.Option) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		svc:   statement.New(store, logger, opts...),
		store: store,
		log:   logger,
		rt:    r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Derived outputs (v1)
	s.rt.Get("/v1/balances", s.getBalances)
	s.rt.Get("/v1/reports/pnl", s.getProfitAndLoss)
	s.rt.Get("/v1/reports/balance-sheet", s.getBalanceSheet)
	s.rt.Get("/v1/reports/cash-flow", s.getCashFlow)
	s.rt.Get("/v1/reports/kpis", s.getExecutiveSummary)
	s.rt.Get("/v1/reports/analytics", s.getAnalytics)
	s.rt.Get("/v1/reports/general-ledger", s.getGeneralLedger)
	s.rt.Post("/v1/reports/reconciliation", s.postReconciliation)
	// Feeds (v1)
	s.rt.Post("/v1/accounts", s.postAccount)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/{code}", s.getAccount)
	s.rt.Post("/v1/transactions", s.postTransactions)
	s.rt.Get("/v1/transactions", s.listTransactions)
	// Health (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
