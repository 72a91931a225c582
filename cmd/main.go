package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/reporting/internal/fold"
	httpapi "github.com/openbooks/reporting/internal/httpapi/v1"
	"github.com/openbooks/reporting/internal/ledger"
	"github.com/openbooks/reporting/internal/storage/memory"
	pgstore "github.com/openbooks/reporting/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	var foldOpts []fold.Option
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("OPENING_BALANCES"))); v == "1" || v == "true" || v == "yes" {
		foldOpts = append(foldOpts, fold.WithOpeningBalances())
		logger.Info("opening balances enabled as zero-activity fallback")
	}

	var srvMux http.Handler
	var closeFn func()

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		// Use Postgres feed store when DATABASE_URL is provided
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		// Optional dev seed for compose/local
		if dev := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED"))); dev == "1" || dev == "true" || dev == "yes" {
			accs, err := pg.SeedDev(ctx)
			if err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logDevSeed(logger, "postgres", accs)
			}
		}
		srvMux = httpapi.New(pg, logger, foldOpts...).Handler()
		logger.Info("feed backend: postgres")
	} else {
		// Default to in-memory feeds with a small dev seed
		store := memory.New()
		accs := devChart()
		for _, a := range accs {
			store.SeedAccount(a)
		}
		store.SeedTransaction(ledger.Transaction{
			ID:          uuid.New(),
			Date:        time.Now().UTC(),
			Kind:        ledger.KindLegacyTransfer,
			Description: "dev seed",
			FromAccount: "40100",
			ToAccount:   "10100",
			Amount:      decimal.NewFromInt(500),
		})
		logDevSeed(logger, "memory", accs)
		srvMux = httpapi.New(store, logger, foldOpts...).Handler()
		logger.Info("feed backend: memory")
	}

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           srvMux,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("reporting service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// devChart is the minimal chart seeded into the in-memory backend.
func devChart() []ledger.Account {
	return []ledger.Account{
		{Code: "10100", Name: "Cash - Operating", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		{Code: "11000", Name: "Accounts Receivable", Category: ledger.CategoryAssets, NormalBalance: ledger.SideDebit},
		{Code: "20100", Name: "Accounts Payable", Category: ledger.CategoryLiabilities, NormalBalance: ledger.SideCredit},
		{Code: "30100", Name: "Owner Contributions", Category: ledger.CategoryEquity, NormalBalance: ledger.SideCredit},
		{Code: "40100", Name: "Subscription Revenue", Category: ledger.CategoryRevenue, NormalBalance: ledger.SideCredit},
		{Code: "50100", Name: "Hosting COGS", Category: ledger.CategoryCOGS, NormalBalance: ledger.SideDebit},
		{Code: "60100", Name: "Payroll Expense", Category: ledger.CategoryExpense, NormalBalance: ledger.SideDebit},
	}
}

// logDevSeed emits structured logs with the seeded account codes
func logDevSeed(l *slog.Logger, backend string, accs []ledger.Account) {
	codes := make([]string, 0, len(accs))
	for _, a := range accs {
		codes = append(codes, a.Code)
	}
	l.Info("DEV seed ("+backend+")", "accounts", codes)
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
