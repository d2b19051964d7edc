package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/HeyDYF/Money-Manager/internal/config"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/server"
	"github.com/HeyDYF/Money-Manager/internal/services"
	"github.com/HeyDYF/Money-Manager/internal/storage"
)

// cli carries what every subcommand needs. store and rates are preset by
// tests; otherwise they come from configuration.
type cli struct {
	storeDriver string
	sqlitePath  string

	cfg       *config.Config
	store     storage.Store
	rates     exchange.RateSource
	backend   *server.Backend
	manager   *ledger.Manager
	ledger    services.LedgerServicer
	analytics services.AnalyticsServicer
}

func newRootCmd(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "moneyctl",
		Short: "Manage the Money Manager ledger",
		Long: `moneyctl reads and changes the ledger directly through the configured
store (STORE_DRIVER). Amounts are decimal strings; the balance moves by
+amount for income and -amount for expense.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.open(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
	}

	root.PersistentFlags().StringVar(&app.storeDriver, "store", "", "Store driver override: memory, sqlite, postgres, redis")
	root.PersistentFlags().StringVar(&app.sqlitePath, "sqlite-path", "", "SQLite file override")

	root.AddCommand(
		newInitCmd(app),
		newBalanceCmd(app),
		newTxCmd(app),
		newAchievementsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newRatesCmd(app),
		newReportCmd(app),
	)
	return root
}

func (app *cli) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if app.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		app.cfg = cfg
	}
	if app.storeDriver != "" {
		app.cfg.StoreDriver = strings.ToLower(app.storeDriver)
	}
	if app.sqlitePath != "" {
		app.cfg.SQLitePath = app.sqlitePath
	}
	// Keep the terminal clean unless asked otherwise.
	level := app.cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logger.Init(app.cfg.Env, level)

	store := app.store
	if store == nil {
		backend, err := server.OpenBackend(ctx, app.cfg)
		if err != nil {
			return err
		}
		app.backend = backend
		store = backend.Store
	}

	manager, err := ledger.Open(ctx, store, ledger.WithDefaultCurrency(app.cfg.DefaultCurrency))
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	app.manager = manager
	app.ledger = services.NewLedgerService(manager, nil)
	app.analytics = services.NewAnalyticsService(manager)

	if app.rates == nil {
		app.rates = exchange.NewClient(exchange.Config{
			BaseURL:       app.cfg.ExchangeAPIURL,
			APIKey:        app.cfg.ExchangeAPIKey,
			Base:          app.cfg.ExchangeBaseCurrency,
			Timeout:       app.cfg.ExchangeTimeout,
			CacheTTL:      app.cfg.ExchangeCacheTTL,
			RatePerSecond: app.cfg.ExchangeRateLimit,
		})
	}
	return nil
}

func (app *cli) close() error {
	if app.backend == nil {
		return nil
	}
	err := app.backend.Close()
	app.backend = nil
	return err
}

// parseDate accepts a plain date or an RFC 3339 timestamp. Empty means now.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC 3339)", s)
}
