package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/HeyDYF/Money-Manager/internal/config"
	"github.com/HeyDYF/Money-Manager/internal/events"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/metrics"
	"github.com/HeyDYF/Money-Manager/internal/services"
	"github.com/HeyDYF/Money-Manager/internal/validator"
)

// App is the fully wired API.
type App struct {
	Router  *gin.Engine
	Ledger  *ledger.Manager
	Hub     *events.Hub
	Metrics *metrics.Registry

	backend *Backend
}

// New opens the configured store, loads the ledger and mounts the routes.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	validator.Register()

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := metrics.New()
	hub := events.NewHub(cfg.EventBuffer)

	manager, err := ledger.Open(ctx, backend.Store,
		ledger.WithDefaultCurrency(cfg.DefaultCurrency),
		ledger.WithNotifier(hub),
	)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	rates := exchange.NewClient(exchange.Config{
		BaseURL:       cfg.ExchangeAPIURL,
		APIKey:        cfg.ExchangeAPIKey,
		Base:          cfg.ExchangeBaseCurrency,
		Timeout:       cfg.ExchangeTimeout,
		CacheTTL:      cfg.ExchangeCacheTTL,
		RatePerSecond: cfg.ExchangeRateLimit,
	})
	rates.OnFetch(reg.ObserveExchangeFetch)

	router := NewRouter(Dependencies{
		Ledger:      services.NewLedgerService(manager, reg),
		Exchange:    services.NewExchangeService(rates),
		Analytics:   services.NewAnalyticsService(manager),
		Audit:       services.NewAuditService(backend.DB),
		Hub:         hub,
		Metrics:     reg,
		CORSOrigins: cfg.CORSOrigins,
	})

	return &App{
		Router:  router,
		Ledger:  manager,
		Hub:     hub,
		Metrics: reg,
		backend: backend,
	}, nil
}

// Close disconnects subscribers and releases the store.
func (a *App) Close() error {
	a.Hub.Close()
	return a.backend.Close()
}
