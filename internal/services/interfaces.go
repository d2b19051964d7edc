package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/analytics"
	"github.com/HeyDYF/Money-Manager/internal/currency"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/pagination"
)

// LedgerView is the ledger state decorated for display.
type LedgerView struct {
	Balance          decimal.Decimal        `json:"balance"`
	FormattedBalance string                 `json:"formatted_balance"`
	Currency         string                 `json:"currency"`
	CurrencyDisplay  string                 `json:"currency_display"`
	Transactions     []models.Transaction   `json:"transactions"`
	Achievements     []models.AchievementID `json:"achievements"`
}

// AchievementStatus is a catalog entry with its unlock flag.
type AchievementStatus struct {
	ledger.Achievement
	Unlocked bool `json:"unlocked"`
}

// LedgerServicer defines the contract for ledger business logic.
type LedgerServicer interface {
	GetLedger() *LedgerView
	SetInitialBalance(ctx context.Context, amount decimal.Decimal, currencyCode string) (*LedgerView, error)
	AddTransaction(ctx context.Context, in models.TransactionInput) (*ledger.Change, error)
	UpdateTransaction(ctx context.Context, id string, in models.TransactionInput) (*ledger.Change, error)
	DeleteTransaction(ctx context.Context, id string) (*ledger.Change, error)
	GetTransaction(id string) (*models.Transaction, error)
	ListTransactions(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	ImportData(ctx context.Context, snapshot models.Snapshot) (*LedgerView, error)
	Export() models.Snapshot
	GetAchievements() []AchievementStatus
}

// ExchangeServicer defines the contract for exchange-rate lookups.
type ExchangeServicer interface {
	Quote(ctx context.Context, from, to string, amount decimal.Decimal) (*exchange.Quote, error)
	Rates(ctx context.Context) (*exchange.RateTable, error)
	Currencies() []currency.Currency
}

// AnalyticsReport is a filtered summary of the ledger.
type AnalyticsReport struct {
	Query    string          `json:"query"`
	Range    analytics.Range `json:"range"`
	Currency string          `json:"currency"`
	analytics.Summary
}

// AnalyticsServicer defines the contract for reporting.
type AnalyticsServicer interface {
	GetSummary(query, timeRange string) (*AnalyticsReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
