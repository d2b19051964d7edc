package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/currency"
	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/metrics"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/pagination"
)

// Mutation names used for metrics and logs.
const (
	OpSetInitialBalance = "set_initial_balance"
	OpAddTransaction    = "add_transaction"
	OpUpdateTransaction = "update_transaction"
	OpDeleteTransaction = "delete_transaction"
	OpImportData        = "import_data"
)

// ledgerService handles ledger business logic on top of ledger.Manager.
type ledgerService struct {
	manager *ledger.Manager
	metrics *metrics.Registry
	now     func() time.Time
}

// NewLedgerService creates a new LedgerServicer. reg may be nil.
func NewLedgerService(manager *ledger.Manager, reg *metrics.Registry) LedgerServicer {
	return &ledgerService{manager: manager, metrics: reg, now: time.Now}
}

// GetLedger returns the current state for display.
func (s *ledgerService) GetLedger() *LedgerView {
	return newLedgerView(s.manager.State())
}

// SetInitialBalance replaces balance and currency.
func (s *ledgerService) SetInitialBalance(ctx context.Context, amount decimal.Decimal, currencyCode string) (*LedgerView, error) {
	currencyCode = strings.TrimSpace(currencyCode)
	if currencyCode == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency is required")
	}

	change, err := s.manager.SetInitialBalance(ctx, amount, currencyCode)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	s.observe(OpSetInitialBalance, change)
	return newLedgerView(change.State), nil
}

// AddTransaction records a new transaction. A zero date defaults to now.
func (s *ledgerService) AddTransaction(ctx context.Context, in models.TransactionInput) (*ledger.Change, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}

	change, err := s.manager.AddTransaction(ctx, in)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	s.observe(OpAddTransaction, change)
	return &change, nil
}

// UpdateTransaction replaces the transaction with the given id.
func (s *ledgerService) UpdateTransaction(ctx context.Context, id string, in models.TransactionInput) (*ledger.Change, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}

	change, err := s.manager.UpdateTransaction(ctx, models.NewTransaction(id, in))
	if err != nil {
		return nil, mapLedgerError(err)
	}
	s.observe(OpUpdateTransaction, change)
	return &change, nil
}

// DeleteTransaction removes a transaction and reverses its effect.
func (s *ledgerService) DeleteTransaction(ctx context.Context, id string) (*ledger.Change, error) {
	change, err := s.manager.DeleteTransaction(ctx, id)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	s.observe(OpDeleteTransaction, change)
	return &change, nil
}

// GetTransaction looks a transaction up by id.
func (s *ledgerService) GetTransaction(id string) (*models.Transaction, error) {
	tx, ok := s.manager.Transaction(id)
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &tx, nil
}

// ListTransactions pages through transactions, most recent first.
func (s *ledgerService) ListTransactions(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	resp := pagination.Slice(s.manager.State().Transactions, page)
	return &resp, nil
}

// ImportData replaces the ledger with snapshot after a structural check.
func (s *ledgerService) ImportData(ctx context.Context, snapshot models.Snapshot) (*LedgerView, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	change, err := s.manager.ImportData(ctx, snapshot)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	s.observe(OpImportData, change)
	return newLedgerView(change.State), nil
}

// Export returns the full snapshot.
func (s *ledgerService) Export() models.Snapshot {
	return s.manager.Export()
}

// GetAchievements returns the catalog with unlock flags.
func (s *ledgerService) GetAchievements() []AchievementStatus {
	state := s.manager.State()
	catalog := ledger.Catalog()

	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, AchievementStatus{Achievement: a, Unlocked: state.HasAchievement(a.ID)})
	}
	return out
}

func (s *ledgerService) normalize(in models.TransactionInput) (models.TransactionInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !in.Type.Valid() {
		return in, apperrors.ErrInvalidTransactionType
	}
	if in.Category != "" && !in.Category.Valid() {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category "+string(in.Category))
	}
	if in.Date.IsZero() {
		in.Date = s.now().UTC()
	}
	return in, nil
}

func (s *ledgerService) observe(op string, change ledger.Change) {
	logger.Get().Infow("ledger mutation",
		"operation", op,
		"transaction_id", change.Transaction.ID,
		"balance", change.State.Balance.String(),
		"unlocked", change.Unlocked,
	)
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveMutation(op)
	for _, id := range change.Unlocked {
		s.metrics.ObserveUnlocked(string(id))
	}
}

func validateSnapshot(snapshot models.Snapshot) error {
	if strings.TrimSpace(snapshot.Currency) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidSnapshot, "currency is required")
	}
	seen := make(map[string]bool, len(snapshot.Transactions))
	for _, tx := range snapshot.Transactions {
		if tx.ID == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidSnapshot, "transaction id is required")
		}
		if seen[tx.ID] {
			return apperrors.WithMessage(apperrors.ErrInvalidSnapshot, "duplicate transaction id "+tx.ID)
		}
		seen[tx.ID] = true
		if !tx.Type.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidSnapshot, "invalid type for transaction "+tx.ID)
		}
	}
	return nil
}

func mapLedgerError(err error) error {
	if errors.Is(err, ledger.ErrTransactionNotFound) {
		return apperrors.Wrap(apperrors.ErrTransactionNotFound, err)
	}
	return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
}

func newLedgerView(state models.Snapshot) *LedgerView {
	return &LedgerView{
		Balance:          state.Balance,
		FormattedBalance: currency.Format(state.Balance, state.Currency),
		Currency:         state.Currency,
		CurrencyDisplay:  currency.Display(state.Currency),
		Transactions:     state.Transactions,
		Achievements:     state.Achievements,
	}
}
