// Package ledger owns the balance, currency, transaction list and unlocked
// achievements of the single implicit user, and keeps them consistent.
//
// The balance is authoritative. Transactions are deltas applied to whatever
// the balance was when they were recorded, so SetInitialBalance after
// transactions exist re-bases the ledger rather than being checked against
// the transaction sum.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/storage"
	"github.com/HeyDYF/Money-Manager/internal/uuid"
)

// DefaultCurrency is used when nothing is stored and no option overrides it.
const DefaultCurrency = "CNY"

// ErrTransactionNotFound is returned by update and delete for unknown ids.
// The ledger is left untouched.
var ErrTransactionNotFound = errors.New("ledger: transaction not found")

// IDGenerator hands out transaction ids.
type IDGenerator interface {
	Next() string
}

// Notifier receives achievement ids the moment they are unlocked. Calls are
// made after the new state is persisted and outside the manager's lock.
type Notifier interface {
	AchievementsUnlocked(ids []models.AchievementID)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ids []models.AchievementID)

// AchievementsUnlocked calls f.
func (f NotifierFunc) AchievementsUnlocked(ids []models.AchievementID) { f(ids) }

// Change is the outcome of a mutation.
type Change struct {
	State models.Snapshot
	// Transaction is the record that was added, updated or deleted.
	Transaction models.Transaction
	// Unlocked lists achievements unlocked by this mutation, in catalog order.
	Unlocked []models.AchievementID
}

// Manager is the ledger state container. Every mutation writes the full
// snapshot to the store before it becomes visible; a failed write leaves
// the in-memory state as it was.
type Manager struct {
	mu        sync.Mutex
	store     storage.Store
	state     models.Snapshot
	ids       IDGenerator
	notifiers []Notifier
	log       *zap.SugaredLogger
	currency  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithDefaultCurrency sets the currency used when none is stored.
func WithDefaultCurrency(code string) Option {
	return func(m *Manager) {
		if code != "" {
			m.currency = code
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(m *Manager) { m.ids = g }
}

// WithNotifier registers a receiver for unlock events. May be repeated.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifiers = append(m.notifiers, n) }
}

// WithLogger sets the logger. Defaults to the global "ledger" logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Manager) { m.log = l }
}

// Open initializes a manager from store. Absent or malformed keys fall back
// to zero balance, the default currency, no transactions and no
// achievements. A stored initialBalance key seeds the balance once and is
// then removed.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:    store,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ids == nil {
		m.ids = uuid.NewGenerator()
	}
	if m.log == nil {
		m.log = logger.Named("ledger")
	}

	state, err := loadSnapshot(ctx, store, m.currency, m.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	if err := m.migrateInitialBalance(ctx, &state); err != nil {
		return nil, err
	}

	m.state = state
	m.log.Debugw("ledger loaded",
		"balance", state.Balance.String(),
		"currency", state.Currency,
		"transactions", len(state.Transactions),
		"achievements", len(state.Achievements),
	)
	return m, nil
}

func (m *Manager) migrateInitialBalance(ctx context.Context, state *models.Snapshot) error {
	raw, ok, err := m.store.Get(ctx, KeyInitialBalance)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", KeyInitialBalance, err)
	}
	if !ok {
		return nil
	}

	amount, perr := parseAmount(raw)
	if perr != nil {
		m.log.Warnw("dropping malformed initial balance", "value", raw, "error", perr)
	} else {
		if err := m.store.SetMany(ctx, map[string]string{KeyBalance: amount.String()}); err != nil {
			return fmt.Errorf("failed to apply %s: %w", KeyInitialBalance, err)
		}
		state.Balance = amount
		m.log.Infow("applied initial balance", "balance", amount.String())
	}

	if err := m.store.Delete(ctx, KeyInitialBalance); err != nil {
		return fmt.Errorf("failed to clear %s: %w", KeyInitialBalance, err)
	}
	return nil
}

// State returns a copy of the current ledger state.
func (m *Manager) State() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Transaction looks a record up by id.
func (m *Manager) Transaction(id string) (models.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.state.Transactions, id)
	if i < 0 {
		return models.Transaction{}, false
	}
	return m.state.Transactions[i], true
}

// SetInitialBalance replaces balance and currency. The transaction list is
// not consulted; the currency is stored verbatim.
func (m *Manager) SetInitialBalance(ctx context.Context, amount decimal.Decimal, currency string) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.state.Clone()
	next.Balance = amount
	next.Currency = currency

	if err := m.commit(ctx, next); err != nil {
		return Change{}, err
	}
	return Change{State: next.Clone()}, nil
}

// AddTransaction assigns a fresh id, prepends the record and applies its
// signed amount to the balance.
func (m *Manager) AddTransaction(ctx context.Context, in models.TransactionInput) (Change, error) {
	return m.mutate(ctx, func(next *models.Snapshot) (models.Transaction, error) {
		id := m.ids.Next()
		for indexOf(next.Transactions, id) >= 0 {
			id = m.ids.Next()
		}
		tx := models.NewTransaction(id, in)

		next.Transactions = slices.Insert(next.Transactions, 0, tx)
		next.Balance = next.Balance.Add(tx.SignedAmount())
		return tx, nil
	})
}

// UpdateTransaction replaces the record with the same id in place and moves
// the balance by the difference of the signed amounts.
func (m *Manager) UpdateTransaction(ctx context.Context, updated models.Transaction) (Change, error) {
	return m.mutate(ctx, func(next *models.Snapshot) (models.Transaction, error) {
		i := indexOf(next.Transactions, updated.ID)
		if i < 0 {
			return models.Transaction{}, ErrTransactionNotFound
		}
		old := next.Transactions[i]

		delta := updated.SignedAmount().Sub(old.SignedAmount())
		next.Transactions[i] = updated
		next.Balance = next.Balance.Add(delta)
		return updated, nil
	})
}

// DeleteTransaction removes the record and reverses its signed amount.
func (m *Manager) DeleteTransaction(ctx context.Context, id string) (Change, error) {
	return m.mutate(ctx, func(next *models.Snapshot) (models.Transaction, error) {
		i := indexOf(next.Transactions, id)
		if i < 0 {
			return models.Transaction{}, ErrTransactionNotFound
		}
		removed := next.Transactions[i]

		next.Transactions = slices.Delete(next.Transactions, i, i+1)
		next.Balance = next.Balance.Sub(removed.SignedAmount())
		return removed, nil
	})
}

// ImportData replaces the whole ledger with s. s is trusted to be
// self-consistent; nothing is recomputed.
func (m *Manager) ImportData(ctx context.Context, s models.Snapshot) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := s.Clone()
	next.Achievements = dedupe(next.Achievements)

	if err := m.commit(ctx, next); err != nil {
		return Change{}, err
	}
	return Change{State: next.Clone()}, nil
}

// Export returns the snapshot that is currently persisted.
func (m *Manager) Export() models.Snapshot {
	return m.State()
}

// mutate runs a structural change on a copy of the state, evaluates
// achievements, persists, commits and finally notifies.
func (m *Manager) mutate(ctx context.Context, apply func(next *models.Snapshot) (models.Transaction, error)) (Change, error) {
	m.mu.Lock()

	next := m.state.Clone()
	tx, err := apply(&next)
	if err != nil {
		m.mu.Unlock()
		return Change{}, err
	}

	var unlocked []models.AchievementID
	next.Achievements, unlocked = Evaluate(next.Transactions, next.Balance, next.Achievements)

	if err := m.commit(ctx, next); err != nil {
		m.mu.Unlock()
		return Change{}, err
	}
	change := Change{State: next.Clone(), Transaction: tx, Unlocked: unlocked}
	notifiers := m.notifiers
	m.mu.Unlock()

	if len(unlocked) > 0 {
		m.log.Infow("achievements unlocked", "achievements", unlocked)
		for _, n := range notifiers {
			n.AchievementsUnlocked(slices.Clone(unlocked))
		}
	}
	return change, nil
}

// commit persists next and makes it the current state. Caller holds mu.
func (m *Manager) commit(ctx context.Context, next models.Snapshot) error {
	entries, err := encodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := m.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	m.state = next
	return nil
}

func indexOf(txs []models.Transaction, id string) int {
	return slices.IndexFunc(txs, func(t models.Transaction) bool { return t.ID == id })
}
