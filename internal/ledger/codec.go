package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/storage"
)

// Store keys.
const (
	KeyBalance        = "balance"
	KeyCurrency       = "currency"
	KeyTransactions   = "transactions"
	KeyAchievements   = "achievements"
	KeyInitialBalance = "initialBalance"
)

// encodeSnapshot renders every persisted field of s as store entries.
func encodeSnapshot(s models.Snapshot) (map[string]string, error) {
	txs := s.Transactions
	if txs == nil {
		txs = []models.Transaction{}
	}
	txJSON, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}

	ach := s.Achievements
	if ach == nil {
		ach = []models.AchievementID{}
	}
	achJSON, err := json.Marshal(ach)
	if err != nil {
		return nil, fmt.Errorf("encoding achievements: %w", err)
	}

	return map[string]string{
		KeyBalance:      s.Balance.String(),
		KeyCurrency:     s.Currency,
		KeyTransactions: string(txJSON),
		KeyAchievements: string(achJSON),
	}, nil
}

// loadSnapshot reads the persisted fields, substituting defaults for absent
// or malformed values. Only store failures are returned as errors.
func loadSnapshot(ctx context.Context, store storage.Store, defaultCurrency string, log *zap.SugaredLogger) (models.Snapshot, error) {
	s := models.Snapshot{
		Balance:      decimal.Zero,
		Currency:     defaultCurrency,
		Transactions: []models.Transaction{},
		Achievements: []models.AchievementID{},
	}

	raw, ok, err := store.Get(ctx, KeyBalance)
	if err != nil {
		return s, err
	}
	if ok {
		if b, perr := parseAmount(raw); perr == nil {
			s.Balance = b
		} else {
			log.Warnw("ignoring malformed stored balance", "value", raw, "error", perr)
		}
	}

	raw, ok, err = store.Get(ctx, KeyCurrency)
	if err != nil {
		return s, err
	}
	if ok && raw != "" {
		s.Currency = raw
	}

	raw, ok, err = store.Get(ctx, KeyTransactions)
	if err != nil {
		return s, err
	}
	if ok {
		var txs []models.Transaction
		if jerr := json.Unmarshal([]byte(raw), &txs); jerr != nil {
			log.Warnw("ignoring malformed stored transactions", "error", jerr)
		} else if txs != nil {
			s.Transactions = txs
		}
	}

	raw, ok, err = store.Get(ctx, KeyAchievements)
	if err != nil {
		return s, err
	}
	if ok {
		var ids []models.AchievementID
		if jerr := json.Unmarshal([]byte(raw), &ids); jerr != nil {
			log.Warnw("ignoring malformed stored achievements", "error", jerr)
		} else {
			s.Achievements = dedupe(ids)
		}
	}

	return s, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

func dedupe(ids []models.AchievementID) []models.AchievementID {
	out := make([]models.AchievementID, 0, len(ids))
	seen := make(map[models.AchievementID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
