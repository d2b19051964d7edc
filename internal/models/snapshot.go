package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// AchievementID identifies an entry of the achievement catalog.
type AchievementID string

// Snapshot is the full ledger state as it is persisted, exported and imported.
type Snapshot struct {
	Balance      decimal.Decimal `json:"balance" yaml:"balance"`
	Currency     string          `json:"currency" yaml:"currency"`
	Transactions []Transaction   `json:"transactions" yaml:"transactions"`
	Achievements []AchievementID `json:"achievements" yaml:"achievements"`
}

// Clone returns a deep copy so callers can't alias the ledger's slices.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Transactions = slices.Clone(s.Transactions)
	if out.Transactions == nil {
		out.Transactions = []Transaction{}
	}
	out.Achievements = slices.Clone(s.Achievements)
	if out.Achievements == nil {
		out.Achievements = []AchievementID{}
	}
	return out
}

// HasAchievement reports whether id is unlocked in s.
func (s Snapshot) HasAchievement(id AchievementID) bool {
	return slices.Contains(s.Achievements, id)
}
