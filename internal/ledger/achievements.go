package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/models"
)

// Achievement identifiers.
const (
	AchievementFirstTransaction  models.AchievementID = "first_transaction"
	AchievementTransactionStreak models.AchievementID = "transaction_streak"
	AchievementSavingsMilestone  models.AchievementID = "savings_milestone"
	AchievementDiversePortfolio  models.AchievementID = "diverse_portfolio"
	AchievementBigSpender        models.AchievementID = "big_spender"
)

const (
	streakDays        = 7
	diverseCategories = 5
)

var (
	savingsThreshold = decimal.NewFromInt(10000)
	bigSpendAmount   = decimal.NewFromInt(1000)
)

// Achievement is a catalog entry: a permanent flag unlocked the first time
// its predicate holds over the ledger.
type Achievement struct {
	ID          models.AchievementID `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`

	check func(txs []models.Transaction, balance decimal.Decimal) bool
}

var catalog = []Achievement{
	{
		ID:          AchievementFirstTransaction,
		Title:       "First Step",
		Description: "Record your first transaction",
		check: func(txs []models.Transaction, _ decimal.Decimal) bool {
			return len(txs) > 0
		},
	},
	{
		ID:          AchievementTransactionStreak,
		Title:       "On a Roll",
		Description: "Record transactions on 7 consecutive days",
		check: func(txs []models.Transaction, _ decimal.Decimal) bool {
			return latestStreak(txs) >= streakDays
		},
	},
	{
		ID:          AchievementSavingsMilestone,
		Title:       "Saver",
		Description: "Reach a balance of 10,000",
		check: func(_ []models.Transaction, balance decimal.Decimal) bool {
			return balance.GreaterThanOrEqual(savingsThreshold)
		},
	},
	{
		ID:          AchievementDiversePortfolio,
		Title:       "Well Rounded",
		Description: "Use 5 different categories",
		check: func(txs []models.Transaction, _ decimal.Decimal) bool {
			return distinctCategories(txs) >= diverseCategories
		},
	},
	{
		ID:          AchievementBigSpender,
		Title:       "Big Ticket",
		Description: "Record a single transaction of 1,000 or more",
		check: func(txs []models.Transaction, _ decimal.Decimal) bool {
			return slices.ContainsFunc(txs, func(t models.Transaction) bool {
				return t.Amount.GreaterThanOrEqual(bigSpendAmount)
			})
		},
	},
}

// Catalog returns the achievements in evaluation order.
func Catalog() []Achievement {
	return slices.Clone(catalog)
}

// Evaluate runs every predicate not yet unlocked and returns the grown set
// together with the ids unlocked by this call. The input set is not modified.
func Evaluate(txs []models.Transaction, balance decimal.Decimal, unlocked []models.AchievementID) (all, newly []models.AchievementID) {
	all = slices.Clone(unlocked)
	for _, a := range catalog {
		if slices.Contains(all, a.ID) {
			continue
		}
		if a.check(txs, balance) {
			all = append(all, a.ID)
			newly = append(newly, a.ID)
		}
	}
	return all, newly
}

// latestStreak counts consecutive calendar days (UTC) with at least one
// transaction, walking back from the most recent one.
func latestStreak(txs []models.Transaction) int {
	if len(txs) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(txs))
	for _, t := range txs {
		d := t.Date.UTC()
		days = append(days, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	days = slices.CompactFunc(days, time.Time.Equal)

	run := 1
	for i := 1; i < len(days); i++ {
		if !days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			break
		}
		run++
	}
	return run
}

func distinctCategories(txs []models.Transaction) int {
	seen := make(map[models.Category]bool)
	for _, t := range txs {
		if t.Category != "" {
			seen[t.Category] = true
		}
	}
	return len(seen)
}
