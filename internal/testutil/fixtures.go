package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Amount parses a decimal literal and fails the test if it is malformed.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal fixture %q: %v", s, err)
	}
	return d
}

// Expense builds an expense payload with a unique name.
func Expense(amount int64, category models.Category, date time.Time) models.TransactionInput {
	return models.TransactionInput{
		Name:     fmt.Sprintf("Expense %d", nextID()),
		Amount:   decimal.NewFromInt(amount),
		Type:     models.TransactionTypeExpense,
		Date:     date,
		Category: category,
	}
}

// Income builds an income payload with a unique name.
func Income(amount int64, date time.Time) models.TransactionInput {
	return models.TransactionInput{
		Name:   fmt.Sprintf("Income %d", nextID()),
		Amount: decimal.NewFromInt(amount),
		Type:   models.TransactionTypeIncome,
		Date:   date,
	}
}

// Transaction builds a stored transaction with a unique ID.
func Transaction(txType models.TransactionType, amount int64) models.Transaction {
	n := nextID()
	return models.Transaction{
		ID:     fmt.Sprintf("tx-%d", n),
		Name:   fmt.Sprintf("Transaction %d", n),
		Amount: decimal.NewFromInt(amount),
		Type:   txType,
		Date:   time.Now().UTC().Truncate(time.Second),
	}
}
