package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Category tags an expense. The zero value means "no category".
type Category string

const (
	CategoryShopping      Category = "Shopping"
	CategoryRestaurants   Category = "Restaurants"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

// Categories lists the closed category set in display order.
var Categories = []Category{
	CategoryShopping,
	CategoryRestaurants,
	CategoryTransport,
	CategoryEntertainment,
	CategoryOther,
}

// Valid reports whether c belongs to the category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// TransactionInput is a transaction payload before an ID is assigned.
type TransactionInput struct {
	Name        string          `json:"name" yaml:"name"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category        `json:"category,omitempty" yaml:"category,omitempty"`
}

// Transaction is one ledger entry. Amount is a magnitude; the sign comes from Type.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category        `json:"category,omitempty" yaml:"category,omitempty"`
}

// NewTransaction attaches id to an input payload.
func NewTransaction(id string, in TransactionInput) Transaction {
	return Transaction{
		ID:          id,
		Name:        in.Name,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        in.Date,
		Description: in.Description,
		Category:    in.Category,
	}
}

// SignedAmount returns +Amount for income and -Amount for anything else.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
