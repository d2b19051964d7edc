// Package analytics filters and summarizes transactions for reporting.
package analytics

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/models"
)

// Range selects how far back from "now" transactions are included.
type Range string

const (
	RangeAll   Range = "all"
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

var rangeDays = map[Range]int{
	RangeDay:   1,
	RangeWeek:  7,
	RangeMonth: 30,
	RangeYear:  365,
}

// ParseRange accepts the range names; empty means RangeAll.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	if r == "" || r == RangeAll {
		return RangeAll, nil
	}
	if _, ok := rangeDays[r]; !ok {
		return "", fmt.Errorf("unknown range %q", s)
	}
	return r, nil
}

// Since returns the earliest included instant, or the zero time for RangeAll.
func (r Range) Since(now time.Time) time.Time {
	days, ok := rangeDays[r]
	if !ok {
		return time.Time{}
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// Filter selects transactions.
type Filter struct {
	// Query matches name or description, case-insensitively.
	Query string
	Range Range
}

// Apply returns the matching transactions in their original order.
func (f Filter) Apply(txs []models.Transaction, now time.Time) []models.Transaction {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	since := f.Range.Since(now)

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		if !since.IsZero() && t.Date.Before(since) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// DayTotal holds income and expense for one UTC day.
type DayTotal struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Summary aggregates a set of transactions.
type Summary struct {
	Count      int             `json:"count"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
	ByCategory []CategoryTotal `json:"by_category"`
	Daily      []DayTotal      `json:"daily"`
}

// Summarize totals txs. Expenses without a category count as Other.
// ByCategory follows the category display order and omits empty categories;
// Daily is sorted by date ascending.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{
		Count:      len(txs),
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: []CategoryTotal{},
		Daily:      []DayTotal{},
	}

	perCategory := make(map[models.Category]decimal.Decimal)
	perDay := make(map[string]*DayTotal)

	for _, t := range txs {
		day := t.Date.UTC().Format(time.DateOnly)
		d, ok := perDay[day]
		if !ok {
			d = &DayTotal{Date: day, Income: decimal.Zero, Expense: decimal.Zero}
			perDay[day] = d
		}

		if t.Type == models.TransactionTypeIncome {
			s.Income = s.Income.Add(t.Amount)
			d.Income = d.Income.Add(t.Amount)
			continue
		}

		s.Expense = s.Expense.Add(t.Amount)
		d.Expense = d.Expense.Add(t.Amount)

		cat := t.Category
		if cat == "" || !cat.Valid() {
			cat = models.CategoryOther
		}
		perCategory[cat] = perCategory[cat].Add(t.Amount)
	}
	s.Net = s.Income.Sub(s.Expense)

	for _, cat := range models.Categories {
		if total, ok := perCategory[cat]; ok {
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: cat, Total: total})
		}
	}

	for _, day := range slices.Sorted(maps.Keys(perDay)) {
		s.Daily = append(s.Daily, *perDay[day])
	}
	return s
}
