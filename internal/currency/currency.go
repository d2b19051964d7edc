// Package currency holds the supported currency catalog and display helpers.
package currency

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is a catalog entry.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var catalog = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
}

// All returns the catalog in display order.
func All() []Currency {
	return slices.Clone(catalog)
}

// Lookup finds a catalog entry by code.
func Lookup(code string) (Currency, bool) {
	i := slices.IndexFunc(catalog, func(c Currency) bool { return c.Code == code })
	if i < 0 {
		return Currency{}, false
	}
	return catalog[i], true
}

// Supported reports whether code is in the catalog.
func Supported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Display renders "CODE - symbol" for catalog entries and the raw code otherwise.
func Display(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Code + " - " + c.Symbol
	}
	return code
}

// Format renders amount in the conventions of an ISO 4217 code, rounding to
// the currency's minor unit. Codes go-money doesn't know are rendered as
// "<amount> CODE".
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
