package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/exchange"
	tu "github.com/HeyDYF/Money-Manager/internal/testutil"
)

type fakeRateSource struct {
	table exchange.RateTable
	err   error
}

func (f *fakeRateSource) Latest(context.Context) (exchange.RateTable, error) {
	return f.table, f.err
}

func fakeRates() *fakeRateSource {
	return &fakeRateSource{table: exchange.RateTable{
		Base:  "USD",
		Rates: map[string]decimal.Decimal{"CNY": decimal.RequireFromString("7.1")},
	}}
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		svc := NewExchangeService(fakeRates())
		q, err := svc.Quote(ctx, "usd", "cny", decimal.NewFromInt(2))
		tu.AssertNoError(t, err)
		tu.AssertDecimal(t, q.Converted, "14.2")
	})

	t.Run("unknown_currency", func(t *testing.T) {
		svc := NewExchangeService(fakeRates())
		_, err := svc.Quote(ctx, "USD", "XYZ", decimal.NewFromInt(1))
		tu.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})

	t.Run("missing_pair", func(t *testing.T) {
		svc := NewExchangeService(fakeRates())
		_, err := svc.Quote(ctx, "", "CNY", decimal.NewFromInt(1))
		tu.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("upstream_failure", func(t *testing.T) {
		src := fakeRates()
		src.err = errors.New("timeout")
		svc := NewExchangeService(src)

		_, err := svc.Quote(ctx, "USD", "CNY", decimal.NewFromInt(1))
		tu.AssertAppError(t, err, "EXCHANGE_UNAVAILABLE")

		_, err = svc.Rates(ctx)
		tu.AssertAppError(t, err, "EXCHANGE_UNAVAILABLE")
	})
}

func TestCurrencies(t *testing.T) {
	svc := NewExchangeService(fakeRates())
	if got := len(svc.Currencies()); got != 10 {
		t.Errorf("expected 10 currencies, got %d", got)
	}
}
