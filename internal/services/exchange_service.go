package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/currency"
	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
)

// exchangeService handles exchange-rate lookups.
type exchangeService struct {
	source exchange.RateSource
}

// NewExchangeService creates a new ExchangeServicer.
func NewExchangeService(source exchange.RateSource) ExchangeServicer {
	return &exchangeService{source: source}
}

// Quote converts amount between two currencies at the latest rate.
func (s *exchangeService) Quote(ctx context.Context, from, to string, amount decimal.Decimal) (*exchange.Quote, error) {
	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to are required")
	}

	table, err := s.source.Latest(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExchangeUnavailable, err)
	}

	q, err := exchange.NewQuote(table, from, to, amount)
	if err != nil {
		if errors.Is(err, exchange.ErrUnknownCurrency) {
			return nil, apperrors.Wrap(apperrors.ErrUnsupportedCurrency, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrExchangeUnavailable, err)
	}
	return &q, nil
}

// Rates returns the latest rate table.
func (s *exchangeService) Rates(ctx context.Context) (*exchange.RateTable, error) {
	table, err := s.source.Latest(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExchangeUnavailable, err)
	}
	return &table, nil
}

// Currencies returns the supported currency catalog.
func (s *exchangeService) Currencies() []currency.Currency {
	return currency.All()
}
