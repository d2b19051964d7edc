package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
)

func setupExchangeRouter(handler *ExchangeHandler) *gin.Engine {
	r := gin.New()
	r.GET("/currencies", handler.GetCurrencies)
	r.GET("/exchange", handler.GetQuote)
	return r
}

func TestExchangeHandler_GetCurrencies(t *testing.T) {
	r := setupExchangeRouter(NewExchangeHandler(&mockExchangeService{}))

	rec := doRequest(r, "GET", "/currencies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := parseJSON(t, rec)["currencies"].([]interface{})
	if len(list) != 10 {
		t.Errorf("expected 10 currencies, got %d", len(list))
	}
}

func TestExchangeHandler_GetQuote(t *testing.T) {
	t.Run("defaults amount to one", func(t *testing.T) {
		var gotAmount decimal.Decimal
		svc := &mockExchangeService{
			quoteFn: func(_ context.Context, from, to string, amount decimal.Decimal) (*exchange.Quote, error) {
				gotAmount = amount
				return &exchange.Quote{From: from, To: to, Rate: decimal.RequireFromString("0.9"), Amount: amount, Converted: decimal.RequireFromString("0.9")}, nil
			},
		}
		r := setupExchangeRouter(NewExchangeHandler(svc))

		rec := doRequest(r, "GET", "/exchange?from=USD&to=EUR", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !gotAmount.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected amount 1, got %s", gotAmount)
		}
		quote := parseJSON(t, rec)["quote"].(map[string]interface{})
		if quote["converted"] != "0.9" || quote["to"] != "EUR" {
			t.Errorf("unexpected quote %v", quote)
		}
	})

	t.Run("returns 400 on bad amount", func(t *testing.T) {
		r := setupExchangeRouter(NewExchangeHandler(&mockExchangeService{}))
		rec := doRequest(r, "GET", "/exchange?from=USD&to=EUR&amount=lots", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 502 when rates are unavailable", func(t *testing.T) {
		svc := &mockExchangeService{
			quoteFn: func(context.Context, string, string, decimal.Decimal) (*exchange.Quote, error) {
				return nil, apperrors.ErrExchangeUnavailable
			},
		}
		r := setupExchangeRouter(NewExchangeHandler(svc))

		rec := doRequest(r, "GET", "/exchange?from=USD&to=EUR", "")
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "EXCHANGE_UNAVAILABLE")
		if msg := result["error"].(map[string]interface{})["message"]; msg != exchange.FailedMessage {
			t.Errorf("unexpected message %v", msg)
		}
	})
}
