package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/HeyDYF/Money-Manager/internal/services"
)

// ExchangeHandler serves currencies and exchange quotes.
type ExchangeHandler struct {
	exchangeService services.ExchangeServicer
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeService services.ExchangeServicer) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// GetCurrencies lists supported currencies.
// @Summary     List currencies
// @Tags        exchange
// @Produce     json
// @Success     200 {array} currency.Currency "Currencies"
// @Router      /currencies [get]
func (h *ExchangeHandler) GetCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": h.exchangeService.Currencies()})
}

// GetQuote converts an amount between two currencies.
// @Summary     Exchange quote
// @Tags        exchange
// @Produce     json
// @Param       from   query string true  "Source currency" default(USD)
// @Param       to     query string true  "Target currency" default(CNY)
// @Param       amount query string false "Amount (default 1)"
// @Success     200 {object} exchange.Quote "Quote"
// @Failure     400 {object} ErrorResponse "Invalid input or unsupported currency"
// @Failure     502 {object} ErrorResponse "Failed to fetch exchange rate"
// @Router      /exchange [get]
func (h *ExchangeHandler) GetQuote(c *gin.Context) {
	amount, err := parseAmountQuery(c, "amount", decimal.NewFromInt(1))
	if err != nil {
		respondWithError(c, err)
		return
	}

	quote, err := h.exchangeService.Quote(c.Request.Context(), c.Query("from"), c.Query("to"), amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// GetRates returns the latest rate table.
// @Summary     Latest rates
// @Description Latest conversion rates relative to the configured base currency
// @Tags        exchange
// @Produce     json
// @Success     200 {object} map[string]interface{} "Rate table"
// @Failure     502 {object} ErrorResponse "Failed to fetch exchange rate"
// @Router      /exchange/rates [get]
func (h *ExchangeHandler) GetRates(c *gin.Context) {
	table, err := h.exchangeService.Rates(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": table})
}
