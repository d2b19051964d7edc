package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/services"
	"github.com/HeyDYF/Money-Manager/internal/validator"
)

// LedgerHandler handles whole-ledger requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, auditService: auditService}
}

// SetBalanceRequest represents the request payload for setting the initial balance.
type SetBalanceRequest struct {
	Amount   *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"1000.00"`
	Currency string           `json:"currency" binding:"required,currency_code" example:"USD"`
}

// LedgerResponse wraps the ledger view.
type LedgerResponse struct {
	Ledger services.LedgerView `json:"ledger"`
}

// GetLedger returns the current ledger state.
// @Summary     Get ledger
// @Description Balance, currency, transactions (most recent first) and unlocked achievements
// @Tags        ledger
// @Produce     json
// @Success     200 {object} LedgerResponse "Current ledger"
// @Router      /ledger [get]
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ledger": h.ledgerService.GetLedger()})
}

// SetInitialBalance replaces balance and currency.
// @Summary     Set initial balance
// @Description Replace the balance and currency. Existing transactions are kept and not re-applied.
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       request body SetBalanceRequest true "Balance and currency"
// @Success     200 {object} LedgerResponse "Updated ledger"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /ledger/balance [put]
func (h *LedgerHandler) SetInitialBalance(c *gin.Context) {
	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)))
		return
	}

	view, err := h.ledgerService.SetInitialBalance(c.Request.Context(), *req.Amount, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SET_INITIAL_BALANCE", "ledger", "", c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String(), "currency": req.Currency})

	c.JSON(http.StatusOK, gin.H{"ledger": view})
}

// ImportData replaces the ledger with an exported snapshot.
// @Summary     Import ledger
// @Description Replace the whole ledger with a snapshot. Balance is taken as-is, not recomputed.
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       request body models.Snapshot true "Snapshot"
// @Success     200 {object} LedgerResponse "Imported ledger"
// @Failure     400 {object} ErrorResponse "Invalid snapshot"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /ledger/import [post]
func (h *LedgerHandler) ImportData(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidSnapshot, err.Error()))
		return
	}

	view, err := h.ledgerService.ImportData(c.Request.Context(), snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("IMPORT_DATA", "ledger", "", c.ClientIP(),
		map[string]interface{}{"transactions": len(snapshot.Transactions)})

	c.JSON(http.StatusOK, gin.H{"ledger": view})
}

// ExportData returns the full snapshot.
// @Summary     Export ledger
// @Description Full snapshot suitable for import
// @Tags        ledger
// @Produce     json
// @Success     200 {object} models.Snapshot "Snapshot"
// @Router      /ledger/export [get]
func (h *LedgerHandler) ExportData(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="ledger.json"`)
	c.JSON(http.StatusOK, h.ledgerService.Export())
}
