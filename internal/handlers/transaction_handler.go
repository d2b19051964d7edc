package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/pagination"
	"github.com/HeyDYF/Money-Manager/internal/services"
	"github.com/HeyDYF/Money-Manager/internal/validator"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		auditService:  auditService,
	}
}

// TransactionRequest represents the payload for creating or replacing a transaction.
// Amount is a magnitude; its sign is not checked.
type TransactionRequest struct {
	Name        string                 `json:"name" binding:"required,max=200" example:"Coffee"`
	Amount      *decimal.Decimal       `json:"amount" binding:"required" swaggertype:"string" example:"5.00"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type" example:"expense"`
	Date        string                 `json:"date" example:"2024-03-01T08:00:00Z"`
	Description string                 `json:"description" binding:"max=500"`
	Category    models.Category        `json:"category" binding:"omitempty,category" example:"Restaurants"`
}

func (r TransactionRequest) input() (models.TransactionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.TransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err))
	}
	return models.TransactionInput{
		Name:        r.Name,
		Amount:      *r.Amount,
		Type:        r.Type,
		Date:        date,
		Description: r.Description,
		Category:    r.Category,
	}, nil
}

// MutationResponse is returned by every transaction mutation.
type MutationResponse struct {
	Transaction models.Transaction     `json:"transaction"`
	Balance     string                 `json:"balance"`
	Unlocked    []models.AchievementID `json:"unlocked"`
}

func mutationResponse(change *ledger.Change) gin.H {
	unlocked := change.Unlocked
	if unlocked == nil {
		unlocked = []models.AchievementID{}
	}
	return gin.H{
		"transaction": change.Transaction,
		"balance":     change.State.Balance,
		"unlocked":    unlocked,
	}
}

// ListTransactions returns a page of transactions, most recent first.
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)))
		return
	}
	page.Defaults()

	result, err := h.ledgerService.ListTransactions(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create transaction
// @Description Record an income or expense and apply it to the balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} MutationResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)))
		return
	}
	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	change, err := h.ledgerService.AddTransaction(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", change.Transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": in.Type, "amount": in.Amount.String(), "name": in.Name})

	c.JSON(http.StatusCreated, mutationResponse(change))
}

// GetTransactionByID returns a single transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	tx, err := h.ledgerService.GetTransaction(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// UpdateTransaction replaces an existing transaction
// @Summary     Update transaction
// @Description Replace a transaction; the balance moves by the difference of signed amounts
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Replacement"
// @Success     200 {object} MutationResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id := c.Param("id")

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)))
		return
	}
	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	change, err := h.ledgerService.UpdateTransaction(c.Request.Context(), id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, mutationResponse(change))
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete transaction
// @Description Delete a transaction and reverse its effect on the balance
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MutationResponse "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")

	change, err := h.ledgerService.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, mutationResponse(change))
}
