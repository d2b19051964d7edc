package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/pagination"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/transactions", handler.ListTransactions)
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got models.TransactionInput
		svc := &mockLedgerService{
			addTransactionFn: func(_ context.Context, in models.TransactionInput) (*ledger.Change, error) {
				got = in
				return &ledger.Change{
					State:       models.Snapshot{Balance: decimal.NewFromInt(995)},
					Transaction: models.NewTransaction("tx-1", in),
					Unlocked:    []models.AchievementID{ledger.AchievementFirstTransaction},
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "POST", "/transactions",
			`{"name":"Coffee","amount":5,"type":"expense","date":"2024-03-01","category":"Restaurants"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Amount.Equal(decimal.NewFromInt(5)) || got.Category != models.CategoryRestaurants {
			t.Errorf("unexpected input passed to service: %+v", got)
		}
		if got.Date.IsZero() {
			t.Error("expected date to be parsed")
		}

		result := parseJSON(t, rec)
		if result["balance"] != "995" {
			t.Errorf("expected balance \"995\", got %v", result["balance"])
		}
		unlocked := result["unlocked"].([]interface{})
		if len(unlocked) != 1 || unlocked[0] != "first_transaction" {
			t.Errorf("unexpected unlocked list %v", unlocked)
		}
		if len(audit.calls) != 1 || audit.calls[0].action != "CREATE_TRANSACTION" || audit.calls[0].resourceID != "tx-1" {
			t.Errorf("unexpected audit calls %+v", audit.calls)
		}
	})

	t.Run("accepts quoted and negative amounts", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"name":"Refund","amount":"-12.50","type":"expense"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["amount"] != "-12.5" {
			t.Errorf("expected amount \"-12.5\", got %v", tx["amount"])
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"amount":5,"type":"expense"}`},
		{name: "missing amount", body: `{"name":"x","type":"expense"}`},
		{name: "invalid type", body: `{"name":"x","amount":5,"type":"transfer"}`},
		{name: "invalid category", body: `{"name":"x","amount":5,"type":"expense","category":"Groceries"}`},
		{name: "invalid date", body: `{"name":"x","amount":5,"type":"expense","date":"soon"}`},
		{name: "malformed json", body: `{"name":`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}, &mockAuditService{}))
			rec := doRequest(r, "POST", "/transactions", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 503 when storage fails", func(t *testing.T) {
		svc := &mockLedgerService{
			addTransactionFn: func(context.Context, models.TransactionInput) (*ledger.Change, error) {
				return nil, apperrors.ErrStorageUnavailable
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"name":"x","amount":5,"type":"income"}`)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STORAGE_UNAVAILABLE")
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var got pagination.PageRequest
		svc := &mockLedgerService{
			listTransactionsFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				got = page
				resp := pagination.NewPageResponse([]models.Transaction{{ID: "a"}}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 1 || got.PageSize != 20 {
			t.Errorf("expected defaults 1/20, got %d/%d", got.Page, got.PageSize)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("expected total_items 1, got %v", result["total_items"])
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions?page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockLedgerService{
			getTransactionFn: func(string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})

	t.Run("returns 200", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions/abc", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["id"] != "abc" {
			t.Errorf("expected id abc, got %v", tx["id"])
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("passes path id", func(t *testing.T) {
		var gotID string
		svc := &mockLedgerService{
			updateTransactionFn: func(_ context.Context, id string, in models.TransactionInput) (*ledger.Change, error) {
				gotID = id
				return &ledger.Change{Transaction: models.NewTransaction(id, in)}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "PUT", "/transactions/tx-9", `{"name":"Coffee","amount":8,"type":"expense"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != "tx-9" {
			t.Errorf("expected id tx-9, got %s", gotID)
		}
		if len(audit.calls) != 1 || audit.calls[0].action != "UPDATE_TRANSACTION" {
			t.Errorf("unexpected audit calls %+v", audit.calls)
		}
	})

	t.Run("returns 404 on unknown id", func(t *testing.T) {
		svc := &mockLedgerService{
			updateTransactionFn: func(context.Context, string, models.TransactionInput) (*ledger.Change, error) {
				return nil, apperrors.Wrap(apperrors.ErrTransactionNotFound, ledger.ErrTransactionNotFound)
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "PUT", "/transactions/ghost", `{"name":"x","amount":1,"type":"income"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if len(audit.calls) != 0 {
			t.Errorf("expected no audit entry for failed update, got %+v", audit.calls)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		svc := &mockLedgerService{
			deleteTransactionFn: func(_ context.Context, id string) (*ledger.Change, error) {
				return &ledger.Change{
					State:       models.Snapshot{Balance: decimal.NewFromInt(1000)},
					Transaction: models.Transaction{ID: id},
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/tx-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["balance"] != "1000" {
			t.Errorf("expected balance \"1000\", got %v", result["balance"])
		}
		if unlocked := result["unlocked"].([]interface{}); len(unlocked) != 0 {
			t.Errorf("expected empty unlocked list, got %v", unlocked)
		}
	})

	t.Run("returns 404", func(t *testing.T) {
		svc := &mockLedgerService{
			deleteTransactionFn: func(context.Context, string) (*ledger.Change, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
