package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/middleware"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// dateLayouts are tried in order when parsing a transaction date.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

// parseDate accepts RFC 3339 timestamps and plain dates. Empty input yields
// the zero time, which the service replaces with now.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseAmountQuery parses an optional decimal query parameter.
func parseAmountQuery(c *gin.Context, param string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(param))
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return d, nil
}

// respondWithError renders err through the shared error envelope.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
