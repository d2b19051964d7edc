// Package errors defines the application error type. Handlers render an
// AppError's code and message; the wrapped internal error is only logged.
package errors

import (
	"errors"
	"net/http"
)

// AppError is an error with a stable machine-readable code and the HTTP
// status it maps to.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Internal }

// Is matches any AppError carrying the same code, so wrapped copies still
// compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap copies sentinel and attaches the underlying cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	out := *sentinel
	out.Internal = internal
	return &out
}

// WithMessage copies sentinel with a client-facing message.
func WithMessage(sentinel *AppError, message string) *AppError {
	out := *sentinel
	out.Message = message
	return &out
}

// From returns the AppError in err's chain, or ErrInternalServer wrapping
// err when there is none. ok reports whether an AppError was found.
func From(err error) (appErr *AppError, ok bool) {
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return Wrap(ErrInternalServer, err), false
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Ledger errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrInvalidSnapshot        = &AppError{Code: "INVALID_SNAPSHOT", Message: "Snapshot could not be imported", StatusCode: http.StatusBadRequest}
	ErrStorageUnavailable     = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "Ledger storage is unavailable", StatusCode: http.StatusServiceUnavailable}
)

// Exchange errors.
var (
	ErrExchangeUnavailable = &AppError{Code: "EXCHANGE_UNAVAILABLE", Message: "Failed to fetch exchange rate", StatusCode: http.StatusBadGateway}
	ErrUnsupportedCurrency = &AppError{Code: "UNSUPPORTED_CURRENCY", Message: "Currency is not available in the rate table", StatusCode: http.StatusBadRequest}
)
