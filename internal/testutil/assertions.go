package testutil

import (
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
)

// AssertAppError fails unless err carries an AppError with code somewhere
// in its chain.
func AssertAppError(t testing.TB, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s, got nil error", code)
	}
	appErr, ok := apperrors.From(err)
	switch {
	case !ok:
		t.Fatalf("want %s, got plain %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("want %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares by numeric value: "5" equals "5.00".
func AssertDecimal(t testing.TB, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("want %s, got %s", want, got)
	}
}
