package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrForbidden, ErrConflict, ErrInternal, ErrServiceUnavail,
		ErrIncompleteAddress, ErrDestinationUnreachable, ErrShippingNotReady, ErrPaymentMethod,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "order not found"}
	assert.Equal(t, "NOT_FOUND: order not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("order", "abc-123")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "order")
	assert.Contains(t, err.Message, "abc-123")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("courier is required")
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, "courier is required", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestForbidden(t *testing.T) {
	err := Forbidden("not allowed")
	require.NotNil(t, err)
	assert.Equal(t, "FORBIDDEN", err.Code)
	assert.Equal(t, http.StatusForbidden, err.Status)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestConflict(t *testing.T) {
	err := Conflict("selection changed")
	require.NotNil(t, err)
	assert.Equal(t, "CONFLICT", err.Code)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrConflict))
}

// --- Checkout failure classes ---

func TestIncompleteAddress(t *testing.T) {
	err := IncompleteAddress()
	require.NotNil(t, err)
	assert.Equal(t, "INCOMPLETE_ADDRESS", err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.True(t, errors.Is(err, ErrIncompleteAddress))
}

func TestDestinationUnreachable_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("no pricing for this route")
	err := DestinationUnreachable(cause)
	require.NotNil(t, err)
	assert.Equal(t, "DESTINATION_UNREACHABLE", err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.True(t, errors.Is(err, ErrDestinationUnreachable))
	assert.True(t, errors.Is(err, cause))
}

func TestShippingCostNotReady(t *testing.T) {
	err := ShippingCostNotReady()
	require.NotNil(t, err)
	assert.Equal(t, "SHIPPING_COST_NOT_READY", err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.True(t, errors.Is(err, ErrShippingNotReady))
}

func TestPaymentMethodUnavailable(t *testing.T) {
	err := PaymentMethodUnavailable("metode pembayaran sedang tidak tersedia, pilih metode lain")
	require.NotNil(t, err)
	assert.Equal(t, "PAYMENT_METHOD_UNAVAILABLE", err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.True(t, errors.Is(err, ErrPaymentMethod))
}

// --- HTTP status mapping ---

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "app error", err: NotFound("order", "x"), want: http.StatusNotFound},
		{name: "wrapped sentinel", err: fmt.Errorf("ctx: %w", ErrInvalidInput), want: http.StatusBadRequest},
		{name: "conflict sentinel", err: ErrConflict, want: http.StatusConflict},
		{name: "incomplete address", err: ErrIncompleteAddress, want: http.StatusUnprocessableEntity},
		{name: "destination unreachable", err: ErrDestinationUnreachable, want: http.StatusUnprocessableEntity},
		{name: "shipping not ready", err: ErrShippingNotReady, want: http.StatusUnprocessableEntity},
		{name: "payment method", err: ErrPaymentMethod, want: http.StatusUnprocessableEntity},
		{name: "service unavailable", err: ErrServiceUnavail, want: http.StatusServiceUnavailable},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
