package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure classes. Handlers map these to HTTP
// status codes via HTTPStatus; services wrap them with context.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")

	// Checkout/shipping failure classes. These are recoverable by user
	// action (fix the address, pick another courier, wait for the rate
	// lookup) and always carry actionable messages.
	ErrIncompleteAddress      = errors.New("address incomplete")
	ErrDestinationUnreachable = errors.New("destination unreachable")
	ErrShippingNotReady       = errors.New("shipping cost not ready")
	ErrPaymentMethod          = errors.New("payment method unavailable")
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error. The wrapped cause is logged, never shown.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     ErrServiceUnavail,
	}
}

// IncompleteAddress signals that no usable destination could be derived
// from the shipping address. The user must complete the address fields.
func IncompleteAddress() *AppError {
	return &AppError{
		Code:    "INCOMPLETE_ADDRESS",
		Message: "alamat belum lengkap: pilih kecamatan atau kelurahan terlebih dahulu",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrIncompleteAddress,
	}
}

// DestinationUnreachable signals that every destination candidate was
// exhausted without a usable quote for the selected courier.
func DestinationUnreachable(cause error) *AppError {
	return &AppError{
		Code:    "DESTINATION_UNREACHABLE",
		Message: "tujuan tidak terjangkau untuk kurir ini: coba ganti kurir atau alamat",
		Status:  http.StatusUnprocessableEntity,
		Err:     errors.Join(ErrDestinationUnreachable, cause),
	}
}

// ShippingCostNotReady blocks order submission until the shipping cost
// for the selected courier has been resolved.
func ShippingCostNotReady() *AppError {
	return &AppError{
		Code:    "SHIPPING_COST_NOT_READY",
		Message: "ongkir belum siap: tunggu perhitungan selesai atau pilih kurir lain",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrShippingNotReady,
	}
}

// PaymentMethodUnavailable blocks order submission when the selected
// payment method is missing or inactive.
func PaymentMethodUnavailable(message string) *AppError {
	return &AppError{
		Code:    "PAYMENT_METHOD_UNAVAILABLE",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrPaymentMethod,
	}
}

// Wrap adds message context to an error, preserving the chain.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrIncompleteAddress),
		errors.Is(err, ErrDestinationUnreachable),
		errors.Is(err, ErrShippingNotReady),
		errors.Is(err, ErrPaymentMethod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
