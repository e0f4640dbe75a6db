// Package http exposes checkout endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zahrafashion/storefront/internal/checkout/service"
	"github.com/zahrafashion/storefront/pkg/httputil"
	"github.com/zahrafashion/storefront/pkg/middleware"
	"github.com/zahrafashion/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// SetModeRequest is the JSON request body for switching delivery mode.
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=delivery keep"`
}

// SetAddressRequest is the JSON request body for picking a saved address.
type SetAddressRequest struct {
	AddressID string `json:"address_id" validate:"required"`
}

// SetCourierRequest is the JSON request body for picking a courier.
type SetCourierRequest struct {
	Courier string `json:"courier" validate:"required"`
}

// SelectServiceRequest is the JSON request body for picking a shipping
// service from the resolved quotes.
type SelectServiceRequest struct {
	Service string `json:"service" validate:"required"`
}

// SetPaymentMethodRequest is the JSON request body for picking a payment
// method.
type SetPaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// SubmitRequest is the JSON request body for submitting the checkout.
type SubmitRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// Routes registers the checkout endpoints on r. Callers must mount the auth
// middleware above this subtree.
func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Post("/", h.Initiate)
	r.Get("/", h.GetSession)
	r.Put("/mode", h.SetMode)
	r.Put("/address", h.SetAddress)
	r.Put("/courier", h.SetCourier)
	r.Post("/shipping/resolve", h.ResolveShipping)
	r.Put("/shipping/service", h.SelectService)
	r.Put("/payment-method", h.SetPaymentMethod)
	r.Post("/submit", h.Submit)
}

// Initiate handles POST /api/v1/checkout
func (h *CheckoutHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	session, err := h.service.Initiate(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: session})
}

// GetSession handles GET /api/v1/checkout
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	session, err := h.service.GetSession(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SetMode handles PUT /api/v1/checkout/mode
func (h *CheckoutHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SetModeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SetMode(r.Context(), userID, req.Mode)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SetAddress handles PUT /api/v1/checkout/address
func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SetAddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SetAddress(r.Context(), userID, req.AddressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SetCourier handles PUT /api/v1/checkout/courier
func (h *CheckoutHandler) SetCourier(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SetCourierRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SetCourier(r.Context(), userID, req.Courier)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// ResolveShipping handles POST /api/v1/checkout/shipping/resolve
func (h *CheckoutHandler) ResolveShipping(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	session, err := h.service.ResolveShipping(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SelectService handles PUT /api/v1/checkout/shipping/service
func (h *CheckoutHandler) SelectService(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SelectServiceRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SelectService(r.Context(), userID, req.Service)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SetPaymentMethod handles PUT /api/v1/checkout/payment-method
func (h *CheckoutHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SetPaymentMethodRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SetPaymentMethod(r.Context(), userID, req.PaymentMethodID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// Submit handles POST /api/v1/checkout/submit
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	req := SubmitRequest{}
	if r.ContentLength > 0 {
		if err := validator.DecodeAndValidate(r, &req); err != nil {
			httputil.WriteValidationError(w, err)
			return
		}
	}

	order, err := h.service.Submit(r.Context(), userID, req.Notes)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
