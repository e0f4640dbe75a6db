// Package http exposes payment method endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zahrafashion/storefront/internal/payment/service"
	"github.com/zahrafashion/storefront/pkg/httputil"
	"github.com/zahrafashion/storefront/pkg/validator"
)

// PaymentMethodHandler handles HTTP requests for payment method endpoints.
type PaymentMethodHandler struct {
	service *service.PaymentMethodService
	logger  *slog.Logger
}

// NewPaymentMethodHandler creates a payment method HTTP handler.
func NewPaymentMethodHandler(svc *service.PaymentMethodService, logger *slog.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		service: svc,
		logger:  logger,
	}
}

// SetActiveRequest is the JSON request body for toggling a payment method.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// Routes registers the customer-facing payment method endpoints on r.
func (h *PaymentMethodHandler) Routes(r chi.Router) {
	r.Get("/", h.ListAvailable)
}

// AdminRoutes registers the management endpoints on r. Callers must mount
// role-checking middleware above this subtree.
func (h *PaymentMethodHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.ListAll)
	r.Post("/", h.Create)
	r.Put("/{methodID}/active", h.SetActive)
}

// ListAvailable handles GET /api/v1/payment-methods
func (h *PaymentMethodHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.ListAvailable(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: methods})
}

// ListAll handles GET /api/v1/admin/payment-methods
func (h *PaymentMethodHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: methods})
}

// Create handles POST /api/v1/admin/payment-methods
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMethodInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	method, err := h.service.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: method})
}

// SetActive handles PUT /api/v1/admin/payment-methods/{methodID}/active
func (h *PaymentMethodHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	methodID := chi.URLParam(r, "methodID")

	var req SetActiveRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.SetActive(r.Context(), methodID, req.Active); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
