// Package http exposes order endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zahrafashion/storefront/internal/order/domain"
	"github.com/zahrafashion/storefront/internal/order/repository"
	"github.com/zahrafashion/storefront/internal/order/service"
	"github.com/zahrafashion/storefront/pkg/httputil"
	"github.com/zahrafashion/storefront/pkg/middleware"
	"github.com/zahrafashion/storefront/pkg/pagination"
	"github.com/zahrafashion/storefront/pkg/validator"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates an order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitProofRequest is the JSON request body for submitting payment proof.
type SubmitProofRequest struct {
	ProofURL string `json:"proof_url" validate:"required,url"`
}

// CancelRequest is the JSON request body for cancelling an order.
type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// UpdateStatusRequest is the JSON request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"max=500"`
}

// VerifyPaymentRequest is the JSON request body for a payment verdict.
type VerifyPaymentRequest struct {
	Accept bool `json:"accept"`
}

// Routes registers the customer-facing order endpoints on r. Callers must
// mount the auth middleware above this subtree.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{orderID}", h.Get)
	r.Post("/{orderID}/payment-proof", h.SubmitPaymentProof)
	r.Post("/{orderID}/cancel", h.Cancel)
}

// AdminRoutes registers the management endpoints on r. Callers must mount
// role-checking middleware above this subtree.
func (h *OrderHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{orderID}", h.Get)
	r.Put("/{orderID}/status", h.UpdateStatus)
	r.Post("/{orderID}/verify-payment", h.VerifyPayment)
}

func actorFromRequest(r *http.Request) service.Actor {
	return service.Actor{
		UserID: middleware.UserIDFromContext(r.Context()),
		Role:   middleware.RoleFromContext(r.Context()),
	}
}

// List handles GET /api/v1/orders and GET /api/v1/admin/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	filter := repository.OrderFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !domain.IsValidStatus(status) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "unknown status filter: " + status},
			})
			return
		}
		filter.Status = &status
	}

	orders, total, err := h.service.ListOrders(r.Context(), actorFromRequest(r), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(orders, total, params)})
}

// Get handles GET /api/v1/orders/{orderID}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), actorFromRequest(r), chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// SubmitPaymentProof handles POST /api/v1/orders/{orderID}/payment-proof
func (h *OrderHandler) SubmitPaymentProof(w http.ResponseWriter, r *http.Request) {
	var req SubmitProofRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.SubmitPaymentProof(r.Context(), actorFromRequest(r), chi.URLParam(r, "orderID"), req.ProofURL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// Cancel handles POST /api/v1/orders/{orderID}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.CancelOrder(r.Context(), actorFromRequest(r), chi.URLParam(r, "orderID"), req.Reason)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// UpdateStatus handles PUT /api/v1/admin/orders/{orderID}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), actorFromRequest(r), chi.URLParam(r, "orderID"), req.Status, req.Reason)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// VerifyPayment handles POST /api/v1/admin/orders/{orderID}/verify-payment
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.VerifyPayment(r.Context(), actorFromRequest(r), chi.URLParam(r, "orderID"), req.Accept)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
