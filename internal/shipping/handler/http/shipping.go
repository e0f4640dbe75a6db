// Package http exposes shipping rate endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zahrafashion/storefront/internal/shipping/domain"
	"github.com/zahrafashion/storefront/internal/shipping/service"
	"github.com/zahrafashion/storefront/pkg/httputil"
	"github.com/zahrafashion/storefront/pkg/validator"
)

// ShippingHandler handles HTTP requests for shipping rate endpoints.
type ShippingHandler struct {
	resolver *service.Resolver
	logger   *slog.Logger
}

// NewShippingHandler creates a shipping HTTP handler.
func NewShippingHandler(resolver *service.Resolver, logger *slog.Logger) *ShippingHandler {
	return &ShippingHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// CostRequest is the JSON request body for a shipping cost lookup.
type CostRequest struct {
	Courier       string `json:"courier" validate:"required"`
	SubdistrictID string `json:"subdistrict_id"`
	DistrictID    string `json:"district_id"`
	WeightGrams   int    `json:"weight" validate:"gte=0"`
}

// Routes registers the shipping endpoints on r.
func (h *ShippingHandler) Routes(r chi.Router) {
	r.Get("/couriers", h.ListCouriers)
	r.Post("/cost", h.ResolveCost)
}

// ListCouriers handles GET /api/v1/shipping/couriers
func (h *ShippingHandler) ListCouriers(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Couriers()})
}

// ResolveCost handles POST /api/v1/shipping/cost
func (h *ShippingHandler) ResolveCost(w http.ResponseWriter, r *http.Request) {
	var req CostRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	dest := domain.Destination{
		SubdistrictID: req.SubdistrictID,
		DistrictID:    req.DistrictID,
	}

	resolution, err := h.resolver.Resolve(r.Context(), req.Courier, dest, req.WeightGrams)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resolution})
}
