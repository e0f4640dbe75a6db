// Package http exposes address book endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zahrafashion/storefront/internal/address/service"
	"github.com/zahrafashion/storefront/pkg/httputil"
	"github.com/zahrafashion/storefront/pkg/middleware"
	"github.com/zahrafashion/storefront/pkg/validator"
)

// AddressHandler handles HTTP requests for address book endpoints.
type AddressHandler struct {
	service *service.AddressService
	logger  *slog.Logger
}

// NewAddressHandler creates an address HTTP handler.
func NewAddressHandler(svc *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the address endpoints on r. Callers must mount the auth
// middleware above this subtree.
func (h *AddressHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{addressID}", h.Get)
	r.Put("/{addressID}", h.Update)
	r.Delete("/{addressID}", h.Delete)
	r.Post("/{addressID}/default", h.SetDefault)
}

// List handles GET /api/v1/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	addresses, err := h.service.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Create handles POST /api/v1/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req service.AddressInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	addr, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: addr})
}

// Get handles GET /api/v1/addresses/{addressID}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	addr, err := h.service.Get(r.Context(), userID, addressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addr})
}

// Update handles PUT /api/v1/addresses/{addressID}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	var req service.AddressInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	addr, err := h.service.Update(r.Context(), userID, addressID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addr})
}

// Delete handles DELETE /api/v1/addresses/{addressID}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	if err := h.service.Delete(r.Context(), userID, addressID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetDefault handles POST /api/v1/addresses/{addressID}/default
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	addr, err := h.service.SetDefault(r.Context(), userID, addressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addr})
}
