package handler

import (
	"net/http"

	"mini-inventory/internal/model"
	"mini-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.InventoryService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields model.ProductFields
	if !decodeJSON(w, r, &fields, h.logger) {
		return
	}

	product, err := h.service.Create(r.Context(), fields)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests. The path ID wins over any
// ID in the body.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields model.ProductFields
	if !decodeJSON(w, r, &fields, h.logger) {
		return
	}

	product, err := h.service.Update(r.Context(), fields.WithID(chi.URLParam(r, "id")))
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Save handles POST /api/products/save requests carrying an explicit intent.
func (h *ProductHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.SaveRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	intent, err := req.ToIntent()
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Save(r.Context(), intent)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	if _, created := intent.(model.CreateIntent); created {
		status = http.StatusCreated
	}
	writeJSON(w, status, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetQuantity handles PUT /api/products/{id}/quantity requests.
func (h *ProductHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req model.QuantityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if req.Quantity == nil {
		handleServiceError(w, r, model.ErrInvalidQuantity, h.logger)
		return
	}

	product, err := h.service.SetQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Increment handles POST /api/products/{id}/increment requests.
func (h *ProductHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, 1)
}

// Decrement handles POST /api/products/{id}/decrement requests.
func (h *ProductHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, -1)
}

func (h *ProductHandler) adjust(w http.ResponseWriter, r *http.Request, delta int) {
	product, err := h.service.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), delta)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
