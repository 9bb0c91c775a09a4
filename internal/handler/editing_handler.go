package handler

import (
	"net/http"

	"mini-inventory/internal/model"
	"mini-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// EditingHandler handles the edit-selection and the maintenance form view.
type EditingHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewEditingHandler creates a new editing handler.
func NewEditingHandler(service service.InventoryService, logger zerolog.Logger) *EditingHandler {
	return &EditingHandler{
		service: service,
		logger:  logger.With().Str("handler", "editing").Logger(),
	}
}

// Get handles GET /api/editing requests.
func (h *EditingHandler) Get(w http.ResponseWriter, r *http.Request) {
	editing, err := h.service.Editing(r.Context())
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.EditingResponse{Editing: editing})
}

// Select handles PUT /api/editing/{id} requests.
func (h *EditingHandler) Select(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.SelectForEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.EditingResponse{Editing: &product})
}

// Cancel handles DELETE /api/editing requests.
func (h *EditingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelEdit(r.Context()); err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Maintenance handles GET /api/maintenance and GET /api/maintenance/{id}.
func (h *EditingHandler) Maintenance(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Maintenance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
