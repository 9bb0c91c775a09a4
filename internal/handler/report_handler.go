package handler

import (
	"net/http"
	"strconv"

	"mini-inventory/internal/model"
	"mini-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReportHandler serves the stock report and the activity journal.
type ReportHandler struct {
	inventory service.InventoryService
	activity  service.ActivityService
	logger    zerolog.Logger
}

// NewReportHandler creates a new report handler. activity may be nil when the
// journal is disabled.
func NewReportHandler(inventory service.InventoryService, activity service.ActivityService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		inventory: inventory,
		activity:  activity,
		logger:    logger.With().Str("handler", "report").Logger(),
	}
}

// Stock handles GET /api/reports/stock requests.
func (h *ReportHandler) Stock(w http.ResponseWriter, r *http.Request) {
	report, err := h.inventory.StockReport(r.Context())
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Activity handles GET /api/activity requests.
func (h *ReportHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r)
	if !ok {
		return
	}

	events, err := h.activity.Recent(r.Context(), limit)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// ProductActivity handles GET /api/products/{id}/activity requests.
func (h *ReportHandler) ProductActivity(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r)
	if !ok {
		return
	}

	events, err := h.activity.ForProduct(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// JournalEnabled reports whether the activity routes can be served.
func (h *ReportHandler) JournalEnabled() bool {
	return h.activity != nil
}

func (h *ReportHandler) limit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid limit parameter", h.logger)
		return 0, false
	}
	return limit, true
}
