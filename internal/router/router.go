package router

import (
	"net/http"

	"mini-inventory/internal/handler"
	"mini-inventory/internal/metrics"
	"mini-inventory/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Product *handler.ProductHandler
	Editing *handler.EditingHandler
	Report  *handler.ReportHandler
	Health  *handler.HealthHandler
	// Metrics is optional; when set, /metrics is served and requests are instrumented.
	Metrics *metrics.Collector
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware order: Recovery -> CorrelationID -> Logging -> CORS -> (metrics) -> APIKeyAuth on /api
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND","message":"route not found"}`))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"METHOD_NOT_ALLOWED","message":"method not allowed"}`))
	})

	// Unauthenticated endpoints
	r.Get("/health", h.Health.Health)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Post("/", h.Product.Create)
			r.Post("/save", h.Product.Save)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Product.GetByID)
				r.Put("/", h.Product.Update)
				r.Delete("/", h.Product.Delete)
				r.Put("/quantity", h.Product.SetQuantity)
				r.Post("/increment", h.Product.Increment)
				r.Post("/decrement", h.Product.Decrement)
				if h.Report.JournalEnabled() {
					r.Get("/activity", h.Report.ProductActivity)
				}
			})
		})

		r.Route("/editing", func(r chi.Router) {
			r.Get("/", h.Editing.Get)
			r.Delete("/", h.Editing.Cancel)
			r.Put("/{id}", h.Editing.Select)
		})

		r.Get("/maintenance", h.Editing.Maintenance)
		r.Get("/maintenance/{id}", h.Editing.Maintenance)

		r.Get("/reports/stock", h.Report.Stock)
		if h.Report.JournalEnabled() {
			r.Get("/activity", h.Report.Activity)
		}
	})

	return r
}
