package web

import (
	"net/http"

	"finpulse/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService the route handlers call into.
type Handler struct {
	svc app.ApplicationService
}

// NewHandler creates and wires the chi router with all routes.
// allowedOrigins is the comma-separated ALLOWED_ORIGINS value; empty disables
// CORS entirely.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	r.Route("/api/invoices", func(r chi.Router) {
		r.Post("/", h.createInvoice)
		r.Get("/", h.listInvoices)
		r.Get("/{id}", h.getInvoice)
		r.Patch("/{id}/status", h.updateInvoiceStatus)
		r.Post("/{id}/sync", h.syncInvoice)
	})

	r.Route("/api/metrics", func(r chi.Router) {
		r.Get("/dashboard", h.dashboardMetrics)
		r.Get("/advance-tax", h.advanceTaxSchedule)
		r.Get("/cash-cycle", h.cashCycle)
	})

	r.Post("/api/extract", h.extractInvoice)

	return r
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
