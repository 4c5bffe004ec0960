package web

import (
	"context"
	"net/http"

	"balance-insight/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService, the chi router, and the per-session
// analysis store.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
	store  *analysisStore
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{
		svc:   svc,
		store: newAnalysisStore(),
	}
	h.store.startPurge(context.Background())

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// File upload: body limit is managed inside the handler (multipart).
	r.Post("/api/analyses", h.createAnalysis)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/analyses/{id}", h.getAnalysis)
		r.Get("/api/analyses/{id}/export", h.exportAnalysis)
		r.Post("/api/analyses/{id}/report", h.generateReport)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// analysisID extracts the {id} URL parameter.
func analysisID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
