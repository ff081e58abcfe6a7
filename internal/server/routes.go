package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes returns the full router: /health, /metrics and the /api subtree.
// A nil gatherer omits /metrics.
func Routes(h *Handler, metrics prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.ServeHealth)
	if metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	}
	r.Mount("/api", APIRoutes(h))
	return r
}

// APIRoutes returns the progress API, mounted under /api by Routes.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/books", h.ServeBooks)
	r.Get("/books/{id}", h.ServeBook)
	r.Post("/books/{id}/toggle", h.HandleToggleBook)
	r.Post("/books/{id}/favorite", h.HandleFavoriteBook)
	r.Put("/books/{id}/date", h.HandleSetDate)
	r.Post("/books/{id}/chapters/{n}/toggle", h.HandleToggleChapter)
	r.Post("/books/{id}/chapters/{n}/favorite", h.HandleFavoriteChapter)

	r.Get("/progress", h.ServeProgress)
	r.Delete("/progress", h.HandleReset)
	r.Get("/summary", h.ServeSummary)
	r.Get("/favorites", h.ServeFavorites)
	r.Put("/place", h.HandleSetPlace)
	r.Delete("/place", h.HandleClearPlace)
	r.Get("/reflection", h.ServeReflection)
	return r
}
