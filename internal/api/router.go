package api

import (
	"github.com/go-chi/chi/v5"
)

func NewRouter(handlers *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", handlers.HandleRoot)
	r.Get("/metrics", handlers.HandleMetrics)
	r.Get("/api/summary/{steam_id}", handlers.HandleSummary)

	// Rendered pages and steam_data.json
	r.Handle("/*", handlers.FileServer())

	return r
}
