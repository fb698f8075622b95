package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/terrain/internal/player"
)

func SetupRoutes(handler *Handler, playerHandlers *player.PlayerHandlers) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		playerHandlers.RegisterRoutes(r)

		r.With(player.RequireReady(handler.terrain.Generated)).Route("/terrain", func(r chi.Router) {
			r.Get("/bounds", handler.GetBounds)
			r.Get("/walkable", handler.GetWalkable)
			r.Get("/cells", handler.GetCells)
			r.Get("/vegetation", handler.GetVegetation)
			r.Get("/convert/world", handler.ConvertWorld)
			r.Get("/convert/grid", handler.ConvertGrid)
			r.Get("/stats", handler.GetStats)
		})
	})

	return r
}
