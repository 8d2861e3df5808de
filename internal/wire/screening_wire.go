package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/screenings - List all screenings with occupancy (public)
	r.Get("/api/screenings", screeningHandler.List)

	// GET /api/screenings/{id} - Full seat grid; identified callers see
	// their own seats marked (public)
	r.Get("/api/screenings/{id}", screeningHandler.GetRoomState)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/screenings", func(r chi.Router) {
		r.Use(middleware.Admin())

		r.Post("/", screeningHandler.Create)       // Create screening
		r.Delete("/{id}", screeningHandler.Delete) // Delete screening + its holds
	})
}
