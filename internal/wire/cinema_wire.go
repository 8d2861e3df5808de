package wire

import (
	"cinema-tickets/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCinema(
	r chi.Router,
	cinemaHandler *adaptor.CinemaHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/cinemas - List all screening rooms (public)
	r.Get("/api/cinemas", cinemaHandler.List)

	// GET /api/cinemas/{id} - Get specific room details (public)
	r.Get("/api/cinemas/{id}", cinemaHandler.GetByID)
}
