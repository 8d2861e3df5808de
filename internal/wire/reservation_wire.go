package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// Every reservation operation acts on behalf of the caller.
	r.With(middleware.RequireUser()).Route("/api/reservations", func(r chi.Router) {
		r.Get("/my", reservationHandler.GetMyReservations) // Caller's ticket list
		r.Post("/", reservationHandler.Reserve)            // Take one seat
		r.Delete("/", reservationHandler.Release)          // Give one seat back

		// Drop all of the caller's holds on one screening
		r.Delete("/screening/{screeningId}", reservationHandler.CancelAllForScreening)
	})
}
