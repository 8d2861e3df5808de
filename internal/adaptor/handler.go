package adaptor

import (
	"net/http"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Cinema      *CinemaHandler
	Screening   *ScreeningHandler
	Reservation *ReservationHandler
	User        *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Cinema:      NewCinemaHandler(service.Cinema, log),
		Screening:   NewScreeningHandler(service.Screening, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		User:        NewUserHandler(service.User, log),
	}
}

// actorFromRequest resolves the caller identity the identity middleware
// stored on the context. Routes behind RequireUser always have one.
func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Actor{
		ID:    userID,
		Admin: role == string(entity.RoleAdmin),
	}, true
}
