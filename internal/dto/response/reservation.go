package response

import (
	"time"

	"cinema-tickets/internal/data/entity"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	ScreeningID uuid.UUID `json:"screening_id"`
	Row         int       `json:"row"`
	Seat        int       `json:"seat"`
	ReservedAt  time.Time `json:"reserved_at"`
}

func ToReservationResponse(hold *entity.SeatHold) *ReservationResponse {
	return &ReservationResponse{
		ID:          hold.ID,
		ScreeningID: hold.ScreeningID,
		Row:         hold.RowNumber,
		Seat:        hold.SeatNumber,
		ReservedAt:  hold.ReservedAt,
	}
}

// MyReservationResponse is one reservation joined with its screening
// details for the caller's ticket list.
type MyReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	ScreeningID uuid.UUID `json:"screening_id"`
	FilmTitle   string    `json:"film_title"`
	CinemaName  string    `json:"cinema_name"`
	StartTime   time.Time `json:"start_time"`
	Row         int       `json:"row"`
	Seat        int       `json:"seat"`
	ReservedAt  time.Time `json:"reserved_at"`
}

type CancelAllResponse struct {
	ScreeningID   uuid.UUID `json:"screening_id"`
	HoldsReleased int64     `json:"holds_released"`
}
