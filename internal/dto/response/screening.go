package response

import (
	"time"

	"github.com/google/uuid"
)

const (
	SeatAvailable    = "available"
	SeatHeldByOther  = "held_by_other"
	SeatHeldByViewer = "held_by_viewer"
)

type ScreeningResponse struct {
	ID            uuid.UUID `json:"id"`
	CinemaID      uuid.UUID `json:"cinema_id"`
	CinemaName    string    `json:"cinema_name"`
	FilmTitle     string    `json:"film_title"`
	StartTime     time.Time `json:"start_time"`
	TotalSeats    int       `json:"total_seats"`
	ReservedSeats int64     `json:"reserved_seats"`
}

type SeatStatus struct {
	Row    int    `json:"row"`
	Seat   int    `json:"seat"`
	Status string `json:"status"`
}

// RoomStateResponse is the full seat grid for one screening, in
// row-major order. The statuses are already personalized for the
// requesting viewer.
type RoomStateResponse struct {
	ScreeningID uuid.UUID    `json:"screening_id"`
	FilmTitle   string       `json:"film_title"`
	CinemaName  string       `json:"cinema_name"`
	StartTime   time.Time    `json:"start_time"`
	Rows        int          `json:"rows"`
	SeatsPerRow int          `json:"seats_per_row"`
	Seats       []SeatStatus `json:"seats"`
}

type CascadeDeleteResponse struct {
	ScreeningID   uuid.UUID `json:"screening_id"`
	HoldsReleased int64     `json:"holds_released"`
}
