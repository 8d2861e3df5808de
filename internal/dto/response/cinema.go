package response

import (
	"time"

	"cinema-tickets/internal/data/entity"

	"github.com/google/uuid"
)

type CinemaResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Rows        int       `json:"rows"`
	SeatsPerRow int       `json:"seats_per_row"`
	TotalSeats  int       `json:"total_seats"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToCinemaResponse(cinema *entity.Cinema) *CinemaResponse {
	return &CinemaResponse{
		ID:          cinema.ID,
		Name:        cinema.Name,
		Rows:        cinema.Rows,
		SeatsPerRow: cinema.SeatsPerRow,
		TotalSeats:  cinema.TotalSeats(),
		CreatedAt:   cinema.CreatedAt,
	}
}

func ToCinemaListResponse(cinemas []*entity.Cinema) []*CinemaResponse {
	responses := make([]*CinemaResponse, 0, len(cinemas))
	for _, cinema := range cinemas {
		responses = append(responses, ToCinemaResponse(cinema))
	}
	return responses
}
