package entity

import (
	"time"

	"github.com/google/uuid"
)

// Screening is one scheduled showing in a room. Deleting a screening
// destroys all its seat holds in the same transaction.
type Screening struct {
	Base
	CinemaID  uuid.UUID `db:"cinema_id"`
	FilmTitle string    `db:"film_title"`
	StartTime time.Time `db:"start_time"`
}
