package entity

import (
	"time"

	"github.com/google/uuid"
)

// SeatHold is a committed reservation of one seat for one screening.
// For a fixed screening the (RowNumber, SeatNumber) pair is unique
// across all live holds; the storage unique index enforces it.
type SeatHold struct {
	ID          uuid.UUID `db:"id"`
	ScreeningID uuid.UUID `db:"screening_id"`
	UserID      uuid.UUID `db:"user_id"`
	RowNumber   int       `db:"row_number"`
	SeatNumber  int       `db:"seat_number"`
	ReservedAt  time.Time `db:"reserved_at"`
}
