package entity

// Room geometry limits. A room never has more than 50 rows or 50
// seats per row; seat coordinates are 1-based within these bounds.
const (
	MinRows        = 1
	MaxRows        = 50
	MinSeatsPerRow = 1
	MaxSeatsPerRow = 50
)

// Cinema is a screening room. Geometry is immutable once screenings
// reference the room.
type Cinema struct {
	Base
	Name        string `db:"name"`
	Rows        int    `db:"rows"`
	SeatsPerRow int    `db:"seats_per_row"`
}

// Contains reports whether (row, seat) falls inside the room geometry.
func (c *Cinema) Contains(row, seat int) bool {
	return row >= 1 && row <= c.Rows && seat >= 1 && seat <= c.SeatsPerRow
}

// TotalSeats returns the room capacity.
func (c *Cinema) TotalSeats() int {
	return c.Rows * c.SeatsPerRow
}
