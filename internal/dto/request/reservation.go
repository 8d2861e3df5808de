package request

type ReserveSeatRequest struct {
	ScreeningID string `json:"screening_id" validate:"required,uuid"`
	Row         int    `json:"row" validate:"required,min=1,max=50"`
	Seat        int    `json:"seat" validate:"required,min=1,max=50"`
}

type ReleaseSeatRequest struct {
	ScreeningID string `json:"screening_id" validate:"required,uuid"`
	Row         int    `json:"row" validate:"required,min=1,max=50"`
	Seat        int    `json:"seat" validate:"required,min=1,max=50"`
}
