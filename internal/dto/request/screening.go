package request

import "time"

type CreateScreeningRequest struct {
	CinemaID  string    `json:"cinema_id" validate:"required,uuid"`
	FilmTitle string    `json:"film_title" validate:"required,max=200"`
	StartTime time.Time `json:"start_time" validate:"required"`
}
