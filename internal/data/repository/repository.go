package repository

import (
	"cinema-tickets/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Cinema    CinemaRepository
	Screening ScreeningRepository
	SeatHold  SeatHoldRepository
	User      UserRepository

	// Tx runs multi-statement cascades atomically. Tests swap in an
	// in-memory runner.
	Tx database.TxRunner
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Cinema:    NewCinemaRepository(db, log),
		Screening: NewScreeningRepository(db, log),
		SeatHold:  NewSeatHoldRepository(db, log),
		User:      NewUserRepository(db, log),
		Tx:        database.NewTxRunner(db),
	}
}
