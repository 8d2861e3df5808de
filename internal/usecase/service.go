package usecase

import (
	"context"

	"cinema-tickets/internal/data/cache"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/events"
	"cinema-tickets/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomCache caches the viewer-agnostic room state per screening. Every
// hold mutation must invalidate the affected screening's entry so the
// grid never serves seats that no longer exist. Satisfied by
// cache.RoomStateCache; tests substitute a recording fake.
type RoomCache interface {
	Get(ctx context.Context, screeningID uuid.UUID) (*cache.RoomSnapshot, error)
	Set(ctx context.Context, snapshot *cache.RoomSnapshot) error
	Invalidate(ctx context.Context, screeningID uuid.UUID) error
}

type Service struct {
	Cinema      CinemaService
	Screening   ScreeningService
	Reservation ReservationService
	User        UserService
}

func NewService(
	repo *repository.Repository,
	log *zap.Logger,
	roomCache RoomCache,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		Cinema:      NewCinemaService(repo, log),
		Screening:   NewScreeningService(repo, log, roomCache, publisher, m),
		Reservation: NewReservationService(repo, log, roomCache, publisher, m),
		User:        NewUserService(repo, log, roomCache, publisher, m),
	}
}
