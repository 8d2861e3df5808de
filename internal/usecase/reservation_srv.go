package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/internal/events"
	"cinema-tickets/pkg/metrics"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Reserve attempts to take one seat for the caller. Exactly one of
	// any number of concurrent attempts on the same seat succeeds; the
	// rest get repository.ErrConflict.
	Reserve(ctx context.Context, actor Actor, req *request.ReserveSeatRequest) (*response.ReservationResponse, error)

	// Release gives up a seat the caller holds. Releasing a seat held
	// by someone else, or not held at all, reports ErrNotFound.
	Release(ctx context.Context, actor Actor, req *request.ReleaseSeatRequest) error

	// CancelAllForScreening drops every hold the caller has on one
	// screening.
	CancelAllForScreening(ctx context.Context, actor Actor, screeningID uuid.UUID) (*response.CancelAllResponse, error)

	GetMyReservations(ctx context.Context, actor Actor) ([]*response.MyReservationResponse, error)
}

type reservationService struct {
	repo      *repository.Repository
	log       *zap.Logger
	roomCache RoomCache
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewReservationService(
	repo *repository.Repository,
	log *zap.Logger,
	roomCache RoomCache,
	publisher events.Publisher,
	m *metrics.Metrics,
) ReservationService {
	return &reservationService{
		repo:      repo,
		log:       log.With(zap.String("service", "reservation")),
		roomCache: roomCache,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *reservationService) Reserve(ctx context.Context, actor Actor, req *request.ReserveSeatRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		s.metrics.ObserveReservation("validation")
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		s.metrics.ObserveReservation("validation")
		return nil, fmt.Errorf("invalid screening id: %w", ErrValidation)
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		s.metrics.ObserveReservation("error")
		return nil, err
	}
	if screening == nil {
		s.metrics.ObserveReservation("not_found")
		return nil, fmt.Errorf("screening %s: %w", screeningID.String(), repository.ErrNotFound)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, screening.CinemaID)
	if err != nil {
		s.metrics.ObserveReservation("error")
		return nil, err
	}
	if cinema == nil {
		s.metrics.ObserveReservation("error")
		return nil, fmt.Errorf("cinema %s: %w", screening.CinemaID.String(), repository.ErrNotFound)
	}

	if !cinema.Contains(req.Row, req.Seat) {
		s.metrics.ObserveReservation("validation")
		return nil, fmt.Errorf("seat %d-%d outside room of %d rows x %d seats: %w",
			req.Row, req.Seat, cinema.Rows, cinema.SeatsPerRow, ErrValidation)
	}

	// Cheap pre-check. The unique index is the real arbiter; this only
	// avoids a doomed insert when the seat is visibly taken.
	existing, err := s.repo.SeatHold.FindBySeat(ctx, screeningID, req.Row, req.Seat)
	if err != nil {
		s.metrics.ObserveReservation("error")
		return nil, err
	}
	if existing != nil {
		s.metrics.ObserveReservation("conflict")
		return nil, fmt.Errorf("seat %d-%d for screening %s: %w",
			req.Row, req.Seat, screeningID.String(), repository.ErrConflict)
	}

	hold := &entity.SeatHold{
		ID:          uuid.New(),
		ScreeningID: screeningID,
		UserID:      actor.ID,
		RowNumber:   req.Row,
		SeatNumber:  req.Seat,
		ReservedAt:  time.Now(),
	}

	if err := s.repo.SeatHold.Create(ctx, hold); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.metrics.ObserveReservation("conflict")
		} else {
			s.metrics.ObserveReservation("error")
		}
		return nil, err
	}

	s.afterSeatChange(ctx, events.RoutingKeySeatReserved, hold)
	s.metrics.ObserveReservation("success")

	s.log.Info("Seat reserved",
		zap.String("screening_id", screeningID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int("row", req.Row),
		zap.Int("seat", req.Seat),
	)

	return response.ToReservationResponse(hold), nil
}

func (s *reservationService) Release(ctx context.Context, actor Actor, req *request.ReleaseSeatRequest) error {
	if errs := utils.ValidateStruct(req); errs != nil {
		return fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return fmt.Errorf("invalid screening id: %w", ErrValidation)
	}

	ok, err := s.repo.SeatHold.DeleteOwned(ctx, screeningID, actor.ID, req.Row, req.Seat)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no hold on seat %d-%d for screening %s owned by caller: %w",
			req.Row, req.Seat, screeningID.String(), repository.ErrNotFound)
	}

	s.afterSeatChange(ctx, events.RoutingKeySeatReleased, &entity.SeatHold{
		ScreeningID: screeningID,
		UserID:      actor.ID,
		RowNumber:   req.Row,
		SeatNumber:  req.Seat,
	})
	s.metrics.ObserveRelease("release", 1)

	s.log.Info("Seat released",
		zap.String("screening_id", screeningID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int("row", req.Row),
		zap.Int("seat", req.Seat),
	)

	return nil
}

func (s *reservationService) CancelAllForScreening(ctx context.Context, actor Actor, screeningID uuid.UUID) (*response.CancelAllResponse, error) {
	// Read the screening's holds up front so each freed seat can be
	// announced with its coordinates after the delete commits.
	holds, err := s.repo.SeatHold.FindByScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.SeatHold.DeleteByScreeningAndUser(ctx, screeningID, actor.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no holds for screening %s owned by caller: %w",
			screeningID.String(), repository.ErrNotFound)
	}

	if s.roomCache != nil {
		if err := s.roomCache.Invalidate(ctx, screeningID); err != nil {
			s.log.Warn("Failed to invalidate room state cache", zap.Error(err))
		}
	}
	for _, hold := range holds {
		if hold.UserID != actor.ID {
			continue
		}
		s.publish(ctx, events.RoutingKeySeatReleased, events.SeatEvent{
			ScreeningID: screeningID,
			UserID:      actor.ID,
			Row:         hold.RowNumber,
			Seat:        hold.SeatNumber,
			OccurredAt:  time.Now(),
		})
	}
	s.metrics.ObserveRelease("cancel_all", count)

	s.log.Info("All holds cancelled for screening",
		zap.String("screening_id", screeningID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int64("count", count),
	)

	return &response.CancelAllResponse{
		ScreeningID:   screeningID,
		HoldsReleased: count,
	}, nil
}

func (s *reservationService) GetMyReservations(ctx context.Context, actor Actor) ([]*response.MyReservationResponse, error) {
	holds, err := s.repo.SeatHold.FindByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if len(holds) == 0 {
		return []*response.MyReservationResponse{}, nil
	}

	screenings, err := s.repo.Screening.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cinemas, err := s.repo.Cinema.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	screeningsByID := make(map[uuid.UUID]*entity.Screening, len(screenings))
	for _, screening := range screenings {
		screeningsByID[screening.ID] = screening
	}
	cinemasByID := make(map[uuid.UUID]*entity.Cinema, len(cinemas))
	for _, cinema := range cinemas {
		cinemasByID[cinema.ID] = cinema
	}

	results := make([]*response.MyReservationResponse, 0, len(holds))
	for _, hold := range holds {
		item := &response.MyReservationResponse{
			ID:          hold.ID,
			ScreeningID: hold.ScreeningID,
			Row:         hold.RowNumber,
			Seat:        hold.SeatNumber,
			ReservedAt:  hold.ReservedAt,
		}
		if screening, ok := screeningsByID[hold.ScreeningID]; ok {
			item.FilmTitle = screening.FilmTitle
			item.StartTime = screening.StartTime
			if cinema, ok := cinemasByID[screening.CinemaID]; ok {
				item.CinemaName = cinema.Name
			}
		}
		results = append(results, item)
	}

	return results, nil
}

// afterSeatChange invalidates the cached room state and emits the seat
// event. Neither failure aborts the request; the hold is already
// committed.
func (s *reservationService) afterSeatChange(ctx context.Context, routingKey string, hold *entity.SeatHold) {
	if s.roomCache != nil {
		if err := s.roomCache.Invalidate(ctx, hold.ScreeningID); err != nil {
			s.log.Warn("Failed to invalidate room state cache",
				zap.Error(err),
				zap.String("screening_id", hold.ScreeningID.String()),
			)
		}
	}

	s.publish(ctx, routingKey, events.SeatEvent{
		ScreeningID: hold.ScreeningID,
		UserID:      hold.UserID,
		Row:         hold.RowNumber,
		Seat:        hold.SeatNumber,
		OccurredAt:  time.Now(),
	})
}

func (s *reservationService) publish(ctx context.Context, routingKey string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
	}
}
