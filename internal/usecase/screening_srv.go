package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-tickets/internal/data/cache"
	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/internal/events"
	"cinema-tickets/pkg/database"
	"cinema-tickets/pkg/metrics"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	List(ctx context.Context) ([]*response.ScreeningResponse, error)

	// GetRoomState returns the full seat grid in row-major order.
	// When viewer is non-nil, seats held by that user come back as
	// held_by_viewer instead of held_by_other.
	GetRoomState(ctx context.Context, screeningID uuid.UUID, viewer *uuid.UUID) (*response.RoomStateResponse, error)

	Create(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)

	// Delete removes the screening and every hold on it in one
	// transaction. Observers see either the screening with all its
	// holds or neither.
	Delete(ctx context.Context, screeningID uuid.UUID) (*response.CascadeDeleteResponse, error)
}

type screeningService struct {
	repo      *repository.Repository
	log       *zap.Logger
	roomCache RoomCache
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewScreeningService(
	repo *repository.Repository,
	log *zap.Logger,
	roomCache RoomCache,
	publisher events.Publisher,
	m *metrics.Metrics,
) ScreeningService {
	return &screeningService{
		repo:      repo,
		log:       log.With(zap.String("service", "screening")),
		roomCache: roomCache,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *screeningService) List(ctx context.Context) ([]*response.ScreeningResponse, error) {
	screenings, err := s.repo.Screening.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cinemas, err := s.repo.Cinema.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cinemasByID := make(map[uuid.UUID]*entity.Cinema, len(cinemas))
	for _, cinema := range cinemas {
		cinemasByID[cinema.ID] = cinema
	}

	counts, err := s.repo.SeatHold.CountsByScreening(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*response.ScreeningResponse, 0, len(screenings))
	for _, screening := range screenings {
		item := &response.ScreeningResponse{
			ID:            screening.ID,
			CinemaID:      screening.CinemaID,
			FilmTitle:     screening.FilmTitle,
			StartTime:     screening.StartTime,
			ReservedSeats: counts[screening.ID],
		}
		if cinema, ok := cinemasByID[screening.CinemaID]; ok {
			item.CinemaName = cinema.Name
			item.TotalSeats = cinema.TotalSeats()
		}
		results = append(results, item)
	}

	return results, nil
}

func (s *screeningService) GetRoomState(ctx context.Context, screeningID uuid.UUID, viewer *uuid.UUID) (*response.RoomStateResponse, error) {
	snapshot, err := s.loadSnapshot(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	type seatKey struct{ row, seat int }
	holders := make(map[seatKey]uuid.UUID, len(snapshot.Holds))
	for _, hold := range snapshot.Holds {
		holders[seatKey{hold.Row, hold.Seat}] = hold.UserID
	}

	seats := make([]response.SeatStatus, 0, snapshot.Rows*snapshot.SeatsPerRow)
	for row := 1; row <= snapshot.Rows; row++ {
		for seat := 1; seat <= snapshot.SeatsPerRow; seat++ {
			status := response.SeatAvailable
			if holder, taken := holders[seatKey{row, seat}]; taken {
				if viewer != nil && holder == *viewer {
					status = response.SeatHeldByViewer
				} else {
					status = response.SeatHeldByOther
				}
			}
			seats = append(seats, response.SeatStatus{
				Row:    row,
				Seat:   seat,
				Status: status,
			})
		}
	}

	return &response.RoomStateResponse{
		ScreeningID: snapshot.ScreeningID,
		FilmTitle:   snapshot.FilmTitle,
		CinemaName:  snapshot.CinemaName,
		StartTime:   snapshot.StartTime,
		Rows:        snapshot.Rows,
		SeatsPerRow: snapshot.SeatsPerRow,
		Seats:       seats,
	}, nil
}

// loadSnapshot serves the viewer-agnostic room state from cache when it
// is fresh, rebuilding it from storage otherwise.
func (s *screeningService) loadSnapshot(ctx context.Context, screeningID uuid.UUID) (*cache.RoomSnapshot, error) {
	if s.roomCache != nil {
		snapshot, err := s.roomCache.Get(ctx, screeningID)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("Room state cache read failed",
				zap.Error(err),
				zap.String("screening_id", screeningID.String()),
			)
		}
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID.String(), repository.ErrNotFound)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, screening.CinemaID)
	if err != nil {
		return nil, err
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %s: %w", screening.CinemaID.String(), repository.ErrNotFound)
	}

	holds, err := s.repo.SeatHold.FindByScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	snapshot := &cache.RoomSnapshot{
		ScreeningID: screening.ID,
		FilmTitle:   screening.FilmTitle,
		CinemaName:  cinema.Name,
		StartTime:   screening.StartTime,
		Rows:        cinema.Rows,
		SeatsPerRow: cinema.SeatsPerRow,
		Holds:       make([]cache.HoldEntry, 0, len(holds)),
	}
	for _, hold := range holds {
		snapshot.Holds = append(snapshot.Holds, cache.HoldEntry{
			Row:    hold.RowNumber,
			Seat:   hold.SeatNumber,
			UserID: hold.UserID,
		})
	}

	if s.roomCache != nil {
		if err := s.roomCache.Set(ctx, snapshot); err != nil {
			s.log.Warn("Failed to cache room state",
				zap.Error(err),
				zap.String("screening_id", screeningID.String()),
			)
		}
	}

	return snapshot, nil
}

func (s *screeningService) Create(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}

	cinemaID, err := uuid.Parse(req.CinemaID)
	if err != nil {
		return nil, fmt.Errorf("invalid cinema id: %w", ErrValidation)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, cinemaID)
	if err != nil {
		return nil, err
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %s: %w", cinemaID.String(), repository.ErrNotFound)
	}

	now := time.Now()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CinemaID:  cinemaID,
		FilmTitle: req.FilmTitle,
		StartTime: req.StartTime,
	}

	if err := s.repo.Screening.Create(ctx, screening); err != nil {
		return nil, err
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("film_title", screening.FilmTitle),
	)

	return &response.ScreeningResponse{
		ID:         screening.ID,
		CinemaID:   cinemaID,
		CinemaName: cinema.Name,
		FilmTitle:  screening.FilmTitle,
		StartTime:  screening.StartTime,
		TotalSeats: cinema.TotalSeats(),
	}, nil
}

func (s *screeningService) Delete(ctx context.Context, screeningID uuid.UUID) (*response.CascadeDeleteResponse, error) {
	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID.String(), repository.ErrNotFound)
	}

	var holdsReleased int64
	err = s.repo.Tx.WithTx(ctx, func(q database.Queryer) error {
		count, err := s.repo.SeatHold.DeleteByScreening(ctx, q, screeningID)
		if err != nil {
			return err
		}
		holdsReleased = count

		ok, err := s.repo.Screening.Delete(ctx, q, screeningID)
		if err != nil {
			return err
		}
		if !ok {
			// Raced with another delete; roll back the hold removal so
			// nothing half-disappears.
			return fmt.Errorf("screening %s: %w", screeningID.String(), repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.roomCache != nil {
		if err := s.roomCache.Invalidate(ctx, screeningID); err != nil {
			s.log.Warn("Failed to invalidate room state cache", zap.Error(err))
		}
	}
	if s.publisher != nil {
		event := events.ScreeningDeletedEvent{
			ScreeningID:   screeningID,
			HoldsReleased: holdsReleased,
			OccurredAt:    time.Now(),
		}
		if err := s.publisher.Publish(ctx, events.RoutingKeyScreeningDeleted, event); err != nil {
			s.log.Warn("Failed to publish event",
				zap.Error(err),
				zap.String("routing_key", events.RoutingKeyScreeningDeleted),
			)
		}
	}
	s.metrics.ObserveRelease("screening_cascade", holdsReleased)

	s.log.Info("Screening deleted",
		zap.String("screening_id", screeningID.String()),
		zap.Int64("holds_released", holdsReleased),
	)

	return &response.CascadeDeleteResponse{
		ScreeningID:   screeningID,
		HoldsReleased: holdsReleased,
	}, nil
}
