package usecase

import (
	"context"
	"fmt"
	"time"

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

type UserService interface {
	List(ctx context.Context) ([]*response.UserResponse, error)
	Get(ctx context.Context, actor Actor, targetID uuid.UUID) (*response.UserResponse, error)

	// UpdateProfile applies a profile edit. When the request carries a
	// lock version it must match the stored one; a mismatch reports
	// repository.ErrConflict and the profile is left untouched.
	UpdateProfile(ctx context.Context, actor Actor, targetID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)

	// Delete removes a user and every seat hold they own in one
	// transaction. Admins only; self-deletion and deleting another
	// admin are rejected.
	Delete(ctx context.Context, actor Actor, targetID uuid.UUID) (*response.DeleteUserResponse, error)
}

type userService struct {
	repo      *repository.Repository
	log       *zap.Logger
	roomCache RoomCache
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewUserService(
	repo *repository.Repository,
	log *zap.Logger,
	roomCache RoomCache,
	publisher events.Publisher,
	m *metrics.Metrics,
) UserService {
	return &userService{
		repo:      repo,
		log:       log.With(zap.String("service", "user")),
		roomCache: roomCache,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *userService) List(ctx context.Context) ([]*response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.ToUserListResponse(users), nil
}

func (s *userService) Get(ctx context.Context, actor Actor, targetID uuid.UUID) (*response.UserResponse, error) {
	if !CanViewProfile(actor, targetID) {
		return nil, fmt.Errorf("cannot view profile %s: %w", targetID.String(), ErrForbidden)
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", targetID.String(), repository.ErrNotFound)
	}

	return response.ToUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor Actor, targetID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}

	var expectedVersion *uuid.UUID
	if req.LockVersion != nil {
		version, err := uuid.Parse(*req.LockVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid lock version: %w", ErrValidation)
		}
		expectedVersion = &version
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", targetID.String(), repository.ErrNotFound)
	}

	if !CanEditProfile(actor, user) {
		return nil, fmt.Errorf("cannot edit profile %s: %w", targetID.String(), ErrForbidden)
	}

	user.Name = req.Name
	user.Surname = req.Surname
	user.Phone = req.Phone
	user.LockVersion = uuid.New()
	user.UpdatedAt = time.Now()

	ok, err := s.repo.User.UpdateProfile(ctx, user, expectedVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Nothing matched: either the profile vanished or the version
		// went stale. Re-read to tell the two apart.
		current, err := s.repo.User.FindByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("user %s: %w", targetID.String(), repository.ErrNotFound)
		}
		return nil, fmt.Errorf("profile %s changed since last read: %w",
			targetID.String(), repository.ErrConflict)
	}

	s.log.Info("User profile updated",
		zap.String("user_id", targetID.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	return response.ToUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, targetID uuid.UUID) (*response.DeleteUserResponse, error) {
	if !CanDeleteUser(actor) {
		return nil, fmt.Errorf("cannot delete user %s: %w", targetID.String(), ErrForbidden)
	}
	if actor.ID == targetID {
		return nil, fmt.Errorf("cannot delete own account: %w", ErrValidation)
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", targetID.String(), repository.ErrNotFound)
	}
	if user.IsAdmin() {
		return nil, fmt.Errorf("cannot delete admin account %s: %w", targetID.String(), ErrForbidden)
	}

	// Snapshot the screenings whose grids change, before the holds are
	// gone.
	holds, err := s.repo.SeatHold.FindByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	touched := make(map[uuid.UUID]struct{}, len(holds))
	for _, hold := range holds {
		touched[hold.ScreeningID] = struct{}{}
	}

	var holdsReleased int64
	err = s.repo.Tx.WithTx(ctx, func(q database.Queryer) error {
		count, err := s.repo.SeatHold.DeleteByUser(ctx, q, targetID)
		if err != nil {
			return err
		}
		holdsReleased = count

		ok, err := s.repo.User.Delete(ctx, q, targetID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("user %s: %w", targetID.String(), repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.roomCache != nil {
		for screeningID := range touched {
			if err := s.roomCache.Invalidate(ctx, screeningID); err != nil {
				s.log.Warn("Failed to invalidate room state cache",
					zap.Error(err),
					zap.String("screening_id", screeningID.String()),
				)
			}
		}
	}
	if s.publisher != nil {
		event := events.UserDeletedEvent{
			UserID:        targetID,
			HoldsReleased: holdsReleased,
			OccurredAt:    time.Now(),
		}
		if err := s.publisher.Publish(ctx, events.RoutingKeyUserDeleted, event); err != nil {
			s.log.Warn("Failed to publish event",
				zap.Error(err),
				zap.String("routing_key", events.RoutingKeyUserDeleted),
			)
		}
	}
	s.metrics.ObserveRelease("user_cascade", holdsReleased)

	s.log.Info("User deleted",
		zap.String("user_id", targetID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.Int64("holds_released", holdsReleased),
	)

	return &response.DeleteUserResponse{
		UserID:        targetID,
		HoldsReleased: holdsReleased,
	}, nil
}
