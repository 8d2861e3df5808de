package usecase

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CinemaService interface {
	List(ctx context.Context) ([]*response.CinemaResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.CinemaResponse, error)
}

type cinemaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCinemaService(repo *repository.Repository, log *zap.Logger) CinemaService {
	return &cinemaService{
		repo: repo,
		log:  log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) List(ctx context.Context) ([]*response.CinemaResponse, error) {
	cinemas, err := s.repo.Cinema.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.ToCinemaListResponse(cinemas), nil
}

func (s *cinemaService) GetByID(ctx context.Context, id uuid.UUID) (*response.CinemaResponse, error) {
	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %s: %w", id.String(), repository.ErrNotFound)
	}
	return response.ToCinemaResponse(cinema), nil
}
