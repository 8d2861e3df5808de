package repository

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context) ([]*entity.Screening, error)

	// Delete removes the screening row. It takes a Queryer because it
	// always runs inside the cascade transaction together with the
	// removal of the screening's holds.
	Delete(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, cinema_id, film_title, start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.CinemaID,
		screening.FilmTitle,
		screening.StartTime,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("film_title", screening.FilmTitle),
			zap.String("cinema_id", screening.CinemaID.String()),
		)
		return fmt.Errorf("create screening %s: %w", screening.FilmTitle, err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, cinema_id, film_title, start_time, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.CinemaID,
		&screening.FilmTitle,
		&screening.StartTime,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	query := `
		SELECT id, cinema_id, film_title, start_time, created_at, updated_at
		FROM screenings
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all screenings", zap.Error(err))
		return nil, fmt.Errorf("find all screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.CinemaID,
			&screening.FilmTitle,
			&screening.StartTime,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}

	return screenings, nil
}

func (r *screeningRepository) Delete(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return false, fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
