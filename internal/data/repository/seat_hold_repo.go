package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// uniqueViolationCode is the SQLSTATE pgx reports when an insert is
// rejected by a unique index.
const uniqueViolationCode = "23505"

type SeatHoldRepository interface {
	// Create inserts a hold. When the (screening_id, row_number,
	// seat_number) unique index rejects the insert because a concurrent
	// writer committed first, the error is ErrConflict; any other
	// failure propagates as-is.
	Create(ctx context.Context, hold *entity.SeatHold) error

	FindBySeat(ctx context.Context, screeningID uuid.UUID, row, seat int) (*entity.SeatHold, error)
	FindByScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.SeatHold, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SeatHold, error)
	CountsByScreening(ctx context.Context) (map[uuid.UUID]int64, error)

	// DeleteOwned removes the hold at the given coordinates only when
	// it belongs to userID. A hold owned by someone else reports false,
	// same as no hold at all.
	DeleteOwned(ctx context.Context, screeningID, userID uuid.UUID, row, seat int) (bool, error)

	DeleteByScreeningAndUser(ctx context.Context, screeningID, userID uuid.UUID) (int64, error)

	// Cascade steps; always called inside a transaction.
	DeleteByScreening(ctx context.Context, q database.Queryer, screeningID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, q database.Queryer, userID uuid.UUID) (int64, error)
}

type seatHoldRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatHoldRepository(db database.PgxIface, log *zap.Logger) SeatHoldRepository {
	return &seatHoldRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_hold")),
	}
}

func (r *seatHoldRepository) Create(ctx context.Context, hold *entity.SeatHold) error {
	query := `
		INSERT INTO seat_holds (id, screening_id, user_id, row_number, seat_number, reserved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		hold.ID,
		hold.ScreeningID,
		hold.UserID,
		hold.RowNumber,
		hold.SeatNumber,
		hold.ReservedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// Lost the race against another writer for the same seat.
			return fmt.Errorf("seat %d-%d for screening %s: %w",
				hold.RowNumber, hold.SeatNumber, hold.ScreeningID.String(), ErrConflict)
		}

		r.log.Error("Failed to create seat hold",
			zap.Error(err),
			zap.String("screening_id", hold.ScreeningID.String()),
			zap.Int("row", hold.RowNumber),
			zap.Int("seat", hold.SeatNumber),
		)
		return fmt.Errorf("create seat hold for screening %s: %w", hold.ScreeningID.String(), err)
	}

	return nil
}

func (r *seatHoldRepository) FindBySeat(ctx context.Context, screeningID uuid.UUID, row, seat int) (*entity.SeatHold, error) {
	query := `
		SELECT id, screening_id, user_id, row_number, seat_number, reserved_at
		FROM seat_holds
		WHERE screening_id = $1 AND row_number = $2 AND seat_number = $3
	`

	var hold entity.SeatHold
	err := r.db.QueryRow(ctx, query, screeningID, row, seat).Scan(
		&hold.ID,
		&hold.ScreeningID,
		&hold.UserID,
		&hold.RowNumber,
		&hold.SeatNumber,
		&hold.ReservedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat hold",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
			zap.Int("row", row),
			zap.Int("seat", seat),
		)
		return nil, fmt.Errorf("find seat hold for screening %s: %w", screeningID.String(), err)
	}

	return &hold, nil
}

func (r *seatHoldRepository) FindByScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.SeatHold, error) {
	query := `
		SELECT id, screening_id, user_id, row_number, seat_number, reserved_at
		FROM seat_holds
		WHERE screening_id = $1
		ORDER BY row_number, seat_number
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find seat holds by screening",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find seat holds by screening %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	return scanHolds(rows, r.log)
}

func (r *seatHoldRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SeatHold, error) {
	query := `
		SELECT sh.id, sh.screening_id, sh.user_id, sh.row_number, sh.seat_number, sh.reserved_at
		FROM seat_holds sh
		INNER JOIN screenings s ON sh.screening_id = s.id
		WHERE sh.user_id = $1
		ORDER BY s.start_time, sh.row_number, sh.seat_number
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find seat holds by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find seat holds by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanHolds(rows, r.log)
}

func (r *seatHoldRepository) CountsByScreening(ctx context.Context) (map[uuid.UUID]int64, error) {
	query := `
		SELECT screening_id, COUNT(*)
		FROM seat_holds
		GROUP BY screening_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count seat holds by screening", zap.Error(err))
		return nil, fmt.Errorf("count seat holds by screening: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var screeningID uuid.UUID
		var count int64
		if err := rows.Scan(&screeningID, &count); err != nil {
			r.log.Error("Failed to scan hold count row", zap.Error(err))
			return nil, fmt.Errorf("scan hold count row: %w", err)
		}
		counts[screeningID] = count
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate hold count rows: %w", err)
	}

	return counts, nil
}

func (r *seatHoldRepository) DeleteOwned(ctx context.Context, screeningID, userID uuid.UUID, row, seat int) (bool, error) {
	query := `
		DELETE FROM seat_holds
		WHERE screening_id = $1 AND user_id = $2 AND row_number = $3 AND seat_number = $4
	`

	result, err := r.db.Exec(ctx, query, screeningID, userID, row, seat)
	if err != nil {
		r.log.Error("Failed to delete owned seat hold",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
			zap.String("user_id", userID.String()),
			zap.Int("row", row),
			zap.Int("seat", seat),
		)
		return false, fmt.Errorf("delete seat hold for screening %s: %w", screeningID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *seatHoldRepository) DeleteByScreeningAndUser(ctx context.Context, screeningID, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM seat_holds WHERE screening_id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, screeningID, userID)
	if err != nil {
		r.log.Error("Failed to delete seat holds by screening and user",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete seat holds for screening %s user %s: %w",
			screeningID.String(), userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *seatHoldRepository) DeleteByScreening(ctx context.Context, q database.Queryer, screeningID uuid.UUID) (int64, error) {
	query := `DELETE FROM seat_holds WHERE screening_id = $1`

	result, err := q.Exec(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to delete seat holds by screening",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return 0, fmt.Errorf("delete seat holds by screening %s: %w", screeningID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *seatHoldRepository) DeleteByUser(ctx context.Context, q database.Queryer, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM seat_holds WHERE user_id = $1`

	result, err := q.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to delete seat holds by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete seat holds by user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func scanHolds(rows pgx.Rows, log *zap.Logger) ([]*entity.SeatHold, error) {
	var holds []*entity.SeatHold
	for rows.Next() {
		var hold entity.SeatHold
		err := rows.Scan(
			&hold.ID,
			&hold.ScreeningID,
			&hold.UserID,
			&hold.RowNumber,
			&hold.SeatNumber,
			&hold.ReservedAt,
		)
		if err != nil {
			log.Error("Failed to scan seat hold row", zap.Error(err))
			return nil, fmt.Errorf("scan seat hold row: %w", err)
		}
		holds = append(holds, &hold)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat hold rows: %w", err)
	}

	return holds, nil
}
