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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)

	// UpdateProfile applies the mutable profile fields and the new
	// lock version in one statement. When expectedVersion is non-nil
	// the write only lands if the stored version still matches; the
	// check and the write cannot be separated by another writer.
	// Returns false when no row was updated; the caller decides
	// whether that means the profile is gone or the version is stale.
	UpdateProfile(ctx context.Context, user *entity.User, expectedVersion *uuid.UUID) (bool, error)

	// Delete removes the user row; runs inside the user-deletion
	// cascade transaction.
	Delete(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, surname, phone, role, lock_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Surname,
		user.Phone,
		user.Role,
		user.LockVersion,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, email, name, surname, phone, role, lock_version, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Surname,
		&user.Phone,
		&user.Role,
		&user.LockVersion,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT id, email, name, surname, phone, role, lock_version, created_at, updated_at
		FROM users
		ORDER BY email
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Surname,
			&user.Phone,
			&user.Role,
			&user.LockVersion,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *entity.User, expectedVersion *uuid.UUID) (bool, error) {
	query := `
		UPDATE users
		SET name = $2, surname = $3, phone = $4, lock_version = $5, updated_at = $6
		WHERE id = $1 AND ($7::uuid IS NULL OR lock_version = $7)
	`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Surname,
		user.Phone,
		user.LockVersion,
		user.UpdatedAt,
		expectedVersion,
	)

	if err != nil {
		r.log.Error("Failed to update user profile",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return false, fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *userRepository) Delete(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return false, fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
