package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seed inserts the stock rooms and the default admin profile when the
// corresponding tables are empty. Re-running is a no-op.
func Seed(ctx context.Context, db PgxIface, log *zap.Logger) error {
	var cinemaCount int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM cinemas`).Scan(&cinemaCount); err != nil {
		return fmt.Errorf("count cinemas: %w", err)
	}

	if cinemaCount == 0 {
		rooms := []struct {
			name        string
			rows        int
			seatsPerRow int
		}{
			{"Grand Cinema", 10, 15},
			{"City Theater", 8, 12},
			{"Metro Multiplex", 12, 20},
			{"Arts Center", 6, 10},
			{"Mega Screen", 15, 25},
		}

		now := time.Now().UTC()
		for _, room := range rooms {
			_, err := db.Exec(ctx, `
				INSERT INTO cinemas (id, name, rows, seats_per_row, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $5)
			`, uuid.New(), room.name, room.rows, room.seatsPerRow, now)
			if err != nil {
				return fmt.Errorf("seed cinema %s: %w", room.name, err)
			}
		}

		log.Info("Seeded cinemas", zap.Int("count", len(rooms)))
	}

	var userCount int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if userCount == 0 {
		now := time.Now().UTC()
		adminID := uuid.New()
		_, err := db.Exec(ctx, `
			INSERT INTO users (id, email, name, surname, phone, role, lock_version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'admin', $6, $7, $7)
		`, adminID, "admin@cinema.com", "Admin", "User", "1234567890", uuid.New(), now)
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}

		log.Info("Seeded default admin user",
			zap.String("user_id", adminID.String()),
			zap.String("email", "admin@cinema.com"),
		)
	}

	return nil
}
