package database

import (
	"context"
	"fmt"
)

// Bootstrap creates the tables and indexes the application needs.
// Every statement is idempotent so the call is safe on restart.
//
// The unique index on (screening_id, row_number, seat_number) is the
// authority for seat-level mutual exclusion: a concurrent reserve for
// the same coordinates fails the index check at commit time and is
// surfaced to the caller as a conflict.
func Bootstrap(ctx context.Context, db PgxIface) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id           UUID PRIMARY KEY,
			email        TEXT NOT NULL UNIQUE,
			name         TEXT NOT NULL,
			surname      TEXT NOT NULL,
			phone        TEXT,
			role         TEXT NOT NULL DEFAULT 'customer',
			lock_version UUID NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cinemas (
			id            UUID PRIMARY KEY,
			name          TEXT NOT NULL,
			rows          INT NOT NULL CHECK (rows BETWEEN 1 AND 50),
			seats_per_row INT NOT NULL CHECK (seats_per_row BETWEEN 1 AND 50),
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS screenings (
			id         UUID PRIMARY KEY,
			cinema_id  UUID NOT NULL REFERENCES cinemas(id) ON DELETE RESTRICT,
			film_title TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		// Hold rows are removed by explicit transactional cascades, never
		// by a storage-level ON DELETE CASCADE, so an accidental delete
		// of a parent row cannot silently destroy reservations.
		`CREATE TABLE IF NOT EXISTS seat_holds (
			id           UUID PRIMARY KEY,
			screening_id UUID NOT NULL REFERENCES screenings(id) ON DELETE RESTRICT,
			user_id      UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
			row_number   INT NOT NULL CHECK (row_number BETWEEN 1 AND 50),
			seat_number  INT NOT NULL CHECK (seat_number BETWEEN 1 AND 50),
			reserved_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS seat_holds_screening_seat_key
			ON seat_holds (screening_id, row_number, seat_number)`,
		`CREATE INDEX IF NOT EXISTS seat_holds_user_idx ON seat_holds (user_id)`,
		`CREATE INDEX IF NOT EXISTS screenings_start_time_idx ON screenings (start_time)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	return nil
}
