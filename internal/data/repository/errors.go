// Package repository defines the persistence interfaces and their pgx
// implementations. The sentinel errors below are the storage-level
// half of the error taxonomy: services wrap them with context and
// handlers translate them into transport status codes with errors.Is.
package repository

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write loses an optimistic race: a
// seat-hold insert rejected by the unique index, or a profile update
// whose expected version is stale. It is an expected outcome of
// concurrent use, not a fault; callers decide whether to retry.
var ErrConflict = errors.New("conflict")
