package usecase

import "errors"

// Service-level sentinels. Handlers map these to HTTP statuses with
// errors.Is; repository.ErrNotFound and repository.ErrConflict pass
// through this layer wrapped, not replaced.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)
