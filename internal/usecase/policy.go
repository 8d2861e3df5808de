package usecase

import (
	"cinema-tickets/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the caller identity resolved by the identity middleware.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// CanViewProfile allows admins to read any profile and everyone else
// only their own.
func CanViewProfile(actor Actor, targetID uuid.UUID) bool {
	return actor.Admin || actor.ID == targetID
}

// CanEditProfile allows self-edits always. Admins may edit customer
// profiles but not other admins' profiles.
func CanEditProfile(actor Actor, target *entity.User) bool {
	if actor.ID == target.ID {
		return true
	}
	return actor.Admin && !target.IsAdmin()
}

// CanDeleteUser requires an admin caller. Self-deletion and deleting
// another admin are rejected separately by the user service so the
// two cases get distinct errors.
func CanDeleteUser(actor Actor) bool {
	return actor.Admin
}
