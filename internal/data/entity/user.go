package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is a profile record. LockVersion is an opaque token replaced
// on every successful profile write; clients echo it back so lost
// updates surface as conflicts instead of silent overwrites.
type User struct {
	Base
	Email       string    `db:"email"`
	Name        string    `db:"name"`
	Surname     string    `db:"surname"`
	Phone       *string   `db:"phone"`
	Role        UserRole  `db:"role"`
	LockVersion uuid.UUID `db:"lock_version"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
