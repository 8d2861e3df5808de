package request

// UpdateUserRequest carries the editable profile fields. LockVersion is
// the version token the client last saw; when omitted the update is
// unconditional.
type UpdateUserRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Surname     string  `json:"surname" validate:"required,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	LockVersion *string `json:"lock_version" validate:"omitempty,uuid"`
}
