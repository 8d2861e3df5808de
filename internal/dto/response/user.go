package response

import (
	"time"

	"cinema-tickets/internal/data/entity"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Phone       *string   `json:"phone,omitempty"`
	Role        string    `json:"role"`
	LockVersion uuid.UUID `json:"lock_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Surname:     user.Surname,
		Phone:       user.Phone,
		Role:        string(user.Role),
		LockVersion: user.LockVersion,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func ToUserListResponse(users []*entity.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses
}

type DeleteUserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	HoldsReleased int64     `json:"holds_released"`
}
