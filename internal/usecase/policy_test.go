package usecase

import (
	"testing"

	"cinema-tickets/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanViewProfile(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	assert.True(t, CanViewProfile(Actor{ID: self}, self))
	assert.False(t, CanViewProfile(Actor{ID: self}, other))
	assert.True(t, CanViewProfile(Actor{ID: self, Admin: true}, other))
}

func TestCanEditProfile(t *testing.T) {
	selfID := uuid.New()
	customer := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleCustomer}
	admin := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleAdmin}
	self := &entity.User{Base: entity.Base{ID: selfID}, Role: entity.RoleAdmin}

	tests := []struct {
		name   string
		actor  Actor
		target *entity.User
		want   bool
	}{
		{"customer edits self", Actor{ID: customer.ID}, customer, true},
		{"customer edits other", Actor{ID: selfID}, customer, false},
		{"admin edits customer", Actor{ID: selfID, Admin: true}, customer, true},
		{"admin edits other admin", Actor{ID: selfID, Admin: true}, admin, false},
		{"admin edits self", Actor{ID: selfID, Admin: true}, self, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditProfile(tt.actor, tt.target))
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	assert.True(t, CanDeleteUser(Actor{ID: uuid.New(), Admin: true}))
	assert.False(t, CanDeleteUser(Actor{ID: uuid.New()}))
}
