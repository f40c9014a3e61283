package dto

import (
	"time"

	"github.com/keynertyc/Fullstack-Test-01/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries the user together with a freshly signed token.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
