package dto

import (
	"time"

	"github.com/taskboard/taskboard/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ReplaceUserRequest payload for PUT /users/:id. Every mutable field is
// replaced; an omitted field is stored empty.
type ReplaceUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UserResponse payload.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithTasksResponse is the composite user view.
type UserWithTasksResponse struct {
	User  UserResponse   `json:"user"`
	Tasks []TaskResponse `json:"tasks"`
}

// NewUserResponse maps a domain user to its response.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
