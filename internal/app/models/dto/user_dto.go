package dto

import (
	"time"

	"github.com/mergington/activities/internal/app/models"
)

// CreateUserRequest is the payload for creating a user
type CreateUserRequest struct {
	Email      string  `json:"email" binding:"required" example:"michael@mergington.edu"`
	Name       *string `json:"name,omitempty" example:"Michael Chen"`
	GradeLevel *int    `json:"gradeLevel,omitempty" example:"10"`
}

// UpdateUserRequest is the patch payload for updating a user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"`
	Name       *string `json:"name,omitempty"`
	GradeLevel *int    `json:"gradeLevel,omitempty"`
}

// UserResponse is the wire representation of a user
type UserResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	GradeLevel *int      `json:"gradeLevel,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// NewUserResponse maps a user model to its wire representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		GradeLevel: user.GradeLevel,
		CreatedAt:  user.CreatedAt,
	}
}
