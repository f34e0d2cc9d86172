package dto

import (
	"time"

	"github.com/mergington/activities/internal/app/models"
)

// RegisterRequest registers an existing user for an activity by id
type RegisterRequest struct {
	UserID int64 `json:"userId" binding:"required" example:"1"`
}

// SignUpRequest signs a student up for an activity by email, creating the
// user record on first sign-up
type SignUpRequest struct {
	Email string `json:"email" binding:"required" example:"michael@mergington.edu"`
}

// RegistrationResponse is the wire representation of a registration
type RegistrationResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	ActivityID   int64     `json:"activityId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// ParticipantListResponse lists the users registered for an activity
type ParticipantListResponse struct {
	ActivityID   int64          `json:"activityId"`
	Participants []UserResponse `json:"participants"`
}

// UserActivitiesResponse lists the activities a user is registered for
type UserActivitiesResponse struct {
	UserID     int64              `json:"userId"`
	Activities []ActivityResponse `json:"activities"`
}

// NewRegistrationResponse maps a registration model to its wire representation
func NewRegistrationResponse(reg *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:           reg.ID,
		UserID:       reg.UserID,
		ActivityID:   reg.ActivityID,
		RegisteredAt: reg.RegisteredAt,
	}
}
