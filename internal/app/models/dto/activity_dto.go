package dto

import (
	"time"

	"github.com/mergington/activities/internal/app/models"
)

// CreateActivityRequest is the payload for creating an activity
type CreateActivityRequest struct {
	Name            string `json:"name" binding:"required" example:"Chess Club"`
	Description     string `json:"description" example:"Learn strategies and compete in chess tournaments"`
	Schedule        string `json:"schedule" example:"Fridays, 3:30 PM - 5:00 PM"`
	MaxParticipants int    `json:"maxParticipants" binding:"required" example:"12"`
	CreatedBy       *int64 `json:"createdBy,omitempty"`
}

// ActivityResponse is the wire representation of an activity, annotated with
// its current registration count
type ActivityResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Schedule         string    `json:"schedule"`
	MaxParticipants  int       `json:"maxParticipants"`
	ParticipantCount int       `json:"participantCount"`
	SpotsLeft        int       `json:"spotsLeft"`
	CreatedBy        *int64    `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ActivityListResponse is a paginated list of activities
type ActivityListResponse struct {
	Activities     []ActivityResponse `json:"activities"`
	PaginationInfo PaginationInfo     `json:"pagination"`
}

// NewActivityResponse maps an activity and its registration count to the wire
// representation
func NewActivityResponse(activity *models.Activity, participantCount int) ActivityResponse {
	spotsLeft := activity.MaxParticipants - participantCount
	if spotsLeft < 0 {
		spotsLeft = 0
	}

	return ActivityResponse{
		ID:               activity.ID,
		Name:             activity.Name,
		Description:      activity.Description,
		Schedule:         activity.Schedule,
		MaxParticipants:  activity.MaxParticipants,
		ParticipantCount: participantCount,
		SpotsLeft:        spotsLeft,
		CreatedBy:        activity.CreatedBy,
		CreatedAt:        activity.CreatedAt,
	}
}
