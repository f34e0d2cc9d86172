package models

import "time"

// Activity defines the activity model based on the 'activities' table
type Activity struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Schedule        string    `json:"schedule" db:"schedule"`
	MaxParticipants int       `json:"maxParticipants" db:"max_participants"`
	CreatedBy       *int64    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}