package models

import "time"

// Registration represents a user registered for an activity. Registrations
// are immutable once created; the only lifecycle transition is deletion.
type Registration struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	ActivityID   int64     `json:"activityId" db:"activity_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}
