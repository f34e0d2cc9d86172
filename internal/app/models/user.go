package models

import "time"

// User defines the user model based on the 'users' table. Emails are stored
// normalized (lower-cased, trimmed); see validation.NormalizeEmail.
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	Email      string    `json:"email" db:"email" example:"michael@mergington.edu"`
	Name       *string   `json:"name,omitempty" db:"name" example:"Michael Chen"`
	GradeLevel *int      `json:"gradeLevel,omitempty" db:"grade_level" example:"10"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
