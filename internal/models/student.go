package models

import "time"

// StudentProfile is the canonical student record derived 1:1 from a user.
type StudentProfile struct {
	ID             string    `db:"student_id" json:"student_id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Major          *string   `db:"major" json:"major,omitempty"`
	EnrollmentYear *int      `db:"enrollment_year" json:"enrollment_year,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
