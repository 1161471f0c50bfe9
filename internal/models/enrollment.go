package models

import "time"

// Enrollment links a student to a course for a term. (StudentID, CourseID, Term) is unique.
type Enrollment struct {
	ID             string    `db:"enrollment_id" json:"enrollment_id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	CourseID       string    `db:"course_id" json:"course_id"`
	Term           string    `db:"term" json:"term"`
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
	Grade          *Grade    `db:"grade" json:"grade"`
}

// EnrollmentKey is the natural key of an enrollment.
type EnrollmentKey struct {
	StudentID string
	CourseID  string
	Term      string
}

// StudentEnrollment is an enrollment joined with its course, as shown to the student.
type StudentEnrollment struct {
	Enrollment
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Code        string  `db:"code" json:"code"`
}

// CourseEnrollment is an enrollment joined with the enrolled student, as shown on a course roster.
type CourseEnrollment struct {
	Enrollment
	StudentName    string  `db:"student_name" json:"student_name"`
	StudentEmail   string  `db:"student_email" json:"student_email"`
	Major          *string `db:"major" json:"major"`
	EnrollmentYear *int    `db:"enrollment_year" json:"enrollment_year"`
}

// RosterEntry is an enrollment joined with both student and course for the platform-wide roster.
type RosterEntry struct {
	CourseEnrollment
	Code        string `db:"code" json:"code"`
	CourseTitle string `db:"course_title" json:"course_title"`
}
