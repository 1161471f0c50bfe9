package models

// GradedCredit is one qualifying (grade, credits) pair feeding the GPA.
type GradedCredit struct {
	Grade   Grade `db:"grade"`
	Credits *int  `db:"credits"`
}

// GPASummary is the weighted grade-point average of a student.
type GPASummary struct {
	GPA          float64 `json:"gpa"`
	TotalCredits int     `json:"totalCredits"`
	CoursesCount int     `json:"coursesCount"`
}
