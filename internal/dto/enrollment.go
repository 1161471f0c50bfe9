package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/lms-ledger-api/internal/models"
)

// EnrollmentKeyRequest identifies an enrollment by its natural key. UserID is
// filled from the access token for self-service routes.
type EnrollmentKeyRequest struct {
	UserID   string `json:"userId" validate:"required"`
	CourseID string `json:"courseId" validate:"required"`
	Term     string `json:"term" validate:"required,max=32"`
}

// UpdateGradeRequest sets the grade of an existing enrollment. A null grade
// clears it back to ungraded.
type UpdateGradeRequest struct {
	UserID   string  `json:"userId" validate:"required"`
	CourseID string  `json:"courseId" validate:"required"`
	Term     string  `json:"term" validate:"required,max=32"`
	Grade    *string `json:"grade" validate:"omitempty,grade"`
}

// NewValidator returns the validator used for ledger payloads. With strict
// set, the grade tag only admits A, B, C, D, F and W; otherwise any
// non-blank symbol passes through to the ledger.
func NewValidator(strict bool) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		grade := models.NormalizeGrade(fl.Field().String())
		if grade == "" {
			return false
		}
		return !strict || grade.Recognized()
	})
	return v
}
