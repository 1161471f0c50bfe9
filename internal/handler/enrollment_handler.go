package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ledger-api/internal/dto"
	"github.com/noah-isme/lms-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
	"github.com/noah-isme/lms-ledger-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, req dto.EnrollmentKeyRequest) (*models.Enrollment, error)
	Remove(ctx context.Context, req dto.EnrollmentKeyRequest) error
}

type gradeService interface {
	UpdateGrade(ctx context.Context, req dto.UpdateGradeRequest) (*models.Enrollment, error)
}

type rosterService interface {
	ByStudent(ctx context.Context, userID string) ([]models.StudentEnrollment, error)
	ByCourse(ctx context.Context, courseID string) ([]models.CourseEnrollment, error)
	All(ctx context.Context) ([]models.RosterEntry, error)
}

type rosterInvalidator interface {
	Invalidate(ctx context.Context)
}

// courseTermBody is the body of caller-scoped enrollment mutations.
type courseTermBody struct {
	CourseID string `json:"courseId"`
	Term     string `json:"term"`
}

// EnrollmentHandler exposes enrollment and roster endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
	grades      gradeService
	roster      rosterService
	invalidator rosterInvalidator
}

// NewEnrollmentHandler constructs the handler. invalidator may be nil when roster caching is off.
func NewEnrollmentHandler(enrollments enrollmentService, grades gradeService, roster rosterService, invalidator rosterInvalidator) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, grades: grades, roster: roster, invalidator: invalidator}
}

// Enroll godoc
// @Summary Enroll the caller in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body courseTermBody true "Course and term"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope "Already enrolled"
// @Failure 422 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	req, ok := h.bindCallerKey(c)
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if enrollment == nil {
		response.JSON(c, http.StatusOK, nil, map[string]interface{}{"created": false})
		return
	}
	h.invalidate(c)
	response.Created(c, enrollment)
}

// Remove godoc
// @Summary Remove the caller's enrollment
// @Tags Enrollments
// @Accept json
// @Param payload body courseTermBody true "Course and term"
// @Success 204
// @Router /enrollments [delete]
func (h *EnrollmentHandler) Remove(c *gin.Context) {
	req, ok := h.bindCallerKey(c)
	if !ok {
		return
	}
	if err := h.enrollments.Remove(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c)
	response.NoContent(c)
}

// UpdateGrade godoc
// @Summary Set the grade of an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.UpdateGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/grade [put]
func (h *EnrollmentHandler) UpdateGrade(c *gin.Context) {
	var req dto.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.grades.UpdateGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if enrollment == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found"))
		return
	}
	h.invalidate(c)
	response.JSON(c, http.StatusOK, enrollment)
}

// Mine godoc
// @Summary List the caller's enrollments
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/me [get]
func (h *EnrollmentHandler) Mine(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollments, err := h.roster.ByStudent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, map[string]interface{}{"count": len(enrollments)})
}

// ByCourse godoc
// @Summary List a course roster
// @Tags Enrollments
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/enrollments [get]
func (h *EnrollmentHandler) ByCourse(c *gin.Context) {
	enrollments, err := h.roster.ByCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, map[string]interface{}{"count": len(enrollments)})
}

// All godoc
// @Summary List every enrollment
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) All(c *gin.Context) {
	entries, err := h.roster.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}

func (h *EnrollmentHandler) bindCallerKey(c *gin.Context) (dto.EnrollmentKeyRequest, bool) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return dto.EnrollmentKeyRequest{}, false
	}
	var body courseTermBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return dto.EnrollmentKeyRequest{}, false
	}
	return dto.EnrollmentKeyRequest{UserID: userID, CourseID: body.CourseID, Term: body.Term}, true
}

func (h *EnrollmentHandler) invalidate(c *gin.Context) {
	if h.invalidator != nil {
		h.invalidator.Invalidate(c.Request.Context())
	}
}
