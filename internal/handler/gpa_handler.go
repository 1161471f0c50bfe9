package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	"github.com/noah-isme/lms-ledger-api/pkg/response"
)

type gpaService interface {
	Calculate(ctx context.Context, userID string) (*models.GPASummary, error)
}

// GPAHandler exposes GPA endpoints.
type GPAHandler struct {
	gpa gpaService
}

// NewGPAHandler constructs GPAHandler.
func NewGPAHandler(gpa gpaService) *GPAHandler {
	return &GPAHandler{gpa: gpa}
}

// Mine godoc
// @Summary Calculate the caller's GPA
// @Tags GPA
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/me/gpa [get]
func (h *GPAHandler) Mine(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, userID)
}

// ForStudent godoc
// @Summary Calculate a student's GPA
// @Tags GPA
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /students/{userId}/gpa [get]
func (h *GPAHandler) ForStudent(c *gin.Context) {
	h.respond(c, c.Param("userId"))
}

func (h *GPAHandler) respond(c *gin.Context, userID string) {
	summary, err := h.gpa.Calculate(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
