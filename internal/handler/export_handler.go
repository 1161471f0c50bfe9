package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ledger-api/internal/service"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
	"github.com/noah-isme/lms-ledger-api/pkg/export"
	"github.com/noah-isme/lms-ledger-api/pkg/response"
)

type rosterExporter interface {
	CourseRoster(ctx context.Context, courseID string, format export.Format) (*service.ExportResult, error)
}

// ExportHandler serves roster downloads.
type ExportHandler struct {
	exporter rosterExporter
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exporter rosterExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// CourseRoster godoc
// @Summary Download a course roster
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param courseId path string true "Course ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /courses/{courseId}/enrollments/export [get]
func (h *ExportHandler) CourseRoster(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error()))
		return
	}
	result, err := h.exporter.CourseRoster(c.Request.Context(), c.Param("courseId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
