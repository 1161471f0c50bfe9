package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ledger-api/internal/service"
	"github.com/noah-isme/lms-ledger-api/pkg/export"
)

type exporterMock struct {
	lastFormat export.Format
	called     bool
}

func (m *exporterMock) CourseRoster(_ context.Context, courseID string, format export.Format) (*service.ExportResult, error) {
	m.called = true
	m.lastFormat = format
	return &service.ExportResult{Filename: "roster-" + courseID + ".csv", ContentType: format.ContentType(), Body: []byte("a,b\n")}, nil
}

func TestExportHandlerDefaultsToCSV(t *testing.T) {
	exp := &exporterMock{}
	h := NewExportHandler(exp)

	c, w := newContext(http.MethodGet, "/courses/c1/enrollments/export", "", student())
	c.Params = gin.Params{{Key: "courseId", Value: "c1"}}
	h.CourseRoster(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.FormatCSV, exp.lastFormat)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="roster-c1.csv"`)
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	exp := &exporterMock{}
	h := NewExportHandler(exp)

	c, w := newContext(http.MethodGet, "/courses/c1/enrollments/export?format=xlsx", "", student())
	c.Params = gin.Params{{Key: "courseId", Value: "c1"}}
	h.CourseRoster(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, exp.called)
}
