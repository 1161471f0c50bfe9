package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	"github.com/noah-isme/lms-ledger-api/pkg/export"
)

func exportFixture() *stubRosterStore {
	major := "Computer Science"
	year := 2023
	grade := models.GradeA
	return &stubRosterStore{byCourse: map[string][]models.CourseEnrollment{
		"c1": {{
			Enrollment: models.Enrollment{
				ID:             "enr-1",
				CourseID:       "c1",
				Term:           "2024FA",
				EnrollmentDate: time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC),
				Grade:          &grade,
			},
			StudentName:    "Ada Lovelace",
			StudentEmail:   "ada@example.edu",
			Major:          &major,
			EnrollmentYear: &year,
		}},
	}}
}

func newExportService() *ExportService {
	roster := NewRosterService(newFakeProfiles(), exportFixture(), nil, nil)
	svc := NewExportService(roster, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceCSV(t *testing.T) {
	result, err := newExportService().CourseRoster(context.Background(), "c1", export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "roster-c1-20240901.csv", result.Filename)
	assert.True(t, strings.HasPrefix(result.ContentType, "text/csv"))
	body := string(result.Body)
	assert.Contains(t, body, "Enrollment ID,Student,Email,Major,Year,Term,Enrolled,Grade")
	assert.Contains(t, body, "enr-1,Ada Lovelace,ada@example.edu,Computer Science,2023,2024FA,2024-08-20,A")
}

func TestExportServicePDF(t *testing.T) {
	result, err := newExportService().CourseRoster(context.Background(), "c1", export.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Body, []byte("%PDF")))
}

func TestExportServiceEmptyRoster(t *testing.T) {
	result, err := newExportService().CourseRoster(context.Background(), "empty", export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Enrollment ID,Student,Email,Major,Year,Term,Enrolled,Grade\n", string(result.Body))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	_, err := newExportService().CourseRoster(context.Background(), "c1", export.Format("xlsx"))
	assert.Error(t, err)
}
