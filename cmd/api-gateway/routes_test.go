package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ledger-api/internal/dto"
	"github.com/noah-isme/lms-ledger-api/internal/handler"
	"github.com/noah-isme/lms-ledger-api/internal/models"
	"github.com/noah-isme/lms-ledger-api/internal/service"
	"github.com/noah-isme/lms-ledger-api/pkg/export"
)

type ledgerStub struct{}

func (ledgerStub) Enroll(context.Context, dto.EnrollmentKeyRequest) (*models.Enrollment, error) {
	return nil, nil
}

func (ledgerStub) Remove(context.Context, dto.EnrollmentKeyRequest) error { return nil }

func (ledgerStub) UpdateGrade(context.Context, dto.UpdateGradeRequest) (*models.Enrollment, error) {
	return nil, nil
}

func (ledgerStub) ByStudent(context.Context, string) ([]models.StudentEnrollment, error) {
	return []models.StudentEnrollment{}, nil
}

func (ledgerStub) ByCourse(context.Context, string) ([]models.CourseEnrollment, error) {
	return []models.CourseEnrollment{}, nil
}

func (ledgerStub) All(context.Context) ([]models.RosterEntry, error) {
	return []models.RosterEntry{}, nil
}

func (ledgerStub) Calculate(context.Context, string) (*models.GPASummary, error) {
	return &models.GPASummary{}, nil
}

func (ledgerStub) CourseRoster(context.Context, string, export.Format) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "r.csv", ContentType: "text/csv", Body: []byte("x\n")}, nil
}

func newTestRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	stub := ledgerStub{}
	registerRoutes(r.Group("/api/v1"), tokens,
		handler.NewEnrollmentHandler(stub, stub, stub, nil),
		handler.NewGPAHandler(stub),
		handler.NewExportHandler(stub))
	return r
}

func TestRoutesEnforceRoles(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: "s3cret"})
	studentToken, err := tokens.Issue("u1", models.RoleStudent)
	require.NoError(t, err)
	adminToken, err := tokens.Issue("a1", models.RoleAdmin)
	require.NoError(t, err)
	r := newTestRouter(tokens)

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/v1/enrollments/me", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/enrollments/me", studentToken, http.StatusOK},
		{http.MethodGet, "/api/v1/enrollments/me/gpa", studentToken, http.StatusOK},
		{http.MethodGet, "/api/v1/enrollments", studentToken, http.StatusForbidden},
		{http.MethodGet, "/api/v1/enrollments", adminToken, http.StatusOK},
		{http.MethodGet, "/api/v1/courses/c1/enrollments", studentToken, http.StatusForbidden},
		{http.MethodGet, "/api/v1/courses/c1/enrollments/export", adminToken, http.StatusOK},
		{http.MethodGet, "/api/v1/students/u1/gpa", studentToken, http.StatusForbidden},
		{http.MethodGet, "/api/v1/students/u1/gpa", adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}
