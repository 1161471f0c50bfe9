package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
)

type rosterStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentEnrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.CourseEnrollment, error)
	ListAll(ctx context.Context) ([]models.RosterEntry, error)
}

// RosterService serves the read projections of the ledger.
type RosterService struct {
	profiles StudentProfileResolver
	repo     rosterStore
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewRosterService constructs RosterService.
func NewRosterService(profiles StudentProfileResolver, repo rosterStore, metrics *MetricsService, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{profiles: profiles, repo: repo, metrics: metrics, logger: logger}
}

// ByStudent lists the user's enrollments joined with course details. A user
// seen for the first time gets a fresh profile and an empty list.
func (s *RosterService) ByStudent(ctx context.Context, userID string) ([]models.StudentEnrollment, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	profile, err := resolveProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	enrollments, err := s.repo.ListByStudent(ctx, profile.ID)
	s.metrics.ObserveDBQuery("enrollment_list_student", time.Since(start))
	if err != nil {
		return nil, storeError(err, "failed to list student enrollments")
	}
	return enrollments, nil
}

// ByCourse lists the course roster joined with student details.
func (s *RosterService) ByCourse(ctx context.Context, courseID string) ([]models.CourseEnrollment, error) {
	if courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}
	start := time.Now()
	enrollments, err := s.repo.ListByCourse(ctx, courseID)
	s.metrics.ObserveDBQuery("enrollment_list_course", time.Since(start))
	if err != nil {
		return nil, storeError(err, "failed to list course enrollments")
	}
	return enrollments, nil
}

// All lists every enrollment on the platform.
func (s *RosterService) All(ctx context.Context) ([]models.RosterEntry, error) {
	start := time.Now()
	entries, err := s.repo.ListAll(ctx)
	s.metrics.ObserveDBQuery("enrollment_list_all", time.Since(start))
	if err != nil {
		return nil, storeError(err, "failed to list enrollments")
	}
	return entries, nil
}
