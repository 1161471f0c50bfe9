package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-ledger-api/internal/dto"
	"github.com/noah-isme/lms-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
)

type enrollmentStore interface {
	Enroll(ctx context.Context, key models.EnrollmentKey) (*models.Enrollment, error)
	Remove(ctx context.Context, key models.EnrollmentKey) (bool, error)
}

// EnrollmentService creates and removes enrollments.
type EnrollmentService struct {
	profiles  StudentProfileResolver
	repo      enrollmentStore
	events    EventPublisher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService. events and metrics may be nil.
func NewEnrollmentService(profiles StudentProfileResolver, repo enrollmentStore, events EventPublisher, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = dto.NewValidator(false)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{profiles: profiles, repo: repo, events: events, metrics: metrics, validator: validate, logger: logger}
}

// Enroll registers the user's student profile in a course for a term. When
// the enrollment already exists nothing is written and (nil, nil) is returned.
func (s *EnrollmentService) Enroll(ctx context.Context, req dto.EnrollmentKeyRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	profile, err := resolveProfile(ctx, s.profiles, req.UserID)
	if err != nil {
		return nil, err
	}

	key := models.EnrollmentKey{StudentID: profile.ID, CourseID: req.CourseID, Term: req.Term}
	start := time.Now()
	enrollment, err := s.repo.Enroll(ctx, key)
	s.metrics.ObserveDBQuery("enrollment_create", time.Since(start))
	if err != nil {
		s.metrics.RecordLedgerOperation("enroll", OutcomeError)
		return nil, storeError(err, "failed to create enrollment")
	}
	if enrollment == nil {
		s.metrics.RecordLedgerOperation("enroll", OutcomeNoop)
		s.logger.Debug("enrollment already exists",
			zap.String("student_id", key.StudentID), zap.String("course_id", key.CourseID), zap.String("term", key.Term))
		return nil, nil
	}

	s.metrics.RecordLedgerOperation("enroll", OutcomeCreated)
	publish(ctx, s.events, s.logger, EventEnrollmentCreated, EnrollmentEvent{
		UserID:       req.UserID,
		StudentID:    enrollment.StudentID,
		CourseID:     enrollment.CourseID,
		Term:         enrollment.Term,
		EnrollmentID: enrollment.ID,
	})
	return enrollment, nil
}

// Remove deletes the enrollment if it exists. Removing an absent enrollment
// succeeds; the student profile is still resolved, and possibly created, first.
func (s *EnrollmentService) Remove(ctx context.Context, req dto.EnrollmentKeyRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	profile, err := resolveProfile(ctx, s.profiles, req.UserID)
	if err != nil {
		return err
	}

	key := models.EnrollmentKey{StudentID: profile.ID, CourseID: req.CourseID, Term: req.Term}
	start := time.Now()
	removed, err := s.repo.Remove(ctx, key)
	s.metrics.ObserveDBQuery("enrollment_delete", time.Since(start))
	if err != nil {
		s.metrics.RecordLedgerOperation("remove", OutcomeError)
		return storeError(err, "failed to remove enrollment")
	}
	if !removed {
		s.metrics.RecordLedgerOperation("remove", OutcomeAbsent)
		return nil
	}

	s.metrics.RecordLedgerOperation("remove", OutcomeRemoved)
	publish(ctx, s.events, s.logger, EventEnrollmentRemoved, EnrollmentEvent{
		UserID:    req.UserID,
		StudentID: key.StudentID,
		CourseID:  key.CourseID,
		Term:      key.Term,
	})
	return nil
}
