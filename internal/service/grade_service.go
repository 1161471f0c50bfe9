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

type gradeStore interface {
	UpdateGrade(ctx context.Context, key models.EnrollmentKey, grade *models.Grade) (*models.Enrollment, error)
}

// GradeService is the only writer of enrollment grades.
type GradeService struct {
	profiles  StudentProfileResolver
	repo      gradeStore
	events    EventPublisher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs GradeService. events and metrics may be nil.
func NewGradeService(profiles StudentProfileResolver, repo gradeStore, events EventPublisher, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = dto.NewValidator(false)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{profiles: profiles, repo: repo, events: events, metrics: metrics, validator: validate, logger: logger}
}

// UpdateGrade sets the grade on the enrollment identified by the request.
// It returns (nil, nil) when no enrollment matches; nothing is written then.
// The symbol is trimmed exactly as the validator's grade tag trims it, so the
// stored value is the validated one. A nil grade clears it.
func (s *GradeService) UpdateGrade(ctx context.Context, req dto.UpdateGradeRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	profile, err := resolveProfile(ctx, s.profiles, req.UserID)
	if err != nil {
		return nil, err
	}

	key := models.EnrollmentKey{StudentID: profile.ID, CourseID: req.CourseID, Term: req.Term}
	var grade *models.Grade
	if req.Grade != nil {
		g := models.NormalizeGrade(*req.Grade)
		grade = &g
	}
	start := time.Now()
	enrollment, err := s.repo.UpdateGrade(ctx, key, grade)
	s.metrics.ObserveDBQuery("enrollment_grade", time.Since(start))
	if err != nil {
		s.metrics.RecordLedgerOperation("update_grade", OutcomeError)
		return nil, storeError(err, "failed to update grade")
	}
	if enrollment == nil {
		s.metrics.RecordLedgerOperation("update_grade", OutcomeMiss)
		return nil, nil
	}
	if grade != nil && !grade.Recognized() {
		s.logger.Info("unrecognized grade stored",
			zap.String("enrollment_id", enrollment.ID), zap.String("grade", string(*grade)))
	}

	s.metrics.RecordLedgerOperation("update_grade", OutcomeUpdated)
	publish(ctx, s.events, s.logger, EventGradeUpdated, EnrollmentEvent{
		UserID:       req.UserID,
		StudentID:    enrollment.StudentID,
		CourseID:     enrollment.CourseID,
		Term:         enrollment.Term,
		EnrollmentID: enrollment.ID,
		Grade:        enrollment.Grade,
	})
	return enrollment, nil
}
