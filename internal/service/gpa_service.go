package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
)

type creditStore interface {
	GradedCredits(ctx context.Context, studentID string) ([]models.GradedCredit, error)
}

// GPAService computes credit-weighted grade point averages.
type GPAService struct {
	profiles StudentProfileResolver
	repo     creditStore
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewGPAService constructs GPAService.
func NewGPAService(profiles StudentProfileResolver, repo creditStore, metrics *MetricsService, logger *zap.Logger) *GPAService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GPAService{profiles: profiles, repo: repo, metrics: metrics, logger: logger}
}

// Calculate returns the GPA summary for the user. Withdrawn and ungraded
// enrollments are excluded by the store query.
func (s *GPAService) Calculate(ctx context.Context, userID string) (*models.GPASummary, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	profile, err := resolveProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := s.repo.GradedCredits(ctx, profile.ID)
	s.metrics.ObserveDBQuery("enrollment_graded_credits", time.Since(start))
	if err != nil {
		return nil, storeError(err, "failed to load graded enrollments")
	}

	summary := ComputeGPA(rows)
	s.metrics.ObserveGPA(summary.GPA)
	s.logger.Debug("gpa computed",
		zap.String("student_id", profile.ID),
		zap.Float64("gpa", summary.GPA),
		zap.Int("courses", summary.CoursesCount))
	return &summary, nil
}

// ComputeGPA folds graded rows into a summary. Withdrawals are skipped.
// Unrecognized symbols earn zero points but their credits still count.
// Missing credits count as zero. Sums are integers so the result does not
// depend on row order.
func ComputeGPA(rows []models.GradedCredit) models.GPASummary {
	var points, credits, courses int
	for _, row := range rows {
		if row.Grade == models.GradeWithdrawn {
			continue
		}
		courses++
		c := 0
		if row.Credits != nil {
			c = *row.Credits
		}
		points += row.Grade.Points() * c
		credits += c
	}

	summary := models.GPASummary{TotalCredits: credits, CoursesCount: courses}
	if credits > 0 {
		summary.GPA = math.Round(float64(points)/float64(credits)*100) / 100
	}
	return summary
}
