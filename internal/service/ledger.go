package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	"github.com/noah-isme/lms-ledger-api/pkg/database"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
)

// StudentProfileResolver maps a user to their student profile, creating it on
// first reference. Every ledger operation keyed by a user calls it first.
type StudentProfileResolver interface {
	ResolveOrCreate(ctx context.Context, userID string) (*models.StudentProfile, error)
}

// EventPublisher receives ledger change notifications.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Ledger event types.
const (
	EventEnrollmentCreated = "enrollment.created"
	EventEnrollmentRemoved = "enrollment.removed"
	EventGradeUpdated      = "grade.updated"
)

// EnrollmentEvent is the payload of every ledger event.
type EnrollmentEvent struct {
	UserID       string        `json:"user_id"`
	StudentID    string        `json:"student_id"`
	CourseID     string        `json:"course_id"`
	Term         string        `json:"term"`
	EnrollmentID string        `json:"enrollment_id,omitempty"`
	Grade        *models.Grade `json:"grade,omitempty"`
}

func resolveProfile(ctx context.Context, profiles StudentProfileResolver, userID string) (*models.StudentProfile, error) {
	profile, err := profiles.ResolveOrCreate(ctx, userID)
	if err != nil {
		return nil, storeError(err, "failed to resolve student profile")
	}
	return profile, nil
}

// storeError wraps a store failure without hiding it. Foreign-key failures
// surface as UNKNOWN_REFERENCE, everything else as INTERNAL_ERROR.
func storeError(err error, message string) error {
	if database.IsForeignKeyViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrUnknownReference.Code, appErrors.ErrUnknownReference.Status, appErrors.ErrUnknownReference.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// publish delivers an event on a best-effort basis; a failure is logged and never returned.
func publish(ctx context.Context, events EventPublisher, logger *zap.Logger, eventType string, event EnrollmentEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, eventType, event); err != nil {
		logger.Warn("publish ledger event",
			zap.String("event", eventType),
			zap.String("student_id", event.StudentID),
			zap.String("course_id", event.CourseID),
			zap.Error(err))
	}
}
