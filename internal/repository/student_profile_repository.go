package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-ledger-api/internal/models"
)

// StudentProfileRepository resolves the student profile owned by a user, creating it on first use.
type StudentProfileRepository struct {
	db *sqlx.DB
}

// NewStudentProfileRepository constructs a StudentProfileRepository.
func NewStudentProfileRepository(db *sqlx.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const resolveProfileQuery = `WITH inserted AS (
        INSERT INTO students (student_id, user_id, created_at) VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO NOTHING
        RETURNING student_id, user_id, major, enrollment_year, created_at
    )
    SELECT student_id, user_id, major, enrollment_year, created_at FROM inserted
    UNION ALL
    SELECT student_id, user_id, major, enrollment_year, created_at FROM students WHERE user_id = $2
    LIMIT 1`

const findProfileQuery = `SELECT student_id, user_id, major, enrollment_year, created_at FROM students WHERE user_id = $1`

// ResolveOrCreate returns the profile for userID, inserting one when none exists.
// A concurrent insert that commits after this statement's snapshot is picked up by a follow-up read.
func (r *StudentProfileRepository) ResolveOrCreate(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.GetContext(ctx, &profile, resolveProfileQuery, uuid.NewString(), userID, time.Now().UTC())
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolve student profile: %w", err)
	}
	if err := r.db.GetContext(ctx, &profile, findProfileQuery, userID); err != nil {
		return nil, fmt.Errorf("reload student profile: %w", err)
	}
	return &profile, nil
}
