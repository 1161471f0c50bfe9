package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-ledger-api/internal/models"
)

const enrollmentColumns = `enrollment_id, student_id, course_id, term, enrollment_date, grade`

// EnrollmentRepository owns the enrollments table. Uniqueness of
// (student_id, course_id, term) is enforced by the store, never in process.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll inserts the enrollment unless its natural key already exists. A nil
// enrollment with a nil error means nothing was created.
func (r *EnrollmentRepository) Enroll(ctx context.Context, key models.EnrollmentKey) (*models.Enrollment, error) {
	const query = `INSERT INTO enrollments (enrollment_id, student_id, course_id, term)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id, course_id, term) DO NOTHING
        RETURNING ` + enrollmentColumns
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, uuid.NewString(), key.StudentID, key.CourseID, key.Term); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return &enrollment, nil
}

// Remove hard-deletes the enrollment. It reports whether a row existed.
func (r *EnrollmentRepository) Remove(ctx context.Context, key models.EnrollmentKey) (bool, error) {
	const query = `DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2 AND term = $3`
	res, err := r.db.ExecContext(ctx, query, key.StudentID, key.CourseID, key.Term)
	if err != nil {
		return false, fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete enrollment rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateGrade stores grade on the matching enrollment; a nil grade clears it.
// A nil enrollment with a nil error means no enrollment matched the key.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, key models.EnrollmentKey, grade *models.Grade) (*models.Enrollment, error) {
	const query = `UPDATE enrollments SET grade = $4
        WHERE student_id = $1 AND course_id = $2 AND term = $3
        RETURNING ` + enrollmentColumns
	var gradeArg interface{}
	if grade != nil {
		gradeArg = string(*grade)
	}
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, key.StudentID, key.CourseID, key.Term, gradeArg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update enrollment grade: %w", err)
	}
	return &enrollment, nil
}

// ListByStudent returns the student's enrollments with course details, most recent first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentEnrollment, error) {
	const query = `SELECT e.enrollment_id, e.student_id, e.course_id, e.term, e.enrollment_date, e.grade,
        c.title, c.description, c.code
        FROM enrollments e
        JOIN courses c ON c.course_id = e.course_id
        WHERE e.student_id = $1
        ORDER BY e.enrollment_date DESC, e.enrollment_id DESC`
	enrollments := make([]models.StudentEnrollment, 0)
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return enrollments, nil
}

// ListByCourse returns the course roster with student details, most recent first.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.CourseEnrollment, error) {
	const query = `SELECT e.enrollment_id, e.student_id, e.course_id, e.term, e.enrollment_date, e.grade,
        u.full_name AS student_name, u.email AS student_email, s.major, s.enrollment_year
        FROM enrollments e
        JOIN students s ON s.student_id = e.student_id
        JOIN users u ON u.user_id = s.user_id
        WHERE e.course_id = $1
        ORDER BY e.enrollment_date DESC, e.enrollment_id DESC`
	enrollments := make([]models.CourseEnrollment, 0)
	if err := r.db.SelectContext(ctx, &enrollments, query, courseID); err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}
	return enrollments, nil
}

// ListAll returns every enrollment on the platform, most recent first.
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]models.RosterEntry, error) {
	const query = `SELECT e.enrollment_id, e.student_id, e.course_id, e.term, e.enrollment_date, e.grade,
        u.full_name AS student_name, u.email AS student_email, s.major, s.enrollment_year,
        c.code, c.title AS course_title
        FROM enrollments e
        JOIN students s ON s.student_id = e.student_id
        JOIN users u ON u.user_id = s.user_id
        JOIN courses c ON c.course_id = e.course_id
        ORDER BY e.enrollment_date DESC, e.enrollment_id DESC`
	entries := make([]models.RosterEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list all enrollments: %w", err)
	}
	return entries, nil
}

// GradedCredits returns the (grade, credits) pairs that count toward the
// student's GPA: graded enrollments other than withdrawals.
func (r *EnrollmentRepository) GradedCredits(ctx context.Context, studentID string) ([]models.GradedCredit, error) {
	const query = `SELECT e.grade, c.credits
        FROM enrollments e
        JOIN courses c ON c.course_id = e.course_id
        WHERE e.student_id = $1 AND e.grade IS NOT NULL AND e.grade <> $2`
	credits := make([]models.GradedCredit, 0)
	if err := r.db.SelectContext(ctx, &credits, query, studentID, string(models.GradeWithdrawn)); err != nil {
		return nil, fmt.Errorf("list graded credits: %w", err)
	}
	return credits, nil
}
