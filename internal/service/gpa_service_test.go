package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ledger-api/internal/models"
)

type stubCreditStore struct {
	rows    map[string][]models.GradedCredit
	student string
}

func (s *stubCreditStore) GradedCredits(_ context.Context, studentID string) ([]models.GradedCredit, error) {
	s.student = studentID
	return s.rows[studentID], nil
}

func credits(n int) *int { return &n }

func TestComputeGPAWeighted(t *testing.T) {
	summary := ComputeGPA([]models.GradedCredit{
		{Grade: models.GradeA, Credits: credits(4)},
		{Grade: models.GradeB, Credits: credits(3)},
	})
	assert.Equal(t, 3.57, summary.GPA)
	assert.Equal(t, 7, summary.TotalCredits)
	assert.Equal(t, 2, summary.CoursesCount)
}

func TestComputeGPAEmpty(t *testing.T) {
	summary := ComputeGPA(nil)
	assert.Equal(t, models.GPASummary{}, summary)
}

func TestComputeGPAUnrecognizedGradeCountsCredits(t *testing.T) {
	summary := ComputeGPA([]models.GradedCredit{
		{Grade: models.GradeA, Credits: credits(3)},
		{Grade: "X", Credits: credits(4)},
	})
	assert.Equal(t, 1.71, summary.GPA)
	assert.Equal(t, 7, summary.TotalCredits)
	assert.Equal(t, 2, summary.CoursesCount)
}

func TestComputeGPAIgnoresWithdrawn(t *testing.T) {
	summary := ComputeGPA([]models.GradedCredit{
		{Grade: models.GradeA, Credits: credits(4)},
		{Grade: models.GradeB, Credits: credits(3)},
		{Grade: models.GradeWithdrawn, Credits: credits(5)},
	})
	assert.Equal(t, 3.57, summary.GPA)
	assert.Equal(t, 7, summary.TotalCredits)
	assert.Equal(t, 2, summary.CoursesCount)
}

func TestComputeGPAMissingCredits(t *testing.T) {
	summary := ComputeGPA([]models.GradedCredit{{Grade: models.GradeA}})
	assert.Equal(t, 0.0, summary.GPA)
	assert.Equal(t, 0, summary.TotalCredits)
	assert.Equal(t, 1, summary.CoursesCount)
}

func TestComputeGPAOrderIndependent(t *testing.T) {
	rows := []models.GradedCredit{
		{Grade: models.GradeA, Credits: credits(3)},
		{Grade: models.GradeC, Credits: credits(4)},
		{Grade: models.GradeD, Credits: credits(1)},
		{Grade: models.GradeF, Credits: credits(2)},
		{Grade: models.GradeB, Credits: credits(3)},
	}
	want := ComputeGPA(rows)
	reversed := make([]models.GradedCredit, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}
	assert.Equal(t, want, ComputeGPA(reversed))
	assert.Equal(t, 2.31, want.GPA)
}

func TestGPAServiceCalculate(t *testing.T) {
	store := &stubCreditStore{rows: map[string][]models.GradedCredit{
		"stu-u1": {{Grade: models.GradeB, Credits: credits(3)}},
	}}
	svc := NewGPAService(newFakeProfiles(), store, NewMetricsService(), nil)

	summary, err := svc.Calculate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "stu-u1", store.student)
	assert.Equal(t, 3.0, summary.GPA)
	assert.Equal(t, 3, summary.TotalCredits)
	assert.Equal(t, 1, summary.CoursesCount)
}

func TestGPAServiceNewStudent(t *testing.T) {
	profiles := newFakeProfiles()
	svc := NewGPAService(profiles, &stubCreditStore{}, nil, nil)

	summary, err := svc.Calculate(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, &models.GPASummary{}, summary)
	assert.Contains(t, profiles.profiles, "fresh")
}
