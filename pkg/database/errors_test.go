package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lms-ledger-api/pkg/config"
)

func TestConstraintClassification(t *testing.T) {
	fk := fmt.Errorf("enroll: %w", &pq.Error{Code: "23503", Constraint: "enrollments_course_id_fkey"})
	unique := &pq.Error{Code: "23505"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "lms", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=lms sslmode=disable", dsn)
}
