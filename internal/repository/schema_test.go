package repository

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lenient mode accepts any non-blank symbol, so the column must not cap its length.
func TestEnrollmentGradeColumnIsUnbounded(t *testing.T) {
	schema, err := os.ReadFile("../../migrations/0001_enrollment_ledger.up.sql")
	require.NoError(t, err)

	column := regexp.MustCompile(`(?m)^\s*grade\s+(\S+?),?\s*$`).FindSubmatch(schema)
	require.NotNil(t, column)
	assert.Equal(t, "TEXT", string(column[1]))
}
