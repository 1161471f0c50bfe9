package models

import "strings"

// Grade is a letter grade symbol. The ledger stores whatever symbol it is
// given; only the boundary decides whether a symbol is acceptable.
type Grade string

// Recognised grade symbols.
const (
	GradeA         Grade = "A"
	GradeB         Grade = "B"
	GradeC         Grade = "C"
	GradeD         Grade = "D"
	GradeF         Grade = "F"
	GradeWithdrawn Grade = "W"
)

// gradePoints is the fixed four-point scale. W carries no points.
var gradePoints = map[Grade]int{
	GradeA: 4,
	GradeB: 3,
	GradeC: 2,
	GradeD: 1,
	GradeF: 0,
}

// Points returns the grade's value on the four-point scale. Symbols outside
// the scale are worth zero, the same as F.
func (g Grade) Points() int {
	return gradePoints[g]
}

// Recognized reports whether g is one of A, B, C, D, F or W.
func (g Grade) Recognized() bool {
	if g == GradeWithdrawn {
		return true
	}
	_, ok := gradePoints[g]
	return ok
}

// NormalizeGrade trims surrounding whitespace. Case is preserved so that
// unrecognised input reaches the ledger unchanged.
func NormalizeGrade(raw string) Grade {
	return Grade(strings.TrimSpace(raw))
}
