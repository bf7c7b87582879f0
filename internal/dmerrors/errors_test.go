package dmerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWrapsKindSentinel(t *testing.T) {
	err := New(InputShape, "distance count mismatch", "A", "B")
	assert.ErrorIs(t, err, ErrInputShape)
	assert.NotErrorIs(t, err, ErrNumericalBreakdown)
	assert.Contains(t, err.Error(), "distance count mismatch")
	assert.Contains(t, err.Error(), "[A B]")
}

func TestNewfFormatsDetail(t *testing.T) {
	err := Newf(NumericalBreakdown, "row %d total drifted by %.3f", 4, 0.02)
	assert.ErrorIs(t, err, ErrNumericalBreakdown)
	assert.Contains(t, err.Error(), "row 4 total drifted by 0.020")
}

func TestEveryKindMapsToADistinctSentinel(t *testing.T) {
	kinds := []Kind{InputShape, UnknownAlgorithm, NumericalBreakdown, Cancelled, Internal}
	seen := map[error]bool{}
	for _, k := range kinds {
		err := New(k, "detail")
		sentinel := errors.Unwrap(err)
		assert.False(t, seen[sentinel], "kind %s reused another kind's sentinel", k)
		seen[sentinel] = true
	}
}

func TestKindStringUnknownValue(t *testing.T) {
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestErrorWithoutSubjectsOmitsParens(t *testing.T) {
	err := New(Internal, "rank fell below 3 before finish")
	assert.NotContains(t, err.Error(), "(")
}
