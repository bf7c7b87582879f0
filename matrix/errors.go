// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All algorithms MUST return these sentinels and tests MUST check them
// via errors.Is. No algorithm should panic on user-triggered error conditions.
//
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with matrixErrorf at the call site —
// callers will still use errors.Is to match.
package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside the active rank.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates a flat buffer whose length isn't n*n.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or infinite value was encountered where a
	// finite distance is required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrRankTooLow signals an operation (e.g. RemoveRowAndColumn) was
	// attempted when the active rank is already too small to proceed.
	ErrRankTooLow = errors.New("matrix: active rank too low for operation")
)

// matrixErrorf wraps a sentinel with method/index context, staying
// unwrappable via errors.Is.
func matrixErrorf(method string, err error, args ...interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("matrix.%s: %w", method, err)
	}
	ctx := fmt.Sprint(args[0])
	for _, a := range args[1:] {
		ctx += fmt.Sprintf(",%v", a)
	}

	return fmt.Errorf("matrix.%s(%s): %w", method, ctx, err)
}
