package nj

import (
	"math"

	"github.com/caseysm/decenttree/matrix"
)

// scanBlockWidth is the lane count used by scanRowBlocked, standing in
// for the original SIMD lane width (spec §4.3 "Vector path"). It has no
// relationship to matrix.Row's own padding width; it only governs how
// scanRowBlocked batches its column reads.
const scanBlockWidth = 8

// rowScanFunc is the shape both row-minimum search strategies share;
// Driver selects one at construction (RowScan).
type rowScanFunc func(m *matrix.SquareMatrix, crit Criterion, r int) position

// scanRowScalar implements the scalar row-minimum search (spec §4.3):
// scan columns 0..r-1 under crit's criterion, keeping (best value, best
// column); ties within a row are broken by the smaller column. Row 0
// has no column to its left and is never scanned (callers skip it).
func scanRowScalar(m *matrix.SquareMatrix, crit Criterion, r int) position {
	best := position{value: math.Inf(1), row: r, col: -1}
	for c := 0; c < r; c++ {
		v := crit.Score(m, r, c)
		if v < best.value || (v == best.value && c < best.col) {
			best.value = v
			best.col = c
		}
	}
	if best.col < 0 {
		return position{row: r}
	}
	best.valid = true

	return best
}

// scanRowBlocked is the vectorized counterpart of scanRowScalar: columns
// are processed scanBlockWidth at a time, each lane tracking its own
// running (value, column) pair — a stand-in for a SIMD lane-parallel min
// reduction (spec §4.3). Lane minima are combined once per block; the
// remaining tail columns (count < scanBlockWidth) are handled scalarly.
// The result is numerically and tie-break identical to scanRowScalar;
// only the access pattern differs.
func scanRowBlocked(m *matrix.SquareMatrix, crit Criterion, r int) position {
	var laneValue [scanBlockWidth]float64
	var laneCol [scanBlockWidth]int
	for l := 0; l < scanBlockWidth; l++ {
		laneValue[l] = math.Inf(1)
		laneCol[l] = -1
	}

	blocks := r / scanBlockWidth
	for b := 0; b < blocks; b++ {
		base := b * scanBlockWidth
		for l := 0; l < scanBlockWidth; l++ {
			c := base + l
			v := crit.Score(m, r, c)
			if v < laneValue[l] || (v == laneValue[l] && c < laneCol[l]) {
				laneValue[l] = v
				laneCol[l] = c
			}
		}
	}

	best := position{value: math.Inf(1), row: r, col: -1}
	for l := 0; l < scanBlockWidth; l++ {
		c := laneCol[l]
		if c < 0 {
			continue
		}
		v := laneValue[l]
		if v < best.value || (v == best.value && c < best.col) {
			best.value = v
			best.col = c
		}
	}

	for c := blocks * scanBlockWidth; c < r; c++ {
		v := crit.Score(m, r, c)
		if v < best.value || (v == best.value && c < best.col) {
			best.value = v
			best.col = c
		}
	}

	if best.col < 0 {
		return position{row: r}
	}
	best.valid = true

	return best
}
