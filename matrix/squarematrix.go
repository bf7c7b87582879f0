package matrix

import (
	"math"
)

// blockWidth is the block size used to pad every row past the active
// rank. It stands in for the SIMD lane width of the original C++
// implementation (e.g. 8 lanes of float32, or 4 of float64); each row's
// length is rounded up to a multiple of it and the extra cells hold
// Sentinel. nj.scanRowBlocked does not read these cells: it scans only
// columns below its row and handles its tail columns scalarly.
const blockWidth = 8

// Sentinel is the +Inf value written into every padding cell — at or
// past the active rank, in every row — so that a block-wise minimum
// reduction can never select a retired column.
var Sentinel = math.Inf(1)

// SquareMatrix is the row-compacting N×N distance-matrix substrate
// shared by every agglomeration engine. Distances are symmetric with a
// zero diagonal; rows are independently owned slices so that retiring a
// row is an O(1) slice-header exchange rather than a bulk copy (see
// RemoveRowAndColumn). Row totals are maintained incrementally by
// callers via RowTotal/SetRowTotal so engines can fold total-upkeep
// into their own merge-row pass instead of paying a second O(N) scan.
type SquareMatrix struct {
	size   int         // original N, fixed for the lifetime of the matrix
	rank   int         // current active rank, shrinks from size toward 3
	padded int         // per-row allocated length, size rounded up to blockWidth
	rows   [][]float64 // rows[i]: owned buffer for row i, len == padded
	totals []float64   // totals[i] = sum of active off-diagonal entries in row i
}

// NewSquareMatrix allocates an n×n substrate: the active n×n region is
// zeroed and every padding cell (columns [n, padded)) holds Sentinel.
//
// Stage 1 (Validate): n must be a positive integer.
// Stage 2 (Prepare): allocate one owned, padded buffer per row.
// Stage 3 (Finalize): fill padding columns with Sentinel; rank starts at n.
//
// Complexity: O(n * padded) time and memory.
func NewSquareMatrix(n int) (*SquareMatrix, error) {
	if n <= 0 {
		return nil, matrixErrorf("NewSquareMatrix", ErrInvalidDimensions, n)
	}

	padded := ((n + blockWidth - 1) / blockWidth) * blockWidth
	if padded == 0 {
		padded = blockWidth
	}

	m := &SquareMatrix{
		size:   n,
		rank:   n,
		padded: padded,
		rows:   make([][]float64, n),
		totals: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		row := make([]float64, padded)
		for j := n; j < padded; j++ {
			row[j] = Sentinel
		}
		m.rows[i] = row
	}

	return m, nil
}

// Rank returns the number of currently active rows/columns.
// Complexity: O(1).
func (m *SquareMatrix) Rank() int { return m.rank }

// Size returns the original N the matrix was allocated with.
// Complexity: O(1).
func (m *SquareMatrix) Size() int { return m.size }

// Row returns the backing buffer for active row i, including its
// sentinel-padded tail past the active rank. Callers may read and write
// cells [0, Rank()) directly; writing past Rank() breaks the sentinel
// invariant and must not be done outside RemoveRowAndColumn.
//
// Complexity: O(1).
func (m *SquareMatrix) Row(i int) []float64 { return m.rows[i] }

// At returns M[i][j] for active i, j. Complexity: O(1).
func (m *SquareMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rank || j < 0 || j >= m.rank {
		return 0, matrixErrorf("At", ErrOutOfRange, i, j)
	}

	return m.rows[i][j], nil
}

// Set assigns M[i][j] = M[j][i] = v for active i, j, preserving symmetry.
// Complexity: O(1).
func (m *SquareMatrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.rank || j < 0 || j >= m.rank {
		return matrixErrorf("Set", ErrOutOfRange, i, j)
	}
	m.rows[i][j] = v
	m.rows[j][i] = v

	return nil
}

// RowTotal returns the maintained row total T[i].
// Complexity: O(1).
func (m *SquareMatrix) RowTotal(i int) float64 { return m.totals[i] }

// SetRowTotal overwrites T[i]; used by engines that compute the merged
// row's total directly as part of their merge-row pass instead of
// re-summing it.
// Complexity: O(1).
func (m *SquareMatrix) SetRowTotal(i int, v float64) { m.totals[i] = v }

// LoadFromFlat copies an n*n row-major buffer into the active region.
// Per the lower-triangle-authoritative convention (row index > column
// index), M[i][j] for i>j is taken from flat and mirrored into M[j][i];
// the diagonal is forced to zero regardless of what flat carries there.
//
// Stage 1 (Validate): len(flat) must equal size*size; all values finite.
// Stage 2 (Execute): copy the lower triangle, mirror into the upper.
// Stage 3 (Finalize): diagonal forced to 0.
//
// Complexity: O(n²).
func (m *SquareMatrix) LoadFromFlat(flat []float64) error {
	n := m.size
	if len(flat) != n*n {
		return matrixErrorf("LoadFromFlat", ErrDimensionMismatch, len(flat), n*n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := flat[i*n+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return matrixErrorf("LoadFromFlat", ErrNaNInf, i, j)
			}
			m.rows[i][j] = v
			m.rows[j][i] = v
		}
		m.rows[i][i] = 0
	}

	return nil
}

// ComputeRowTotals recomputes T[i] = Σ_{k≠i} M[i][k] over active columns,
// replacing whatever incremental totals the engine may have maintained.
// Used once after LoadFromFlat, and by tests asserting the drift
// invariant (spec §8: |T[i] − Σ M[i][k]| ≤ ε·N·max(M)).
//
// Complexity: O(n²).
func (m *SquareMatrix) ComputeRowTotals() {
	for i := 0; i < m.rank; i++ {
		var sum float64
		row := m.rows[i]
		for k := 0; k < m.rank; k++ {
			if k != i {
				sum += row[k]
			}
		}
		m.totals[i] = sum
	}
}

// RemoveRowAndColumn retires row/column k by exchanging its buffer
// handle with the last active row's, then scattering the last row's
// column values into column k across every other active row. Row
// pointers are exchanged rather than copied (never moving cells, per
// the row-pointer-table design); only the O(rank) column scatter and
// the two O(1) handle/total swaps are paid.
//
// Stage 1 (Validate): rank must be > 1 before removal; k must be active.
// Stage 2 (Scatter): for every other active row i, M[i][k] := M[i][last].
// Stage 3 (Exchange): swap row buffer handles and row totals for k, last.
// Stage 4 (Reseal): M[k][k] = 0; column `last` becomes padding (Sentinel)
// in every still-active row; rank decrements.
//
// Complexity: O(rank).
func (m *SquareMatrix) RemoveRowAndColumn(k int) error {
	if m.rank <= 1 {
		return matrixErrorf("RemoveRowAndColumn", ErrRankTooLow, m.rank)
	}
	if k < 0 || k >= m.rank {
		return matrixErrorf("RemoveRowAndColumn", ErrOutOfRange, k)
	}

	last := m.rank - 1
	if k != last {
		for i := 0; i < last; i++ {
			if i == k {
				continue
			}
			m.rows[i][k] = m.rows[i][last]
		}

		m.rows[k], m.rows[last] = m.rows[last], m.rows[k]
		m.totals[k], m.totals[last] = m.totals[last], m.totals[k]

		for i := 0; i < last; i++ {
			if i == k {
				continue
			}
			m.rows[k][i] = m.rows[i][k]
		}
		m.rows[k][k] = 0
	}

	for i := 0; i < last; i++ {
		m.rows[i][last] = Sentinel
	}
	if k != last {
		// The retired buffer (now parked at index `last`, beyond the new
		// rank) keeps stale data; re-sentinel it fully so it holds
		// nothing but Sentinel once it lies outside the active region.
		for i := 0; i < m.padded; i++ {
			m.rows[last][i] = Sentinel
		}
	}

	m.rank--

	return nil
}
