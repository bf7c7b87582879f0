package nj

import "github.com/caseysm/decenttree/matrix"

// Criterion supplies the per-algorithm formulas the shared join loop
// calls at fixed points (DESIGN NOTES §9's capability set: one core
// driver parameterized by score, merge_row, init, finish_three — in
// place of the source's UPGMA_Matrix/NJMatrix/BIONJMatrix inheritance
// chain). An implementation may hold whatever extra state its formula
// needs — BIONJ's variance matrix, for instance — the driver never
// inspects it.
type Criterion interface {
	// Name identifies the criterion for registry listing and messages.
	Name() string

	// Init is called once, after the matrix is loaded and row totals
	// are computed, before the first join.
	Init(m *matrix.SquareMatrix)

	// Score returns the join score for active cells (i,j) with i>j.
	// Only the strictly lower triangle is ever scored (spec §4.2 step1).
	Score(m *matrix.SquareMatrix, i, j int) float64

	// BranchLengths returns (lenA, lenB) joining active rows a,b (a>b,
	// d = M[a][b]) into a new cluster, given their cluster sizes.
	BranchLengths(m *matrix.SquareMatrix, a, b, sizeA, sizeB int) (lenA, lenB float64)

	// MergeRow overwrites row b (and column b, by symmetry) with the
	// merged distance to every other active row, and updates T[b]. Row
	// a is removed by the driver immediately afterward (spec §4.2
	// steps 4-5).
	MergeRow(m *matrix.SquareMatrix, a, b, sizeA, sizeB int, lenA, lenB float64)

	// FinishThree computes the three terminal branch lengths when rank
	// has dropped to 3, from the final 3x3 submatrix and each
	// remaining cluster's size (spec §4.2 step 6). ids/sizes are given
	// in row order [0,1,2].
	FinishThree(m *matrix.SquareMatrix, ids [3]int, sizes [3]int) (lenA, lenB, lenC float64)

	// AfterRemove is called once row `retired` has been retired from m
	// via swap-with-last (matrix.SquareMatrix.RemoveRowAndColumn), with
	// `last` the index it was swapped in from (equal to retired when no
	// swap was needed). Criteria that maintain an auxiliary same-shape
	// matrix (BIONJ's variance matrix V) mirror the same swap here; all
	// others implement it as a no-op.
	AfterRemove(m *matrix.SquareMatrix, retired, last int)
}

// imbalance returns |sizeA - sizeB|, the tie-break spec §4.2 step 2
// uses after score.
func imbalance(sizeA, sizeB int) int {
	d := sizeA - sizeB
	if d < 0 {
		d = -d
	}

	return d
}

// mergeRowGeneric overwrites row b and column b in m with values
// produced by blend(k, Dak, Dbk) for every other active row k, folds
// the resulting delta into every other row's maintained total, and
// recomputes T[b] from the new row. Every Criterion's MergeRow is a
// thin wrapper around this shared scatter-and-retotal routine, grounded
// on the source's UPGMA_Matrix::cluster row-rewrite loop.
//
// Row a is not retotaled here: it is retired by Driver.join immediately
// after MergeRow returns, via RemoveRowAndColumn, so its total is never
// read again.
func mergeRowGeneric(m *matrix.SquareMatrix, a, b int, blend func(k int, dak, dbk float64) float64) {
	rank := m.Rank()
	rowA := m.Row(a)
	rowB := m.Row(b)
	var total float64
	for k := 0; k < rank; k++ {
		if k == a || k == b {
			continue
		}
		dak, dbk := rowA[k], rowB[k]
		merged := blend(k, dak, dbk)
		rowB[k] = merged
		m.Row(k)[b] = merged
		total += merged
		// k's total previously counted both the soon-to-be-removed
		// M[k][a] and the pre-merge M[k][b]; replace both with the one
		// merged contribution.
		m.SetRowTotal(k, m.RowTotal(k)-dak-dbk+merged)
	}
	rowB[b] = 0
	m.SetRowTotal(b, total)
}
