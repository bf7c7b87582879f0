package nj

import "github.com/caseysm/decenttree/matrix"

// BIONJ extends NJ with a second, same-shape matrix V tracking variance
// estimates for each pairwise distance, and blends merged distances
// with a per-join lambda chosen to minimize the variance of the new
// cluster's distances rather than always splitting the contribution
// evenly (Gascuel 1997; spec §4.2 table: "λ chosen to minimize variance
// from V"). V is allocated in Init and kept in lockstep with M's row
// removals via AfterRemove.
type BIONJ struct {
	v *matrix.SquareMatrix
}

func (b *BIONJ) Name() string { return "BIONJ" }

// Init allocates V with the same size as m and seeds it V = M.
func (b *BIONJ) Init(m *matrix.SquareMatrix) {
	v, _ := matrix.NewSquareMatrix(m.Size())
	n := m.Rank()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			val, _ := m.At(i, j)
			_ = v.Set(i, j, val)
		}
	}
	b.v = v
}

func (b *BIONJ) Score(m *matrix.SquareMatrix, i, j int) float64 {
	v, _ := m.At(i, j)
	nPrime := float64(m.Rank())

	return v - (m.RowTotal(i)+m.RowTotal(j))/(nPrime-2)
}

func (b *BIONJ) BranchLengths(m *matrix.SquareMatrix, a, b2, sizeA, sizeB int) (float64, float64) {
	d, _ := m.At(a, b2)
	nPrime := float64(m.Rank())
	lenA := 0.5*d + (m.RowTotal(a)-m.RowTotal(b2))/(2*(nPrime-2))
	lenB := d - lenA

	return lenA, lenB
}

// lambda computes the BIONJ blending weight for joining active rows
// a,b: the value that minimizes the variance of the new cluster's
// distance estimates, given the current variance row entries.
func (b *BIONJ) lambda(m *matrix.SquareMatrix, a, bCol int) float64 {
	vab, _ := b.v.At(a, bCol)
	if vab == 0 {
		return 0.5
	}

	rank := m.Rank()
	nPrime := float64(rank)
	var sum float64
	rowA := b.v.Row(a)
	rowB := b.v.Row(bCol)
	for k := 0; k < rank; k++ {
		if k == a || k == bCol {
			continue
		}
		sum += rowB[k] - rowA[k]
	}
	lam := 0.5 + sum/(2*(nPrime-2)*vab)
	if lam < 0 {
		lam = 0
	}
	if lam > 1 {
		lam = 1
	}

	return lam
}

func (b *BIONJ) MergeRow(m *matrix.SquareMatrix, a, bCol, sizeA, sizeB int, lenA, lenB float64) {
	d, _ := m.At(a, bCol)
	lam := b.lambda(m, a, bCol)
	mu := 1 - lam

	vab, _ := b.v.At(a, bCol)
	rank := m.Rank()
	rowVA := b.v.Row(a)
	rowVB := b.v.Row(bCol)
	for k := 0; k < rank; k++ {
		if k == a || k == bCol {
			continue
		}
		mergedV := lam*rowVA[k] + mu*rowVB[k] - lam*mu*vab
		rowVB[k] = mergedV
		b.v.Row(k)[bCol] = mergedV
	}
	rowVB[bCol] = 0

	mergeRowGeneric(m, a, bCol, func(k int, dak, dbk float64) float64 {
		return lam*dak + mu*dbk - lam*mu*d
	})
}

func (b *BIONJ) FinishThree(m *matrix.SquareMatrix, ids [3]int, sizes [3]int) (float64, float64, float64) {
	d01, _ := m.At(1, 0)
	d02, _ := m.At(2, 0)
	d12, _ := m.At(2, 1)

	lenA := (d01 + d02 - d12) / 2
	lenB := (d01 + d12 - d02) / 2
	lenC := (d02 + d12 - d01) / 2

	return lenA, lenB, lenC
}

// AfterRemove mirrors the swap-with-last retirement Driver just
// performed on m onto V, so V's row/column indices stay aligned with
// M's for the remainder of the build.
func (b *BIONJ) AfterRemove(m *matrix.SquareMatrix, retired, last int) {
	_ = b.v.RemoveRowAndColumn(retired)
}
