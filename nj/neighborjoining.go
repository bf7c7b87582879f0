package nj

import "github.com/caseysm/decenttree/matrix"

// NeighborJoining implements Saitou & Nei's NJ criterion: the score
// subtracts each row's average distance to everything else, so distant
// "long branch" taxa don't dominate the join order (spec §4.2 table).
type NeighborJoining struct{}

func (NeighborJoining) Name() string { return "NJ" }

func (NeighborJoining) Init(m *matrix.SquareMatrix) {}

func (NeighborJoining) AfterRemove(m *matrix.SquareMatrix, retired, last int) {}

func (NeighborJoining) Score(m *matrix.SquareMatrix, i, j int) float64 {
	v, _ := m.At(i, j)
	nPrime := float64(m.Rank())

	return v - (m.RowTotal(i)+m.RowTotal(j))/(nPrime-2)
}

func (NeighborJoining) BranchLengths(m *matrix.SquareMatrix, a, b, sizeA, sizeB int) (float64, float64) {
	d, _ := m.At(a, b)
	nPrime := float64(m.Rank())
	lenA := 0.5*d + (m.RowTotal(a)-m.RowTotal(b))/(2*(nPrime-2))
	lenB := d - lenA

	return lenA, lenB
}

func (NeighborJoining) MergeRow(m *matrix.SquareMatrix, a, b, sizeA, sizeB int, lenA, lenB float64) {
	d, _ := m.At(a, b)
	mergeRowGeneric(m, a, b, func(k int, dak, dbk float64) float64 {
		return 0.5 * (dak + dbk - d)
	})
}

// FinishThree assigns each remaining cluster the classic NJ three-point
// branch length: its distance to the other two, minus their mutual
// distance, halved (the same closed form the join loop would have
// produced had the three-term denominator not vanished at N'=3).
func (NeighborJoining) FinishThree(m *matrix.SquareMatrix, ids [3]int, sizes [3]int) (float64, float64, float64) {
	d01, _ := m.At(1, 0)
	d02, _ := m.At(2, 0)
	d12, _ := m.At(2, 1)

	lenA := (d01 + d02 - d12) / 2
	lenB := (d01 + d12 - d02) / 2
	lenC := (d02 + d12 - d01) / 2

	return lenA, lenB, lenC
}
