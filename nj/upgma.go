package nj

import "github.com/caseysm/decenttree/matrix"

// UPGMA implements the unweighted pair-group method with arithmetic
// mean: the new cluster's distance to every other is the size-weighted
// average of its two parents' distances (spec §4.2 table), grounded on
// the source's UPGMA_Matrix::cluster/finishClustering.
type UPGMA struct{}

func (UPGMA) Name() string { return "UPGMA" }

func (UPGMA) Init(m *matrix.SquareMatrix) {}

func (UPGMA) AfterRemove(m *matrix.SquareMatrix, retired, last int) {}

// Score is the raw distance: UPGMA always joins the globally nearest
// pair of active clusters.
func (UPGMA) Score(m *matrix.SquareMatrix, i, j int) float64 {
	v, _ := m.At(i, j)

	return v
}

func (UPGMA) BranchLengths(m *matrix.SquareMatrix, a, b, sizeA, sizeB int) (float64, float64) {
	d, _ := m.At(a, b)

	return d / 2, d / 2
}

func (UPGMA) MergeRow(m *matrix.SquareMatrix, a, b, sizeA, sizeB int, lenA, lenB float64) {
	lambda := float64(sizeA) / float64(sizeA+sizeB)
	mu := 1 - lambda
	mergeRowGeneric(m, a, b, func(k int, dak, dbk float64) float64 {
		return lambda*dak + mu*dbk
	})
}

// FinishThree assigns each of the three remaining clusters a branch
// length equal to the sum of its distances to the other two, each
// weighted by that other cluster's size, divided by twice the total
// size of all three clusters — the exact formula from the source's
// finishClustering, flagged there as possibly incorrect for rooted
// trees (Felsenstein 2004 ch.11 only covers the rooted case). Kept
// verbatim per DESIGN.md's Open Question decision.
func (UPGMA) FinishThree(m *matrix.SquareMatrix, ids [3]int, sizes [3]int) (float64, float64, float64) {
	d01, _ := m.At(1, 0)
	d02, _ := m.At(2, 0)
	d12, _ := m.At(2, 1)

	var weight [3]float64
	var denom float64
	for i, s := range sizes {
		weight[i] = float64(s)
		denom += weight[i]
	}
	for i := range weight {
		weight[i] /= 2 * denom
	}

	lenA := weight[1]*d01 + weight[2]*d02
	lenB := weight[0]*d01 + weight[2]*d12
	lenC := weight[0]*d02 + weight[1]*d12

	return lenA, lenB, lenC
}
