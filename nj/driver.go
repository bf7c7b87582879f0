package nj

import (
	"context"
	"math"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/internal/dmerrors"
	"github.com/caseysm/decenttree/internal/workerpool"
	"github.com/caseysm/decenttree/matrix"
)

// RowScan selects the row-minimum search strategy (spec §4.3). Both
// strategies are numerically and tie-break identical; Blocked exists
// for cache-friendlier access on large matrices.
type RowScan int

const (
	ScalarScan RowScan = iota
	BlockedScan
)

// Driver owns the shared agglomeration state — the distance matrix, the
// row-to-cluster map R, and the cluster forest (spec §3) — and runs
// Criterion-parameterized join loops against it (spec §4.2).
type Driver struct {
	m            *matrix.SquareMatrix
	tree         *clustertree.Tree
	rowToCluster []int
	threads      int
	scanFn       rowScanFunc
}

// NewDriver loads names/distances into a fresh matrix and leaf forest.
// Shape/finiteness preconditions (spec §6) are validated by the
// registry package before Run is reached; NewDriver re-validates only
// matrix-level invariants (distances.len() == names.len()^2, finite).
func NewDriver(names []string, distances []float64, threads int, scan RowScan) (*Driver, error) {
	n := len(names)
	m, err := matrix.NewSquareMatrix(n)
	if err != nil {
		return nil, dmerrors.Newf(dmerrors.InputShape, "%v", err)
	}
	if err := m.LoadFromFlat(distances); err != nil {
		return nil, dmerrors.Newf(dmerrors.InputShape, "%v", err)
	}
	m.ComputeRowTotals()

	rowToCluster := make([]int, n)
	for i := range rowToCluster {
		rowToCluster[i] = i
	}

	scanFn := scanRowScalar
	if scan == BlockedScan {
		scanFn = scanRowBlocked
	}

	return &Driver{
		m:            m,
		tree:         clustertree.New(names),
		rowToCluster: rowToCluster,
		threads:      threads,
		scanFn:       scanFn,
	}, nil
}

// Run drives the shared join loop (spec §4.2) to completion using crit,
// returning the cluster forest. When rooted is false the construction
// terminates in FinishThree's three-way terminal cluster (the default,
// unrooted tree); when true, that trifurcation is additionally split
// into a bifurcating root by grafting the first two terminal children
// under a new zero-length-edge cluster before joining the third
// (spec.md leaves rooted output as an Open Question — see DESIGN.md).
//
// Complexity: O(N^3 / threads) — N-3 joins, each an O(N^2/threads)
// row-minimum search and an O(N) merge, then one terminal join.
func (d *Driver) Run(ctx context.Context, crit Criterion, rooted bool) (*clustertree.Tree, error) {
	crit.Init(d.m)

	for d.m.Rank() > 3 {
		select {
		case <-ctx.Done():
			return nil, dmerrors.Newf(dmerrors.Cancelled, "build cancelled at rank %d", d.m.Rank())
		default:
		}

		best, err := d.findBest(ctx, crit)
		if err != nil {
			return nil, err
		}
		if err := d.join(crit, best.row, best.col); err != nil {
			return nil, err
		}
	}

	if err := d.finishThree(crit, rooted); err != nil {
		return nil, err
	}

	return d.tree, nil
}

// findBest dispatches one row-minimum scan per active row (spec §4.3)
// across Driver's configured thread count, then reduces the per-row
// results to a single global minimum in a fixed row order so the
// result is bitwise reproducible regardless of thread count (spec §5).
func (d *Driver) findBest(ctx context.Context, crit Criterion) (position, error) {
	rank := d.m.Rank()
	positions := make([]position, rank)

	err := workerpool.Parallelize(ctx, rank, d.threads, func(r int) error {
		if r == 0 {
			return nil
		}
		positions[r] = d.scanFn(d.m, crit, r)

		return nil
	})
	if err != nil {
		return position{}, err
	}

	best := position{value: math.Inf(1), col: -1}
	for r := 1; r < rank; r++ {
		p := positions[r]
		if !p.valid {
			continue
		}
		p.imbalance = d.imbalance(r, p.col)
		if less(p, best) {
			best = p
		}
	}
	if best.col < 0 {
		return position{}, dmerrors.New(dmerrors.Internal, "row-minimum search found no candidate pair")
	}

	return best, nil
}

func (d *Driver) imbalance(row, col int) int {
	sr, _ := d.tree.Size(d.rowToCluster[row])
	sc, _ := d.tree.Size(d.rowToCluster[col])

	return imbalance(sr, sc)
}

// join merges active rows a,b (a>b) per crit's formulas, appends the
// new cluster linked to R[a],R[b], and retires row a (spec §4.2 steps
// 3-5).
func (d *Driver) join(crit Criterion, a, b int) error {
	dAB, err := d.m.At(a, b)
	if err != nil {
		return err
	}
	if math.IsNaN(dAB) {
		return dmerrors.Newf(dmerrors.NumericalBreakdown, "non-finite distance at (%d,%d)", a, b)
	}

	sizeA, err := d.tree.Size(d.rowToCluster[a])
	if err != nil {
		return err
	}
	sizeB, err := d.tree.Size(d.rowToCluster[b])
	if err != nil {
		return err
	}

	lenA, lenB := crit.BranchLengths(d.m, a, b, sizeA, sizeB)
	if math.IsNaN(lenA) || math.IsNaN(lenB) {
		return dmerrors.Newf(dmerrors.NumericalBreakdown, "non-finite branch length joining (%d,%d)", a, b)
	}

	crit.MergeRow(d.m, a, b, sizeA, sizeB, lenA, lenB)

	row := d.m.Row(b)
	for i := 0; i < d.m.Rank(); i++ {
		if i == b {
			continue
		}
		if math.IsNaN(row[i]) {
			return dmerrors.Newf(dmerrors.NumericalBreakdown, "merged distance is non-finite at (%d,%d)", b, i)
		}
	}

	newID, err := d.tree.AddCluster(d.rowToCluster[a], lenA, d.rowToCluster[b], lenB)
	if err != nil {
		return err
	}
	d.rowToCluster[b] = newID

	last := d.m.Rank() - 1
	if err := d.m.RemoveRowAndColumn(a); err != nil {
		return err
	}
	crit.AfterRemove(d.m, a, last)
	if a != last {
		d.rowToCluster[a] = d.rowToCluster[last]
	}

	return nil
}

func (d *Driver) threeActive() ([3]int, [3]int, error) {
	if d.m.Rank() != 3 {
		return [3]int{}, [3]int{}, dmerrors.Newf(dmerrors.Internal, "finishThree called at rank %d", d.m.Rank())
	}

	var ids, sizes [3]int
	for i := 0; i < 3; i++ {
		ids[i] = d.rowToCluster[i]
		sz, err := d.tree.Size(ids[i])
		if err != nil {
			return ids, sizes, err
		}
		sizes[i] = sz
	}

	return ids, sizes, nil
}

func (d *Driver) finishThree(crit Criterion, rooted bool) error {
	ids, sizes, err := d.threeActive()
	if err != nil {
		return err
	}

	la, lb, lc := crit.FinishThree(d.m, ids, sizes)
	if math.IsNaN(la) || math.IsNaN(lb) || math.IsNaN(lc) {
		return dmerrors.New(dmerrors.NumericalBreakdown, "non-finite terminal branch length")
	}

	if !rooted {
		_, err := d.tree.AddCluster3(ids[0], la, ids[1], lb, ids[2], lc)

		return err
	}

	inner, err := d.tree.AddCluster(ids[0], la, ids[1], lb)
	if err != nil {
		return err
	}
	_, err = d.tree.AddCluster(inner, 0, ids[2], lc)

	return err
}
