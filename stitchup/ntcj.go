package stitchup

import (
	"container/heap"
	"context"
	"math"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/internal/dmerrors"
	"github.com/caseysm/decenttree/matrix"
	"github.com/caseysm/decenttree/nj"
)

// ntcjCandidate is one heap entry: the NJ-adjusted distance for active
// rows (i,j) as of the last time it was computed. Entries are
// revalidated against the live matrix on pop rather than proactively
// invalidated on every join — a lazy-decrease-key scheme equivalent to
// (but simpler than) maintaining per-row staleness bookkeeping, correct
// because a stale entry (row renumbered by swap-with-last, or its score
// shifted by an unrelated merge) simply fails revalidation and is
// recomputed and reinserted against whatever now occupies that row.
type ntcjCandidate struct {
	score float64
	i, j  int
}

type ntcjHeap []ntcjCandidate

func (h ntcjHeap) Len() int            { return len(h) }
func (h ntcjHeap) Less(a, b int) bool  { return h[a].score < h[b].score }
func (h ntcjHeap) Swap(a, b int)       { h[a], h[b] = h[b], h[a] }
func (h *ntcjHeap) Push(x interface{}) { *h = append(*h, x.(ntcjCandidate)) }
func (h *ntcjHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// NTCJDriver implements the NTCJ variant (spec §4.5): rather than
// STITCHUP's staple-and-contract post-processing, it drives the same
// NJ join/merge mechanics package nj uses (nj.NeighborJoining), fed by
// a heap of NJ-adjusted distances instead of a per-round full row scan.
type NTCJDriver struct {
	m            *matrix.SquareMatrix
	tree         *clustertree.Tree
	rowToCluster []int
	crit         nj.NeighborJoining
	h            ntcjHeap
}

// NewNTCJDriver loads names/distances and seeds the candidate heap with
// every initial pair.
func NewNTCJDriver(names []string, distances []float64) (*NTCJDriver, error) {
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

	d := &NTCJDriver{m: m, tree: clustertree.New(names), rowToCluster: rowToCluster}
	d.crit.Init(d.m)
	d.pushAllPairs()

	return d, nil
}

func (d *NTCJDriver) pushAllPairs() {
	rank := d.m.Rank()
	d.h = make(ntcjHeap, 0, rank*(rank-1)/2)
	for i := 1; i < rank; i++ {
		for j := 0; j < i; j++ {
			d.h = append(d.h, ntcjCandidate{score: d.crit.Score(d.m, i, j), i: i, j: j})
		}
	}
	heap.Init(&d.h)
}

func (d *NTCJDriver) pushCandidatesForRow(b int) {
	rank := d.m.Rank()
	for k := 0; k < rank; k++ {
		if k == b {
			continue
		}
		i, j := b, k
		if j > i {
			i, j = j, i
		}
		heap.Push(&d.h, ntcjCandidate{score: d.crit.Score(d.m, i, j), i: i, j: j})
	}
}

// Run drives the join loop to completion. See nj.Driver.Run for the
// rooted/unrooted contract.
func (d *NTCJDriver) Run(ctx context.Context, rooted bool) (*clustertree.Tree, error) {
	for d.m.Rank() > 3 {
		select {
		case <-ctx.Done():
			return nil, dmerrors.Newf(dmerrors.Cancelled, "build cancelled at rank %d", d.m.Rank())
		default:
		}

		a, b, err := d.popValidCandidate(ctx)
		if err != nil {
			return nil, err
		}
		if err := d.join(a, b); err != nil {
			return nil, err
		}
		d.pushCandidatesForRow(b)
	}

	return d.finishThree(rooted)
}

func (d *NTCJDriver) popValidCandidate(ctx context.Context) (int, int, error) {
	for d.h.Len() > 0 {
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		default:
		}

		c := heap.Pop(&d.h).(ntcjCandidate)
		if c.i <= c.j || c.i >= d.m.Rank() {
			continue // row renumbered out from under this entry
		}
		live := d.crit.Score(d.m, c.i, c.j)
		if live != c.score {
			heap.Push(&d.h, ntcjCandidate{score: live, i: c.i, j: c.j})
			continue
		}

		return c.i, c.j, nil
	}

	return 0, 0, dmerrors.New(dmerrors.Internal, "ntcj: heap exhausted without finding a valid candidate")
}

func (d *NTCJDriver) join(a, b int) error {
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

	lenA, lenB := d.crit.BranchLengths(d.m, a, b, sizeA, sizeB)
	if math.IsNaN(lenA) || math.IsNaN(lenB) {
		return dmerrors.Newf(dmerrors.NumericalBreakdown, "non-finite branch length joining (%d,%d)", a, b)
	}

	d.crit.MergeRow(d.m, a, b, sizeA, sizeB, lenA, lenB)

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
	if a != last {
		d.rowToCluster[a] = d.rowToCluster[last]
	}

	return nil
}

func (d *NTCJDriver) finishThree(rooted bool) (*clustertree.Tree, error) {
	if d.m.Rank() != 3 {
		return nil, dmerrors.Newf(dmerrors.Internal, "finishThree called at rank %d", d.m.Rank())
	}

	var ids, sizes [3]int
	for i := 0; i < 3; i++ {
		ids[i] = d.rowToCluster[i]
		sz, err := d.tree.Size(ids[i])
		if err != nil {
			return nil, err
		}
		sizes[i] = sz
	}

	la, lb, lc := d.crit.FinishThree(d.m, ids, sizes)
	if math.IsNaN(la) || math.IsNaN(lb) || math.IsNaN(lc) {
		return nil, dmerrors.New(dmerrors.NumericalBreakdown, "non-finite terminal branch length")
	}

	if !rooted {
		if _, err := d.tree.AddCluster3(ids[0], la, ids[1], lb, ids[2], lc); err != nil {
			return nil, err
		}

		return d.tree, nil
	}

	inner, err := d.tree.AddCluster(ids[0], la, ids[1], lb)
	if err != nil {
		return nil, err
	}
	if _, err := d.tree.AddCluster(inner, 0, ids[2], lc); err != nil {
		return nil, err
	}

	return d.tree, nil
}
