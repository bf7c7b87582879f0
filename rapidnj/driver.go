package rapidnj

import (
	"context"
	"math"
	"sort"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/internal/dmerrors"
	"github.com/caseysm/decenttree/matrix"
	"github.com/caseysm/decenttree/nj"
)

// Mode selects the order RapidNJ visits active rows in while searching
// for the global minimum (spec §4.4).
type Mode int

const (
	// Standard visits rows in natural ascending order.
	Standard Mode = iota
	// Auction visits rows ordered by their own cheapest available
	// candidate first, so the global cutoff tightens sooner.
	Auction
)

// Driver runs an nj.Criterion (NJ or BIONJ — delegated to nj.Criterion,
// so its formulas are never duplicated) accelerated by a per-row sorted
// candidate list and a global best-score cutoff.
//
// Reconciliation simplification: spec §4.4 describes lazily
// invalidating only the rows touched by a join and rebuilding just the
// merged row's list. This Driver instead rebuilds every row's sorted
// list after each join — O(n^2 log n) instead of the amortized cost
// the lazy scheme achieves — trading asymptotic optimality for a
// simpler, clearly-correct implementation; the early-exit bound and the
// Auction visiting order themselves are implemented exactly as
// specified. See DESIGN.md.
type Driver struct {
	m            *matrix.SquareMatrix
	tree         *clustertree.Tree
	rowToCluster []int
	crit         nj.Criterion
	sorted       [][]int // sorted[r]: columns < r, ascending by M[r][col]
	mode         Mode
}

// NewDriver loads names/distances and builds the initial sorted index.
// newCriterion supplies the join formulas RapidNJ's acceleration drives
// (nj.NeighborJoining for "NJ-R"/"AUCTION", *nj.BIONJ for "BIONJ-R" —
// see register.go); the accelerated bound in findBest relies on both
// criteria sharing the same Q(i,j) = d(i,j) - (T(i)+T(j))/(N'-2) score
// shape, so any Criterion whose Score follows that shape may be used.
func NewDriver(names []string, distances []float64, mode Mode, newCriterion func() nj.Criterion) (*Driver, error) {
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

	d := &Driver{
		m:            m,
		tree:         clustertree.New(names),
		rowToCluster: rowToCluster,
		crit:         newCriterion(),
		mode:         mode,
	}
	d.rebuildSortedIndex()

	return d, nil
}

func (d *Driver) rebuildSortedIndex() {
	rank := d.m.Rank()
	d.sorted = make([][]int, rank)
	for r := 1; r < rank; r++ {
		d.sorted[r] = d.sortedColumns(r)
	}
}

func (d *Driver) sortedColumns(r int) []int {
	cols := make([]int, r)
	for c := 0; c < r; c++ {
		cols[c] = c
	}
	row := d.m.Row(r)
	sort.SliceStable(cols, func(i, j int) bool { return row[cols[i]] < row[cols[j]] })

	return cols
}

// Run drives the accelerated join loop to completion, returning the
// cluster forest. See nj.Driver.Run for the rooted/unrooted contract.
func (d *Driver) Run(ctx context.Context, rooted bool) (*clustertree.Tree, error) {
	d.crit.Init(d.m)

	for d.m.Rank() > 3 {
		select {
		case <-ctx.Done():
			return nil, dmerrors.Newf(dmerrors.Cancelled, "build cancelled at rank %d", d.m.Rank())
		default:
		}

		best, err := d.findBest(ctx)
		if err != nil {
			return nil, err
		}
		if err := d.join(best.row, best.col); err != nil {
			return nil, err
		}
	}

	return d.finishThree(rooted)
}

// findBest implements spec §4.4's accelerated search: for each row r
// (in Mode's visiting order), iterate S[r] in ascending-distance order,
// computing the NJ score for each candidate; stop scanning r once the
// monotone lower bound on its remaining candidates cannot beat the best
// score found so far.
func (d *Driver) findBest(ctx context.Context) (position, error) {
	rank := d.m.Rank()
	order := make([]int, 0, rank-1)
	for r := 1; r < rank; r++ {
		order = append(order, r)
	}
	if d.mode == Auction {
		sort.SliceStable(order, func(i, j int) bool {
			return d.cheapestCandidate(order[i]) < d.cheapestCandidate(order[j])
		})
	}

	nPrime := float64(rank)
	tMax := d.maxRowTotal()
	best := position{value: math.Inf(1), col: -1}

	for _, r := range order {
		select {
		case <-ctx.Done():
			return position{}, ctx.Err()
		default:
		}

		row := d.m.Row(r)
		tr := d.m.RowTotal(r)
		for _, c := range d.sorted[r] {
			// Bound uses the Q(i,j) = d(i,j) - (T(i)+T(j))/(N'-2) shape
			// directly (spec §4.4): it is monotone along S[r] for both
			// NJ and BIONJ's identical Score formula, so this early-exit
			// is valid regardless of which Criterion is configured.
			bound := row[c] - (tr+tMax)/(nPrime-2)
			if bound >= best.value {
				break // spec §4.4: d monotone along S[r] bounds all remaining candidates
			}
			score := d.crit.Score(d.m, r, c)
			cand := position{value: score, row: r, col: c, imbalance: d.imbalance(r, c)}
			if less(cand, best) {
				best = cand
			}
		}
	}
	if best.col < 0 {
		return position{}, dmerrors.New(dmerrors.Internal, "rapidnj: row-minimum search found no candidate pair")
	}

	return best, nil
}

func (d *Driver) cheapestCandidate(r int) float64 {
	cols := d.sorted[r]
	if len(cols) == 0 {
		return math.Inf(1)
	}

	return d.m.Row(r)[cols[0]]
}

func (d *Driver) maxRowTotal() float64 {
	rank := d.m.Rank()
	maxT := math.Inf(-1)
	for i := 0; i < rank; i++ {
		if t := d.m.RowTotal(i); t > maxT {
			maxT = t
		}
	}

	return maxT
}

func (d *Driver) imbalance(row, col int) int {
	sr, _ := d.tree.Size(d.rowToCluster[row])
	sc, _ := d.tree.Size(d.rowToCluster[col])
	diff := sr - sc
	if diff < 0 {
		diff = -diff
	}

	return diff
}

func (d *Driver) join(a, b int) error {
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
	d.crit.AfterRemove(d.m, a, last)
	if a != last {
		d.rowToCluster[a] = d.rowToCluster[last]
	}
	d.rebuildSortedIndex()

	return nil
}

func (d *Driver) finishThree(rooted bool) (*clustertree.Tree, error) {
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
