package nj

import (
	"context"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/registry"
)

func init() {
	registry.Register("UPGMA", "Unweighted Pair Group Method with Arithmetic mean",
		criterionBuilder{scan: ScalarScan, newCriterion: func() Criterion { return UPGMA{} }})
	registry.Register("NJ", "Neighbor-Joining (Saitou and Nei, 1987)",
		criterionBuilder{scan: ScalarScan, newCriterion: func() Criterion { return NeighborJoining{} }})
	registry.Register("BIONJ", "BIONJ: variance-weighted Neighbor-Joining (Gascuel, 1997)",
		criterionBuilder{scan: ScalarScan, newCriterion: func() Criterion { return &BIONJ{} }})
	registry.Register("UNJ", "Unweighted Neighbor-Joining (size-weighted NJ variant)",
		criterionBuilder{scan: ScalarScan, newCriterion: func() Criterion { return UNJ{} }})

	// -V suffix: same criterion, vectorized (blocked) row-minimum search
	// (spec.md §2/§4.3) instead of the scalar scan.
	registry.Register("UPGMA-V", "UPGMA with vectorized (blocked) row-minimum search",
		criterionBuilder{scan: BlockedScan, newCriterion: func() Criterion { return UPGMA{} }})
	registry.Register("NJ-V", "Neighbor-Joining with vectorized (blocked) row-minimum search",
		criterionBuilder{scan: BlockedScan, newCriterion: func() Criterion { return NeighborJoining{} }})
	registry.Register("BIONJ-V", "BIONJ with vectorized (blocked) row-minimum search",
		criterionBuilder{scan: BlockedScan, newCriterion: func() Criterion { return &BIONJ{} }})
}

// criterionBuilder adapts one Criterion to registry.Builder; newCriterion
// is called fresh for every build since a Criterion (e.g. *BIONJ) may
// carry per-build state. scan selects the row-minimum search strategy,
// letting one Criterion back both its plain and "-V" (vectorized) names.
type criterionBuilder struct {
	scan         RowScan
	newCriterion func() Criterion
}

func (b criterionBuilder) Build(ctx context.Context, names []string, distances []float64, threads int, rooted bool) (*clustertree.Tree, error) {
	d, err := NewDriver(names, distances, threads, b.scan)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, b.newCriterion(), rooted)
}
