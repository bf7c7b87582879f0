package rapidnj

import (
	"context"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/nj"
	"github.com/caseysm/decenttree/registry"
)

func init() {
	registry.Register("NJ-R", "Neighbor-Joining accelerated by RapidNJ's sorted-row candidate search",
		modeBuilder{mode: Standard, newCriterion: func() nj.Criterion { return nj.NeighborJoining{} }})
	registry.Register("AUCTION", "RapidNJ with auction-ordered row visitation",
		modeBuilder{mode: Auction, newCriterion: func() nj.Criterion { return nj.NeighborJoining{} }})
	registry.Register("BIONJ-R", "BIONJ accelerated by RapidNJ's sorted-row candidate search",
		modeBuilder{mode: Standard, newCriterion: func() nj.Criterion { return &nj.BIONJ{} }})
}

// modeBuilder adapts one (Mode, Criterion) pair to registry.Builder.
// RapidNJ's acceleration structure isn't parallelized across rows (the
// sorted index itself is the optimization), so threads is accepted for
// signature uniformity but unused.
type modeBuilder struct {
	mode         Mode
	newCriterion func() nj.Criterion
}

func (b modeBuilder) Build(ctx context.Context, names []string, distances []float64, threads int, rooted bool) (*clustertree.Tree, error) {
	d, err := NewDriver(names, distances, b.mode, b.newCriterion)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, rooted)
}
