package stitchup

import (
	"context"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/registry"
)

func init() {
	registry.Register("STITCH", "STITCHUP: heap-driven staple-and-contract tree builder",
		stitchupBuilder{})
	registry.Register("NTCJ", "NearestTaxonClusterJoining: NJ join mechanics fed by a staleness-tolerant candidate heap",
		ntcjBuilder{})
}

// stitchupBuilder adapts Build to registry.Builder. STITCHUP's Phase
// A/B/C pipeline has no cooperative-cancellation point and always
// produces an unrooted forest (its root is an artifact of where the
// forest-conversion walk starts, not a modeling choice) so ctx, threads,
// and rooted are accepted for signature uniformity but unused.
type stitchupBuilder struct{}

func (stitchupBuilder) Build(ctx context.Context, names []string, distances []float64, threads int, rooted bool) (*clustertree.Tree, error) {
	return Build(names, distances)
}

// ntcjBuilder adapts NTCJDriver to registry.Builder.
type ntcjBuilder struct{}

func (ntcjBuilder) Build(ctx context.Context, names []string, distances []float64, threads int, rooted bool) (*clustertree.Tree, error) {
	d, err := NewNTCJDriver(names, distances)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, rooted)
}
