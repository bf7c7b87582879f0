package rapidnj

import (
	"context"
	"testing"

	"github.com/caseysm/decenttree/nj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distances6() ([]string, []float64) {
	names := []string{"A", "B", "C", "D", "E", "F"}
	d := []float64{
		0, 5, 9, 9, 8, 12,
		5, 0, 10, 10, 9, 13,
		9, 10, 0, 8, 7, 11,
		9, 10, 8, 0, 3, 9,
		8, 9, 7, 3, 0, 8,
		12, 13, 11, 9, 8, 0,
	}

	return names, d
}

func TestRapidNJMatchesPlainNJ(t *testing.T) {
	names, distances := distances6()

	plain, err := nj.NewDriver(names, distances, 0, nj.ScalarScan)
	require.NoError(t, err)
	plainTree, err := plain.Run(context.Background(), nj.NeighborJoining{}, false)
	require.NoError(t, err)
	plainNwk, err := plainTree.Newick(6)
	require.NoError(t, err)

	fast, err := NewDriver(names, distances, Standard, func() nj.Criterion { return nj.NeighborJoining{} })
	require.NoError(t, err)
	fastTree, err := fast.Run(context.Background(), false)
	require.NoError(t, err)
	fastNwk, err := fastTree.Newick(6)
	require.NoError(t, err)

	assert.Equal(t, plainNwk, fastNwk, "RapidNJ must reach the same tree as the unaccelerated NJ scan")
}

func TestAuctionModeMatchesStandardMode(t *testing.T) {
	names, distances := distances6()

	std, err := NewDriver(names, distances, Standard, func() nj.Criterion { return nj.NeighborJoining{} })
	require.NoError(t, err)
	stdTree, err := std.Run(context.Background(), false)
	require.NoError(t, err)
	stdNwk, err := stdTree.Newick(6)
	require.NoError(t, err)

	auction, err := NewDriver(names, distances, Auction, func() nj.Criterion { return nj.NeighborJoining{} })
	require.NoError(t, err)
	auctionTree, err := auction.Run(context.Background(), false)
	require.NoError(t, err)
	auctionNwk, err := auctionTree.Newick(6)
	require.NoError(t, err)

	assert.Equal(t, stdNwk, auctionNwk)
}

func TestRunProducesValidUnrootedShape(t *testing.T) {
	names, distances := distances6()

	d, err := NewDriver(names, distances, Standard, func() nj.Criterion { return nj.NeighborJoining{} })
	require.NoError(t, err)
	tree, err := d.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, len(names), tree.LeafCount())
	assert.Equal(t, 2*len(names)-2, tree.Len())

	root, err := tree.Root()
	require.NoError(t, err)
	c, err := tree.Cluster(root)
	require.NoError(t, err)
	assert.Len(t, c.Links, 3)
}

func TestBIONJRMatchesPlainBIONJ(t *testing.T) {
	names, distances := distances6()

	plain, err := nj.NewDriver(names, distances, 0, nj.ScalarScan)
	require.NoError(t, err)
	plainTree, err := plain.Run(context.Background(), &nj.BIONJ{}, false)
	require.NoError(t, err)
	plainNwk, err := plainTree.Newick(6)
	require.NoError(t, err)

	fast, err := NewDriver(names, distances, Standard, func() nj.Criterion { return &nj.BIONJ{} })
	require.NoError(t, err)
	fastTree, err := fast.Run(context.Background(), false)
	require.NoError(t, err)
	fastNwk, err := fastTree.Newick(6)
	require.NoError(t, err)

	assert.Equal(t, plainNwk, fastNwk, "BIONJ-R must reach the same tree as the unaccelerated BIONJ scan")
}
