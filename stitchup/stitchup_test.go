package stitchup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSquare(n int, off float64) []float64 {
	flat := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				flat[i*n+j] = off
			}
		}
	}

	return flat
}

func TestStapleConstantsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, StapleArch+2*StapleLeg, 1e-12)
}

func TestBuildProducesValidUnrootedTreeShape(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	distances := []float64{
		0, 2, 4, 6, 6,
		2, 0, 4, 6, 6,
		4, 4, 0, 6, 6,
		6, 6, 6, 0, 4,
		6, 6, 6, 4, 0,
	}

	tree, err := Build(names, distances)
	require.NoError(t, err)

	assert.Equal(t, len(names), tree.LeafCount())

	root, err := tree.Root()
	require.NoError(t, err)
	size, err := tree.Size(root)
	require.NoError(t, err)
	assert.Equal(t, len(names), size)

	nwk, err := tree.Newick(6)
	require.NoError(t, err)
	assert.NotEmpty(t, nwk)
}

func TestBuildRejectsTooFewTaxa(t *testing.T) {
	_, err := Build([]string{"A", "B"}, flatSquare(2, 1))
	assert.Error(t, err)
}

func TestBuildRejectsMalformedDistances(t *testing.T) {
	_, err := Build([]string{"A", "B", "C"}, []float64{0, 1, 2})
	assert.Error(t, err)
}

// TestContractionIsIdempotent re-runs contract on a graph already
// reduced to its final edge set, verifying a second pass changes
// nothing: no remaining non-leaf node should have degree 2.
func TestContractionIsIdempotent(t *testing.T) {
	g := newGraph(4)
	// a caterpillar: leaves 0,1 staple onto interior 4, which connects
	// straight through scaffolding node 5 (degree 2) to interior 6,
	// which the staple for leaves 2,3 attaches to.
	g.addEdge(0, 4, 1)
	g.addEdge(1, 4, 1)
	g.addEdge(4, 5, 1)
	g.addEdge(5, 6, 1)
	g.addEdge(2, 6, 1)
	g.addEdge(3, 6, 1)

	first := g.contract()
	require.NotEmpty(t, first)

	g2 := newGraph(4)
	for _, e := range first {
		g2.addEdge(e.i, e.j, e.length)
	}
	second := g2.contract()

	assert.ElementsMatch(t, first, second, "re-contracting an already-contracted graph must be a no-op")

	for node, edges := range g2.adjacency {
		if node >= g2.numLeaves {
			assert.NotEqual(t, 2, len(edges), "no surviving interior node should have degree 2")
		}
	}
}

func TestPairHashIsDeterministicAndOrderSensitive(t *testing.T) {
	a := pairHash(2, 5)
	b := pairHash(2, 5)
	assert.Equal(t, a, b)

	c := pairHash(5, 2)
	assert.NotEqual(t, a, c, "pairHash is not required to be symmetric, only deterministic")
}

func TestUnionFindMergesAndTracksComponents(t *testing.T) {
	uf := newUnionFind(5)
	assert.NotEqual(t, uf.find(0), uf.find(1))

	uf.union(0, 1)
	assert.Equal(t, uf.find(0), uf.find(1))

	uf.union(2, 3)
	uf.union(1, 3)
	assert.Equal(t, uf.find(0), uf.find(2))
	assert.NotEqual(t, uf.find(0), uf.find(4))
}

func TestBuildIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F"}
	distances := []float64{
		0, 5, 9, 9, 8, 12,
		5, 0, 10, 10, 9, 13,
		9, 10, 0, 8, 7, 11,
		9, 10, 8, 0, 3, 9,
		8, 9, 7, 3, 0, 8,
		12, 13, 11, 9, 8, 0,
	}

	var results []string
	for i := 0; i < 3; i++ {
		tree, err := Build(names, distances)
		require.NoError(t, err)
		nwk, err := tree.Newick(6)
		require.NoError(t, err)
		results = append(results, nwk)
	}

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i], "stitchup build must be deterministic across repeated runs")
	}
}

func TestNTCJProducesValidUnrootedTreeShape(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	distances := []float64{
		0, 5, 9, 9, 8,
		5, 0, 10, 10, 9,
		9, 10, 0, 8, 7,
		9, 10, 8, 0, 3,
		8, 9, 7, 3, 0,
	}

	d, err := NewNTCJDriver(names, distances)
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

func TestNTCJRootedSplitsTerminalTrifurcation(t *testing.T) {
	names := []string{"A", "B", "C"}
	d, err := NewNTCJDriver(names, flatSquare(3, 2))
	require.NoError(t, err)

	tree, err := d.Run(context.Background(), true)
	require.NoError(t, err)

	root, err := tree.Root()
	require.NoError(t, err)
	c, err := tree.Cluster(root)
	require.NoError(t, err)
	assert.Len(t, c.Links, 2)
}

func TestNTCJRespectsCancellation(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	d, err := NewNTCJDriver(names, flatSquare(5, 2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Run(ctx, false)
	assert.Error(t, err)
}
