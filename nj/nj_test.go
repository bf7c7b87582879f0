package nj

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

func TestUPGMAEquidistantStarJoinsRowOneColZeroFirst(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	d, err := NewDriver(names, flatSquare(4, 2), 0, ScalarScan)
	require.NoError(t, err)

	tree, err := d.Run(context.Background(), UPGMA{}, false)
	require.NoError(t, err)

	nwk, err := tree.Newick(6)
	require.NoError(t, err)
	assert.Equal(t, "((A:1.000000,B:1.000000):0.500000,D:0.750000,C:0.750000);", nwk)
}

func TestUPGMAProducesValidUnrootedTreeShape(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	distances := []float64{
		0, 2, 4, 6, 6,
		2, 0, 4, 6, 6,
		4, 4, 0, 6, 6,
		6, 6, 6, 0, 4,
		6, 6, 6, 4, 0,
	}

	d, err := NewDriver(names, distances, 0, ScalarScan)
	require.NoError(t, err)

	tree, err := d.Run(context.Background(), UPGMA{}, false)
	require.NoError(t, err)

	assert.Equal(t, len(names), tree.LeafCount())
	assert.Equal(t, 2*len(names)-2, tree.Len(), "N leaves + (N-2) interior clusters")

	root, err := tree.Root()
	require.NoError(t, err)
	c, err := tree.Cluster(root)
	require.NoError(t, err)
	assert.Len(t, c.Links, 3, "unrooted terminal join has three outgoing links")

	size, err := tree.Size(root)
	require.NoError(t, err)
	assert.Equal(t, len(names), size)
}

func TestRootedSplitsTerminalTrifurcation(t *testing.T) {
	names := []string{"A", "B", "C"}
	d, err := NewDriver(names, flatSquare(3, 2), 0, ScalarScan)
	require.NoError(t, err)

	tree, err := d.Run(context.Background(), UPGMA{}, true)
	require.NoError(t, err)

	root, err := tree.Root()
	require.NoError(t, err)
	c, err := tree.Cluster(root)
	require.NoError(t, err)
	assert.Len(t, c.Links, 2, "rooted build ends in a bifurcating root")
}

func TestRunRespectsCancellation(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	d, err := NewDriver(names, flatSquare(5, 2), 0, ScalarScan)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Run(ctx, UPGMA{}, false)
	assert.Error(t, err)
}

func TestNeighborJoiningAndBIONJProduceValidShapes(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	distances := []float64{
		0, 5, 9, 9, 8,
		5, 0, 10, 10, 9,
		9, 10, 0, 8, 7,
		9, 10, 8, 0, 3,
		8, 9, 7, 3, 0,
	}

	for _, crit := range []Criterion{NeighborJoining{}, &BIONJ{}, UNJ{}} {
		d, err := NewDriver(names, distances, 0, ScalarScan)
		require.NoError(t, err)

		tree, err := d.Run(context.Background(), crit, false)
		require.NoError(t, err, crit.Name())

		assert.Equal(t, len(names), tree.LeafCount(), crit.Name())
		assert.Equal(t, 2*len(names)-2, tree.Len(), crit.Name())
	}
}

func TestBlockedScanMatchesScalarScan(t *testing.T) {
	names := make([]string, 20)
	distances := make([]float64, 20*20)
	for i := range names {
		names[i] = string(rune('A' + i))
		for j := range names {
			if i != j {
				distances[i*20+j] = float64((i+1)*(j+1)%17) + 1
			}
		}
	}
	// symmetrize via lower-triangle-authoritative convention
	for i := 0; i < 20; i++ {
		for j := 0; j < i; j++ {
			distances[j*20+i] = distances[i*20+j]
		}
	}

	scalar, err := NewDriver(names, distances, 0, ScalarScan)
	require.NoError(t, err)
	scalarTree, err := scalar.Run(context.Background(), UPGMA{}, false)
	require.NoError(t, err)
	scalarNwk, err := scalarTree.Newick(6)
	require.NoError(t, err)

	blocked, err := NewDriver(names, distances, 0, BlockedScan)
	require.NoError(t, err)
	blockedTree, err := blocked.Run(context.Background(), UPGMA{}, false)
	require.NoError(t, err)
	blockedNwk, err := blockedTree.Newick(6)
	require.NoError(t, err)

	assert.Equal(t, scalarNwk, blockedNwk)
}

func TestThreadCountDoesNotChangeResult(t *testing.T) {
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
	for _, threads := range []int{1, 2, 4} {
		d, err := NewDriver(names, distances, threads, ScalarScan)
		require.NoError(t, err)
		tree, err := d.Run(context.Background(), NeighborJoining{}, false)
		require.NoError(t, err)
		nwk, err := tree.Newick(6)
		require.NoError(t, err)
		results = append(results, nwk)
	}

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i], "determinism must hold regardless of thread count")
	}
}
