package clustertree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsLeavesInOrder(t *testing.T) {
	tr := New([]string{"A", "B", "C"})
	require.Equal(t, 3, tr.Len())
	require.Equal(t, 3, tr.LeafCount())

	for i, name := range []string{"A", "B", "C"} {
		c, err := tr.Cluster(i)
		require.NoError(t, err)
		assert.True(t, c.IsLeaf())
		assert.Equal(t, name, c.Name)
		assert.Equal(t, 1, c.Size)
	}
}

func TestAddClusterJoinsTwoAndAccumulatesSize(t *testing.T) {
	tr := New([]string{"A", "B", "C", "D"})
	ab, err := tr.AddCluster(0, 1, 1, 1)
	require.NoError(t, err)
	cd, err := tr.AddCluster(2, 1, 3, 1)
	require.NoError(t, err)

	size, err := tr.Size(ab)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	root, err := tr.AddCluster(ab, 1, cd, 1)
	require.NoError(t, err)

	rootSize, err := tr.Size(root)
	require.NoError(t, err)
	assert.Equal(t, 4, rootSize)

	got, err := tr.Root()
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestAddCluster3TerminalJoin(t *testing.T) {
	tr := New([]string{"A", "B", "C"})
	root, err := tr.AddCluster3(0, 0.5, 1, 0.5, 2, 0.5)
	require.NoError(t, err)

	size, err := tr.Size(root)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	nwk, err := tr.Newick(6)
	require.NoError(t, err)
	assert.Equal(t, "(A:0.500000,B:0.500000,C:0.500000);", nwk)
}

func TestNewickUltrametricUPGMAShape(t *testing.T) {
	// Scenario 2 of spec §8: ((A:1,B:1):1,(C:1,D:1):1);
	tr := New([]string{"A", "B", "C", "D"})
	ab, err := tr.AddCluster(0, 1, 1, 1)
	require.NoError(t, err)
	cd, err := tr.AddCluster(2, 1, 3, 1)
	require.NoError(t, err)
	_, err = tr.AddCluster(ab, 1, cd, 1)
	require.NoError(t, err)

	nwk, err := tr.Newick(6)
	require.NoError(t, err)
	assert.Equal(t, "((A:1.000000,B:1.000000):1.000000,(C:1.000000,D:1.000000):1.000000);", nwk)
}

func TestNewickRejectsPrecisionBelowOne(t *testing.T) {
	tr := New([]string{"A", "B", "C"})
	_, err := tr.AddCluster3(0, 0.5, 1, 0.5, 2, 0.5)
	require.NoError(t, err)

	_, err = tr.Newick(0)
	assert.ErrorIs(t, err, ErrInvalidPrecision)
}

func TestNewickRejectsEmptyTree(t *testing.T) {
	tr := &Tree{}
	_, err := tr.Newick(6)
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestFormatLengthCollapsesNonPositive(t *testing.T) {
	assert.Equal(t, "0", formatLength(0, 6))
	assert.Equal(t, "0", formatLength(-0.001, 6))
	assert.Equal(t, "1.500000", formatLength(1.5, 6))
	assert.Equal(t, "1.5", formatLength(1.5, 1))
}

func TestSizeAndClusterRejectUnknownID(t *testing.T) {
	tr := New([]string{"A", "B"})
	_, err := tr.Size(99)
	assert.ErrorIs(t, err, ErrUnknownCluster)

	_, err = tr.Cluster(-1)
	assert.ErrorIs(t, err, ErrUnknownCluster)
}

func TestAddClusterNJoinsArbitraryArity(t *testing.T) {
	tr := New([]string{"A", "B", "C", "D"})
	root, err := tr.AddClusterN([]Link{
		{Child: 0, Length: 1},
		{Child: 1, Length: 1},
		{Child: 2, Length: 1},
		{Child: 3, Length: 1},
	})
	require.NoError(t, err)

	size, err := tr.Size(root)
	require.NoError(t, err)
	assert.Equal(t, 4, size)

	nwk, err := tr.Newick(6)
	require.NoError(t, err)
	assert.Equal(t, "(A:1.000000,B:1.000000,C:1.000000,D:1.000000);", nwk)
}

func TestAddClusterNRejectsFewerThanTwoLinks(t *testing.T) {
	tr := New([]string{"A", "B"})
	_, err := tr.AddClusterN([]Link{{Child: 0, Length: 1}})
	assert.Error(t, err)
}

func TestNewickSubtreeOmitsOuterParensAndSemicolon(t *testing.T) {
	tr := New([]string{"A", "B", "C"})
	_, err := tr.AddCluster3(0, 0.5, 1, 0.5, 2, 0.5)
	require.NoError(t, err)

	nwk, err := tr.NewickSubtree(6)
	require.NoError(t, err)
	assert.Equal(t, "A:0.500000,B:0.500000,C:0.500000", nwk)
}

func TestNewickSubtreeRejectsPrecisionBelowOne(t *testing.T) {
	tr := New([]string{"A", "B", "C"})
	_, err := tr.AddCluster3(0, 0.5, 1, 0.5, 2, 0.5)
	require.NoError(t, err)

	_, err = tr.NewickSubtree(0)
	assert.ErrorIs(t, err, ErrInvalidPrecision)
}
