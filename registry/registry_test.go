package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseysm/decenttree/registry"

	// Blank-imported so each algorithm family's init() self-registers
	// against registry before List/Build are exercised below — the same
	// pattern database/sql drivers use, and why this wiring lives in an
	// external test package rather than an internal one: registry
	// itself must never import these, or the self-registration scheme
	// (registry/doc.go's package comment) would be defeated by a cycle.
	_ "github.com/caseysm/decenttree/nj"
	_ "github.com/caseysm/decenttree/rapidnj"
	_ "github.com/caseysm/decenttree/stitchup"
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

func TestListReturnsEverySelfRegisteredAlgorithm(t *testing.T) {
	names := make(map[string]bool)
	for _, info := range registry.List() {
		names[info.Name] = true
		assert.NotEmpty(t, info.Description)
	}

	// spec.md §2's algorithm registry names, verbatim.
	for _, want := range []string{
		"UPGMA", "UPGMA-V", "NJ", "NJ-V", "NJ-R", "BIONJ", "BIONJ-V",
		"BIONJ-R", "UNJ", "STITCH", "NTCJ", "AUCTION",
	} {
		assert.True(t, names[want], "expected %q to be registered", want)
	}
}

func TestListIsSortedByName(t *testing.T) {
	list := registry.List()
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Name, list[i].Name)
	}
}

func TestBuildRejectsUnknownAlgorithm(t *testing.T) {
	names := []string{"A", "B", "C"}
	_, err := registry.Build(context.Background(), "NOT-AN-ALGORITHM", names, flatSquare(3, 2))
	assert.Error(t, err)
}

func TestBuildRejectsTooFewTaxa(t *testing.T) {
	_, err := registry.Build(context.Background(), "NJ", []string{"A", "B"}, flatSquare(2, 1))
	assert.Error(t, err)
}

func TestBuildRejectsDuplicateNames(t *testing.T) {
	_, err := registry.Build(context.Background(), "NJ", []string{"A", "A", "B"}, flatSquare(3, 2))
	assert.Error(t, err)
}

func TestBuildRejectsMalformedDistances(t *testing.T) {
	_, err := registry.Build(context.Background(), "NJ", []string{"A", "B", "C"}, []float64{0, 1, 2})
	assert.Error(t, err)
}

func TestBuildRejectsNonFiniteOrNegativeDistances(t *testing.T) {
	d := flatSquare(3, 2)
	d[1] = -1
	_, err := registry.Build(context.Background(), "NJ", []string{"A", "B", "C"}, d)
	assert.Error(t, err)
}

func TestBuildProducesNewickForEveryAlgorithm(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	distances := []float64{
		0, 5, 9, 9, 8,
		5, 0, 10, 10, 9,
		9, 10, 0, 8, 7,
		9, 10, 8, 0, 3,
		8, 9, 7, 3, 0,
	}

	for _, info := range registry.List() {
		nwk, err := registry.Build(context.Background(), info.Name, names, distances, registry.WithPrecision(4))
		require.NoError(t, err, info.Name)
		assert.NotEmpty(t, nwk, info.Name)
		assert.Equal(t, byte(';'), nwk[len(nwk)-1], info.Name)
	}
}

func TestBuildSubtreeOnlyOmitsOuterParensAndSemicolon(t *testing.T) {
	names := []string{"A", "B", "C"}
	nwk, err := registry.Build(context.Background(), "NJ", names, flatSquare(3, 2), registry.WithSubtreeOnly(true))
	require.NoError(t, err)
	assert.NotContains(t, nwk, ";")
	assert.NotEqual(t, byte('('), nwk[0])
}

func TestBuildRejectsPrecisionBelowOne(t *testing.T) {
	names := []string{"A", "B", "C"}
	_, err := registry.Build(context.Background(), "NJ", names, flatSquare(3, 2), registry.WithPrecision(0))
	assert.Error(t, err)
}

func TestBuildRespectsCancellation(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	distances := flatSquare(5, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := registry.Build(ctx, "NJ", names, distances)
	assert.Error(t, err)
}
