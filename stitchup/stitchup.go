package stitchup

import (
	"container/heap"

	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/internal/dmerrors"
)

// Build runs the STITCHUP engine to completion (spec §4.5): heapify
// every pairwise distance (Phase A), repeatedly staple the shortest
// remaining edge between two not-yet-connected taxa (Phase B), then
// contract the resulting graph's degree-2 scaffolding nodes into a
// proper tree (Phase C), and convert that tree into a cluster forest.
func Build(names []string, distances []float64) (*clustertree.Tree, error) {
	n := len(names)
	if n < 3 {
		return nil, dmerrors.Newf(dmerrors.InputShape, "stitchup: need at least 3 taxa, got %d", n)
	}
	if len(distances) != n*n {
		return nil, dmerrors.Newf(dmerrors.InputShape, "stitchup: distances length %d, want %d", len(distances), n*n)
	}

	g := newGraph(n)
	uf := newUnionFind(n)
	tip := make([]int, n)
	accumulated := make([]float64, n)
	for i := range tip {
		tip[i] = i
	}

	h := make(edgeHeap, 0, n*(n-1)/2)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			h = append(h, pairEdge{i: i, j: j, length: distances[i*n+j], hash: pairHash(i, j)})
		}
	}
	heap.Init(&h)

	joins := 0
	bound := 2 * h.Len()
	iterations := 0
	for joins < n-1 {
		if h.Len() == 0 {
			return nil, dmerrors.New(dmerrors.Internal, "stitchup: exhausted candidate edges before every taxon was connected")
		}
		iterations++
		if iterations > bound {
			return nil, dmerrors.New(dmerrors.Internal, "stitchup: exceeded discard-loop bound (spec §4.5 guard)")
		}

		e := heap.Pop(&h).(pairEdge)
		if uf.find(e.i) == uf.find(e.j) {
			continue // already connected through some other path; discard
		}

		aPrime := g.newNode()
		bPrime := g.newNode()
		legI := StapleLeg * (e.length - accumulated[e.i])
		legJ := StapleLeg * (e.length - accumulated[e.j])

		g.addEdge(tip[e.i], aPrime, legI)
		g.addEdge(tip[e.j], bPrime, legJ)
		g.addEdge(aPrime, bPrime, StapleArch*e.length)

		accumulated[e.i] += legI
		accumulated[e.j] += legJ
		tip[e.i] = aPrime
		tip[e.j] = bPrime

		uf.union(e.i, e.j)
		joins++
	}

	return buildForest(names, n, g.contract())
}
