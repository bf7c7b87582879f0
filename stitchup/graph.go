package stitchup

import (
	"sort"

	"github.com/caseysm/decenttree/internal/dmerrors"
)

const (
	// StapleArch is the fraction of a staple edge's length assigned to
	// the arch connecting the two new interior nodes (spec §4.5).
	StapleArch = 1.0 / 3.0
	// StapleLeg is the fraction assigned to each of the two legs
	// connecting a new interior node back to the taxon it extends.
	StapleLeg = (1.0 - StapleArch) / 2.0
)

// arc is one directed half of a symmetric edge in the stitch graph.
type arc struct {
	to     int
	length float64
}

// graph is the stitch graph G (spec §3): nodes 0..numLeaves-1 are the
// original taxa; nodes numLeaves.. are interior nodes created by
// stapling. Edges are stored as adjacency lists and kept symmetric by
// always inserting both directed halves together.
type graph struct {
	numLeaves int
	adjacency map[int][]arc
	nextID    int
}

func newGraph(numLeaves int) *graph {
	return &graph{
		numLeaves: numLeaves,
		adjacency: make(map[int][]arc, 3*numLeaves),
		nextID:    numLeaves,
	}
}

func (g *graph) newNode() int {
	id := g.nextID
	g.nextID++

	return id
}

func (g *graph) addEdge(u, v int, length float64) {
	g.adjacency[u] = append(g.adjacency[u], arc{to: v, length: length})
	g.adjacency[v] = append(g.adjacency[v], arc{to: u, length: length})
}

// contract implements Phase C (spec §4.5): every interior node left
// with exactly two edges is a pass-through scaffolding artifact of
// stapling, never a genuine branch point, and is removed by splicing
// its two edges into one, summing their lengths. Nodes are walked to a
// fixed point so chains of several such nodes collapse in one pass;
// re-running contract on an already-contracted graph is a no-op
// (idempotent, per spec), since no non-leaf node will have degree 2
// left to find.
//
// Returns the deduplicated set of final edges, each written with its
// lower-numbered endpoint first, in ascending order of the surviving
// node they were first reached from, so the result is identical across
// runs.
func (g *graph) contract() []pairEdge {
	removed := make(map[int]bool)
	for node, edges := range g.adjacency {
		if node >= g.numLeaves && len(edges) == 2 {
			removed[node] = true
		}
	}

	nodes := make([]int, 0, len(g.adjacency))
	for node := range g.adjacency {
		nodes = append(nodes, node)
	}
	sort.Ints(nodes)

	seen := make(map[[2]int]bool)
	var final []pairEdge

	for _, node := range nodes {
		if removed[node] {
			continue
		}
		for _, e := range g.adjacency[node] {
			cur, length, prev := e.to, e.length, node
			for removed[cur] {
				next, nextLen, ok := otherNeighbor(g.adjacency[cur], prev)
				if !ok {
					break
				}
				length += nextLen
				prev, cur = cur, next
			}
			if cur == node {
				continue // self-loop after contraction, skip (spec §4.5)
			}
			u, v := node, cur
			if u > v {
				u, v = v, u
			}
			key := [2]int{u, v}
			if seen[key] {
				continue
			}
			seen[key] = true
			final = append(final, pairEdge{i: u, j: v, length: length})
		}
	}

	return final
}

func otherNeighbor(edges []arc, exclude int) (int, float64, bool) {
	for _, e := range edges {
		if e.to != exclude {
			return e.to, e.length, true
		}
	}

	return 0, 0, false
}

// buildAdjacency turns a contracted edge list back into an adjacency
// map for the forest-conversion walk.
func buildAdjacency(edges []pairEdge) map[int][]arc {
	adj := make(map[int][]arc, len(edges)*2)
	for _, e := range edges {
		adj[e.i] = append(adj[e.i], arc{to: e.j, length: e.length})
		adj[e.j] = append(adj[e.j], arc{to: e.i, length: e.length})
	}

	return adj
}

// findLeafEdge returns the unique final edge incident to a leaf, used
// to pick a root for the forest-conversion walk.
func findLeafEdge(adj map[int][]arc, leaf int) (arc, error) {
	edges := adj[leaf]
	if len(edges) != 1 {
		return arc{}, dmerrors.Newf(dmerrors.Internal, "stitchup: leaf %d has degree %d after contraction, want 1", leaf, len(edges))
	}

	return edges[0], nil
}
