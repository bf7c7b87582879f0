package stitchup

import (
	"github.com/caseysm/decenttree/clustertree"
	"github.com/caseysm/decenttree/internal/dmerrors"
)

// buildForest converts the contracted stitch graph into a cluster
// forest by rooting the walk at the unique neighbor of leaf 0 and
// recursing outward, skipping the edge back toward whichever node was
// just visited so every node is emitted exactly once.
func buildForest(names []string, numLeaves int, edges []pairEdge) (*clustertree.Tree, error) {
	tree := clustertree.New(names)
	adjacency := buildAdjacency(edges)

	rootEdge, err := findLeafEdge(adjacency, 0)
	if err != nil {
		return nil, err
	}

	c := &converter{tree: tree, adjacency: adjacency, numLeaves: numLeaves}
	if _, err := c.build(rootEdge.to, -1); err != nil {
		return nil, err
	}

	return tree, nil
}

type converter struct {
	tree      *clustertree.Tree
	adjacency map[int][]arc
	numLeaves int
}

// build recursively converts the subtree rooted at node (having arrived
// from parent, whose edge is excluded from node's own children) into
// clustertree clusters, returning node's cluster id. Leaf ids coincide
// with clustertree's pre-seeded leaf ids, so leaves are returned as-is.
func (c *converter) build(node, parent int) (int, error) {
	if node < c.numLeaves {
		return node, nil
	}

	var links []clustertree.Link
	for _, e := range c.adjacency[node] {
		if e.to == parent {
			continue
		}
		childID, err := c.build(e.to, node)
		if err != nil {
			return 0, err
		}
		links = append(links, clustertree.Link{Child: childID, Length: e.length})
	}
	if len(links) < 2 {
		return 0, dmerrors.Newf(dmerrors.Internal, "stitchup: interior node %d has %d children after contraction, want >= 2", node, len(links))
	}

	return c.tree.AddClusterN(links)
}
