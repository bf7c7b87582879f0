package clustertree

import "fmt"

// Link is one outgoing edge from an interior cluster to a child cluster
// (leaf or interior), carrying the branch length computed by the
// agglomeration engine that created the join.
type Link struct {
	Child  int
	Length float64
}

// Cluster is one node in the forest: a leaf wraps a single taxon (Name
// set, no Links); an interior cluster links two children (the common
// case), three (the unrooted terminal join, spec §4.2 step 6), or any
// larger number when added through AddClusterN.
type Cluster struct {
	ID    int
	Name  string // non-empty only for leaves
	Size  int    // leaf count under this cluster
	Links []Link
}

// IsLeaf reports whether c wraps a single taxon.
func (c Cluster) IsLeaf() bool { return len(c.Links) == 0 }

// Tree is the append-only cluster forest. Clusters are addressed by a
// dense integer id (their index in the arena); ids are assigned in
// append order and never reused or mutated.
type Tree struct {
	clusters []Cluster
}

// New creates a Tree with leaves 0..len(names)-1 already appended, in
// input order, matching the row indices of the distance matrix they
// were loaded alongside.
//
// Complexity: O(len(names)).
func New(names []string) *Tree {
	t := &Tree{clusters: make([]Cluster, 0, 2*len(names))}
	for _, name := range names {
		t.addLeaf(name)
	}

	return t
}

func (t *Tree) addLeaf(name string) int {
	id := len(t.clusters)
	t.clusters = append(t.clusters, Cluster{ID: id, Name: name, Size: 1})

	return id
}

// LeafCount returns the number of leaves (taxa) in the forest.
func (t *Tree) LeafCount() int {
	n := 0
	for _, c := range t.clusters {
		if c.IsLeaf() {
			n++
		}
	}

	return n
}

// Size returns the leaf count under cluster id. Complexity: O(1).
func (t *Tree) Size(id int) (int, error) {
	if id < 0 || id >= len(t.clusters) {
		return 0, fmt.Errorf("clustertree.Size(%d): %w", id, ErrUnknownCluster)
	}

	return t.clusters[id].Size, nil
}

// AddCluster appends a new interior cluster joining two existing
// clusters a and b with branch lengths lenA and lenB, and returns its
// new id. This is the two-way join used by every interior step of the
// agglomeration loop (spec §4.2 step 5).
//
// Complexity: O(1).
func (t *Tree) AddCluster(a int, lenA float64, b int, lenB float64) (int, error) {
	sa, err := t.Size(a)
	if err != nil {
		return 0, err
	}
	sb, err := t.Size(b)
	if err != nil {
		return 0, err
	}

	id := len(t.clusters)
	t.clusters = append(t.clusters, Cluster{
		ID:   id,
		Size: sa + sb,
		Links: []Link{
			{Child: a, Length: lenA},
			{Child: b, Length: lenB},
		},
	})

	return id, nil
}

// AddCluster3 appends the terminal, three-way interior cluster used to
// close out an unrooted build when exactly three clusters remain (spec
// §4.2 step 6, "finish_three").
//
// Complexity: O(1).
func (t *Tree) AddCluster3(a int, lenA float64, b int, lenB float64, c int, lenC float64) (int, error) {
	sa, err := t.Size(a)
	if err != nil {
		return 0, err
	}
	sb, err := t.Size(b)
	if err != nil {
		return 0, err
	}
	sc, err := t.Size(c)
	if err != nil {
		return 0, err
	}

	id := len(t.clusters)
	t.clusters = append(t.clusters, Cluster{
		ID:   id,
		Size: sa + sb + sc,
		Links: []Link{
			{Child: a, Length: lenA},
			{Child: b, Length: lenB},
			{Child: c, Length: lenC},
		},
	})

	return id, nil
}

// AddClusterN appends an interior cluster with an arbitrary number
// (>=2) of outgoing links, for builders whose topology isn't known to
// be strictly bifurcating or trifurcating ahead of time (e.g.
// stitchup's contracted-graph-to-forest conversion, where a branch
// point's degree depends on how many ties coincided during stapling).
func (t *Tree) AddClusterN(links []Link) (int, error) {
	if len(links) < 2 {
		return 0, fmt.Errorf("clustertree.AddClusterN: need at least 2 links, got %d", len(links))
	}

	size := 0
	for _, l := range links {
		sz, err := t.Size(l.Child)
		if err != nil {
			return 0, err
		}
		size += sz
	}

	id := len(t.clusters)
	t.clusters = append(t.clusters, Cluster{
		ID:    id,
		Size:  size,
		Links: append([]Link(nil), links...),
	})

	return id, nil
}

// Root returns the id of the last-appended cluster — the construction
// terminates with this cluster, either a three-way unrooted join or a
// two-way rooted join.
//
// Complexity: O(1).
func (t *Tree) Root() (int, error) {
	if len(t.clusters) == 0 {
		return 0, ErrEmptyTree
	}

	return len(t.clusters) - 1, nil
}

// Cluster returns a copy of the cluster record for id.
func (t *Tree) Cluster(id int) (Cluster, error) {
	if id < 0 || id >= len(t.clusters) {
		return Cluster{}, fmt.Errorf("clustertree.Cluster(%d): %w", id, ErrUnknownCluster)
	}

	return t.clusters[id], nil
}

// Len returns the total number of clusters (leaves + interior) appended
// so far.
func (t *Tree) Len() int { return len(t.clusters) }
