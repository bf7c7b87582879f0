// Package decenttreeio is the file-I/O collaborator spec.md §1 places
// outside the core's scope: a distance-matrix reader/writer matching
// original_source/flatmatrix.cpp's on-disk format exactly (padded name
// column, square/upper/lower shapes, optional gzip), a Newick file
// sink, and an optional YAML batch-run configuration loader. None of
// it is imported by matrix, clustertree, nj, rapidnj, stitchup, or
// registry — those packages never perform I/O (spec.md §5).
package decenttreeio
