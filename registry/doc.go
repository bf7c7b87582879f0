// Package registry is the named-algorithm directory and single public
// entry point spec.md §6 describes: List returns the registered
// (name, description) pairs and Build dispatches a named algorithm
// against a distance matrix, returning its Newick rendition.
//
// Grounded directly on original_source/stitchup.cpp's
// addStitchupTreeBuilders(Registry&), which populates one Registry from
// (name, description, constructor) triples contributed by each
// algorithm family. Here each algorithm subpackage (nj, rapidnj,
// stitchup) self-registers from its own init() via Register, so this
// package never imports them — avoiding the import cycle a direct
// dependency would create, the same way database/sql drivers
// self-register without database/sql importing any of them.
package registry
