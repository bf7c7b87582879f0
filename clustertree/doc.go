// Package clustertree implements the append-only cluster forest every
// agglomeration engine builds bottom-up, and its serialization to
// Newick.
//
// Leaves (taxa) are appended first, in input order, as cluster 0..N−1.
// Each join appends exactly one new interior cluster linked to the two
// (or, for the terminal join, three) clusters it joins, with their
// branch lengths. Clusters are never mutated once appended and never
// removed — the forest is a DAG built bottom-up — so it is represented
// as a flat, arena-style slice addressed by integer id rather than by
// shared-ownership pointers (per the source's own design note: "use an
// arena with integer ids rather than shared-ownership references").
package clustertree
