// Package nj implements the shared agglomerative join loop — UPGMA,
// Neighbor-Joining, BIONJ, and UNJ — as one driver parameterized by a
// Criterion (per-cell score, branch-length, and row-merge formulas),
// rather than as a chain of subclasses overriding pieces of a single
// constructTree method.
//
// This replaces the source's UPGMA_Matrix → NJMatrix → BIONJMatrix
// inheritance chain (DESIGN NOTES §9: "the source's overlapping class
// hierarchy ... should become a capability set: one core agglomeration
// driver parameterized by (score, merge_row, init, finish_three)").
// Each algorithm is a Criterion value; Run drives the shared loop
// against whichever Criterion it is given, selecting the row-minimum
// search strategy (scalar or blocked) independently of the criterion.
package nj
