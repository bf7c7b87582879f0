// Package decenttree builds phylogenetic trees from pairwise distance
// matrices over N taxa (N >= 3), selecting among a registry of named
// agglomeration algorithms and emitting Newick.
//
// decenttree brings together:
//   - A dense distance-matrix substrate with O(1) row access and O(rank)
//     swap-with-last compaction (matrix)
//   - An append-only cluster forest with Newick emission (clustertree)
//   - A shared agglomeration join loop parameterized by a Criterion —
//     UPGMA, Neighbor-Joining, BIONJ, and UNJ all ride the same driver
//     (nj)
//   - RapidNJ's sorted-row acceleration, in both standard and
//     auction-ordered visiting modes (rapidnj)
//   - STITCHUP's heap-and-union-find staple-and-contract engine, and its
//     NTCJ variant (stitchup)
//   - A named-algorithm registry tying every engine together behind one
//     list/build surface (registry)
//
// Everything is organized under one subpackage per concern:
//
//	matrix/         — SquareMatrix substrate (rows, totals, compaction)
//	clustertree/    — cluster forest + Newick emission
//	nj/             — shared join-loop driver + UPGMA/NJ/BIONJ/UNJ
//	rapidnj/        — RapidNJ sorted-row acceleration, Auction mode
//	stitchup/       — STITCHUP / NTCJ heap + union-find engine
//	registry/       — named-algorithm directory (List/Build)
//	decenttreeio/   — distance-file and Newick-file I/O, gzip, YAML batch config
//	cmd/decenttree/ — CLI entry point
//
// The join loop itself never performs I/O or logs (decenttreeio and
// registry's verbosity-gated logging sit outside it); cancellation is
// cooperative via context.Context, polled between joins.
//
//	go get github.com/caseysm/decenttree
package decenttree
