// Package stitchup implements the STITCHUP tree-building engine (spec
// §4.5): rather than repeatedly scanning a shrinking distance matrix
// for the current global minimum (§4.2's shared join loop), it
// heapifies every pairwise distance once and repeatedly staples the
// shortest remaining edge between two not-yet-connected taxa onto a
// growing forest of "caterpillar" chains, contracting the resulting
// graph's degree-2 scaffolding nodes away at the end to produce a
// proper tree.
//
// The NTCJ variant (NearestTaxonClusterJoining) replaces that stapling
// post-processing with a heap of NJ-adjusted distances and the same
// join/merge mechanics package nj uses, trading STITCHUP's O(1)
// per-step stapling for NJ's better-behaved branch lengths.
//
// Grounded directly on original_source/stitchup.cpp's StitchupGraph
// (staple/stitchLink/mergeSets/removeThroughThroughNodes) and
// NearestTaxonClusterJoiningMatrix.
package stitchup
