// Package rapidnj accelerates an nj.Criterion with a per-row sorted
// candidate list and a global best-score cutoff (spec §4.4), instead of
// scanning every active cell of every row on every join. Rows are kept
// sorted by raw distance; because NJ's and BIONJ's Score share the same
// Q(i,j) = d(i,j) - (T(i)+T(j))/(N'-2) shape and are therefore monotone
// in distance for a fixed pair of row totals, a row can be abandoned
// early once its best remaining candidate cannot beat the global
// cutoff, regardless of which of the two criteria is configured
// ("NJ-R"/"AUCTION" vs. "BIONJ-R" in the registry).
//
// The Auction variant (spec §4.4 "processes rows in an order that
// visits the currently most promising rows first") visits rows ordered
// by their own cheapest available candidate, so the global cutoff
// tightens sooner and later rows abandon after fewer comparisons.
package rapidnj
