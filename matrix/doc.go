// Package matrix implements the dense, row-compacting square-matrix
// substrate shared by the matrix-driven agglomeration engines (UPGMA,
// NJ/BIONJ/UNJ, RapidNJ, NTCJ): a symmetric N×N buffer of distances, a
// maintained vector of row totals, and an O(N) "remove row/column by
// swap-with-last" operation that lets the active rank shrink from N down
// to 3 without ever reallocating. STITCHUP does not use it; it works on
// its own stitch graph.
//
// Rows are exposed as owned, independently addressable slices (rather
// than one flat buffer) so that removing a row is a matter of exchanging
// two slice headers, never of copying cells — see SquareMatrix.RemoveRowAndColumn.
// Each row is padded past the active rank with a +Inf sentinel so that a
// block-wise minimum scan reading past the active rank could never select
// a padding cell. The nj package's vectorized row-minimum search does not
// rely on this: it reads only active columns and scans its tail scalarly.
package matrix
