package clustertree

import "errors"

var (
	// ErrEmptyTree is returned by Newick when no clusters have been added.
	ErrEmptyTree = errors.New("clustertree: no clusters to serialize")

	// ErrInvalidPrecision is returned when Newick is asked for fewer than
	// one digit of precision (spec's fixed contract: precision ≥ 1).
	ErrInvalidPrecision = errors.New("clustertree: precision must be >= 1")

	// ErrUnknownCluster is returned when a link references a cluster id
	// that has not been added yet.
	ErrUnknownCluster = errors.New("clustertree: unknown cluster id")
)
