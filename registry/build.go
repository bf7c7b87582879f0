package registry

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/caseysm/decenttree/internal/dmerrors"
)

// Build dispatches the named algorithm against names/distances and
// returns its Newick rendition (spec.md §6). Input preconditions
// (names.len() >= 3, uniqueness, distances.len() == names.len()^2,
// finite and non-negative entries) are validated here, once, before any
// algorithm-specific code runs, so every registered Builder can assume
// a well-formed matrix.
func Build(ctx context.Context, algorithm string, names []string, distances []float64, opts ...BuildOption) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.precision < 1 {
		return "", dmerrors.Newf(dmerrors.InputShape, "precision must be >= 1, got %d", cfg.precision)
	}

	if err := validateInput(names, distances); err != nil {
		return "", err
	}

	e, ok := lookup(algorithm)
	if !ok {
		return "", dmerrors.Newf(dmerrors.UnknownAlgorithm, "algorithm %q is not registered", algorithm)
	}

	logger := log.Logger
	if cfg.verbosity <= 0 {
		logger = logger.Level(zerolog.Disabled)
	}
	start := time.Now()
	logger.Info().Str("algorithm", algorithm).Int("taxa", len(names)).Msg("build starting")

	tree, err := e.builder.Build(ctx, names, distances, cfg.threads, cfg.rooted)
	if err != nil {
		logger.Error().Err(err).Str("algorithm", algorithm).Msg("build failed")

		return "", err
	}
	logger.Info().Str("algorithm", algorithm).Dur("elapsed", time.Since(start)).Msg("build finished")

	if cfg.subtreeOnly {
		return tree.NewickSubtree(cfg.precision)
	}

	return tree.Newick(cfg.precision)
}

// validateInput enforces spec.md §6's input preconditions: at least
// three uniquely-named taxa, a square distances slice of the right
// length, and finite, non-negative entries (the diagonal is ignored, as
// spec.md directs).
func validateInput(names []string, distances []float64) error {
	n := len(names)
	if n < 3 {
		return dmerrors.Newf(dmerrors.InputShape, "need at least 3 taxa, got %d", n)
	}

	seen := make(map[string]bool, n)
	for _, name := range names {
		if seen[name] {
			return dmerrors.Newf(dmerrors.InputShape, "duplicate taxon name %q", name)
		}
		seen[name] = true
	}

	if len(distances) != n*n {
		return dmerrors.Newf(dmerrors.InputShape, "distances length %d, want %d (%d^2)", len(distances), n*n, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue // diagonal ignored even if non-zero, per spec.md §6
			}
			v := distances[i*n+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return dmerrors.Newf(dmerrors.InputShape, "distance (%d,%d) is not finite", i, j)
			}
			if v < 0 {
				return dmerrors.Newf(dmerrors.InputShape, "distance (%d,%d) is negative", i, j)
			}
		}
	}

	return nil
}
