// Package workerpool dispatches embarrassingly-parallel row kernels
// across a bounded number of goroutines, standing in for the original
// implementation's OpenMP "#pragma omp parallel for schedule(dynamic)"
// directives (spec §4.3, §5). Its one caller is nj's row-minimum search;
// row-merge updates (nj's mergeRowGeneric) run sequentially and do not
// go through this package.
//
// Unlike a long-lived query-serving pool (grounded on, but deliberately
// simpler than, hupe1980-vecgo's engine/worker_pool.go persistent
// goroutine pool), the join loop only ever needs one bounded fan-out per
// kernel invocation — there is no benefit to keeping goroutines warm
// between joins — so Parallelize spins up min(Threads(), n) goroutines
// per call (none when that is 1: the work then runs on the calling
// goroutine) and waits for all of them via errgroup, which also gives
// first-error propagation for the cooperative-cancellation path.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Threads resolves a caller-supplied thread count (0 = runtime default)
// to a concrete worker count: a positive request is returned as is,
// anything else resolves to runtime.GOMAXPROCS(0).
//
// Complexity: O(1).
func Threads(requested int) int {
	if requested > 0 {
		return requested
	}

	return runtime.GOMAXPROCS(0)
}

// Parallelize dispatches fn(i) for i in [0, n) across `threads` workers
// using a dynamic (work-stealing-equivalent) chunk schedule: each worker
// repeatedly claims the next unclaimed row index until none remain. It
// blocks until every row has been processed or fn returns an error, in
// which case the first error observed is returned and remaining work is
// abandoned (ctx is cancelled).
//
// Determinism note: Parallelize only bounds *when* fn(i) runs; it never
// reorders the logical per-row results. Callers that reduce across rows
// (e.g. the join loop's row-minimum search) must combine results in a
// fixed row order after Parallelize returns so the reduction itself
// stays thread-count-independent (spec §5).
//
// Complexity: O(n/threads) wall-clock for O(1)-per-row fn; O(1) extra
// space beyond the caller-supplied fn closures.
func Parallelize(ctx context.Context, n, threads int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	threads = Threads(threads)
	if threads > n {
		threads = n
	}
	if threads <= 1 {
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := fn(i); err != nil {
				return err
			}
		}

		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	next := make(chan int, n)
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)

	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for i := range next {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				if err := fn(i); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return g.Wait()
}
