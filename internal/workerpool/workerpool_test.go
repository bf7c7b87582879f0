package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadsResolvesExplicitRequest(t *testing.T) {
	assert.Equal(t, 4, Threads(4))
}

func TestThreadsFallsBackToGOMAXPROCS(t *testing.T) {
	assert.Equal(t, runtime.GOMAXPROCS(0), Threads(0))
}

func TestParallelizeVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 97
	var mu sync.Mutex
	seen := make(map[int]int, n)

	err := Parallelize(context.Background(), n, 8, func(i int) error {
		mu.Lock()
		seen[i]++
		mu.Unlock()

		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1, seen[i], "index %d visited %d times", i, seen[i])
	}
}

func TestParallelizeSingleThreadIsSequential(t *testing.T) {
	var order []int
	err := Parallelize(context.Background(), 5, 1, func(i int) error {
		order = append(order, i)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestParallelizeZeroWorkIsNoop(t *testing.T) {
	called := false
	err := Parallelize(context.Background(), 0, 4, func(i int) error {
		called = true

		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestParallelizePropagatesFirstError(t *testing.T) {
	sentinel := errors.New("boom")
	err := Parallelize(context.Background(), 20, 4, func(i int) error {
		if i == 7 {
			return sentinel
		}

		return nil
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestParallelizeRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var started int32

	err := Parallelize(ctx, 1000, 4, func(i int) error {
		if atomic.AddInt32(&started, 1) == 1 {
			cancel()
		}

		return nil
	})
	assert.Error(t, err)
}

func TestParallelizeCapsThreadsAtN(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}
	err := Parallelize(context.Background(), 3, 64, func(i int) error {
		mu.Lock()
		seen[i] = true
		mu.Unlock()

		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 3)
}
