// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	assert.Equal(t, 4, pool.NumWorkers())
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	assert.Equal(t, runtime.GOMAXPROCS(0), pool.NumWorkers())
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := range n {
		require.Equal(t, i*2, results[i], "results[%d]", i)
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Fewer items than workers.
	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	assert.Equal(t, int32(n), count.Load())
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	assert.False(t, called, "ParallelFor with n=0 should not call fn")
}

func TestParallelForBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := uint64(1003)
	hits := make([]atomic.Int32, n)

	err := pool.ParallelForBatched(context.Background(), n, 10, func(start, end uint64) {
		for i := start; i < end; i++ {
			hits[i].Add(1)
		}
	})
	require.NoError(t, err)

	for i := range hits {
		require.Equal(t, int32(1), hits[i].Load(), "index %d", i)
	}
}

func TestParallelForBatchedZeroBatchSize(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	var count atomic.Uint64
	err := pool.ParallelForBatched(context.Background(), 7, 0, func(start, end uint64) {
		assert.Equal(t, start+1, end)
		count.Add(end - start)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), count.Load())
}

func TestParallelForBatchedBeyondInt32(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	// Batch arithmetic must not wrap for ranges the size of the float32
	// bit space. Only batch bounds are summed, no per-element work.
	n := uint64(1) << 32
	var covered atomic.Uint64
	var last atomic.Uint64

	err := pool.ParallelForBatched(context.Background(), n, 1<<24, func(start, end uint64) {
		covered.Add(end - start)
		if end == n {
			last.Store(start)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, n, covered.Load())
	assert.Equal(t, n-(1<<24), last.Load())
}

func TestParallelForBatchedCanceled(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	err := pool.ParallelForBatched(ctx, 1000, 1, func(start, end uint64) {
		if calls.Add(1) == 5 {
			cancel()
		}
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, calls.Load(), int32(1000))
}

func TestParallelForBatchedAlreadyCanceled(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	err := pool.ParallelForBatched(ctx, 100, 10, func(start, end uint64) {
		called.Store(true)
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Sequential fallback.
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	var sum atomic.Uint64
	err := pool.ParallelForBatched(context.Background(), uint64(n), 7, func(start, end uint64) {
		for i := start; i < end; i++ {
			sum.Add(i)
		}
	})
	require.NoError(t, err)

	for i := range n {
		require.Equal(t, i*2, results[i], "results[%d]", i)
	}
	assert.Equal(t, uint64(n*(n-1)/2), sum.Load())
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForBatched(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.ParallelForBatched(ctx, 1000, 10, func(start, end uint64) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}
