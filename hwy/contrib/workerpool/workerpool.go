// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// splitting bulk kernel work across cores. A Pool is created once and
// reused across many operations, so repeated transforms and accuracy scans
// pay no goroutine spawn cost.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(len(in), func(start, end int) {
//	    algo.ExpTransform(in[start:end], out[start:end])
//	})
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn over [0, n) split into one contiguous chunk per
// worker. Blocks until all work completes. A closed pool runs fn(0, n)
// on the calling goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForBatched executes fn over [0, n) in batches of batchSize grabbed
// with an atomic counter, so uneven batches balance across workers. The
// range is uint64 because an exhaustive float32 scan covers 2^32 inputs.
//
// Workers stop taking new batches once ctx is done; batches already running
// finish. The context's error is returned if the range was not completed.
func (p *Pool) ParallelForBatched(ctx context.Context, n, batchSize uint64, fn func(start, end uint64)) error {
	if n == 0 {
		return ctx.Err()
	}
	if batchSize == 0 {
		batchSize = 1
	}

	numBatches := (n-1)/batchSize + 1
	var nextBatch atomic.Uint64
	var done atomic.Uint64

	run := func() {
		for ctx.Err() == nil {
			batch := nextBatch.Add(1) - 1
			if batch >= numBatches {
				return
			}
			start := batch * batchSize
			end := min(start+batchSize, n)
			fn(start, end)
			done.Add(1)
		}
	}

	workers := uint64(p.numWorkers)
	if p.closed.Load() || workers == 1 || numBatches == 1 {
		run()
	} else {
		workers = min(workers, numBatches)
		var wg sync.WaitGroup
		wg.Add(int(workers))
		for range workers {
			p.workC <- workItem{fn: run, barrier: &wg}
		}
		wg.Wait()
	}

	if done.Load() < numBatches {
		return ctx.Err()
	}
	return nil
}
