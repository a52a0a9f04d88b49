// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ulp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cexa-project/go-vexp/hwy/contrib/workerpool"
)

// ErrEmptyRange is returned when a scan range contains no inputs.
var ErrEmptyRange = errors.New("ulp: empty scan range")

// HistogramBuckets is the number of histogram buckets in Stats. Bucket i
// counts results exactly i ULP away for i < HistogramBuckets-1; the last
// bucket collects everything further.
const HistogramBuckets = 10

// batchSize is the number of inputs a worker evaluates per pool batch.
const batchSize = 1 << 16

// Range selects input bit patterns From, From+Step, ... below To.
// A zero Step means 1.
type Range struct {
	From, To uint64
	Step     uint64
}

// Full32 covers every float32 bit pattern.
var Full32 = Range{From: 0, To: 1 << 32, Step: 1}

func (r Range) step() uint64 {
	return max(r.Step, 1)
}

// Count is the number of inputs in the range.
func (r Range) Count() uint64 {
	if r.To <= r.From {
		return 0
	}
	return (r.To-r.From-1)/r.step() + 1
}

// Stats accumulates ULP distances between a kernel and the reference.
type Stats struct {
	Count uint64
	// Max is the largest distance seen and MaxAt the input bit pattern that
	// produced it. Ties keep the lowest bit pattern.
	Max       uint64
	MaxAt     uint64
	Sum       float64
	Histogram [HistogramBuckets]uint64
}

// Mean is the average distance, or 0 for empty stats.
func (s Stats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Add records the distance for input bit pattern at.
func (s *Stats) Add(at, d uint64) {
	if s.Count == 0 || d > s.Max || (d == s.Max && at < s.MaxAt) {
		s.Max, s.MaxAt = d, at
	}
	s.Count++
	s.Sum += float64(d)
	s.Histogram[min(d, HistogramBuckets-1)]++
}

// Merge folds o into s.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 || o.Max > s.Max || (o.Max == s.Max && o.MaxAt < s.MaxAt) {
		s.Max, s.MaxAt = o.Max, o.MaxAt
	}
	s.Count += o.Count
	s.Sum += o.Sum
	for i, n := range o.Histogram {
		s.Histogram[i] += n
	}
}

// Scan32 evaluates kernel on every float32 bit pattern in r and compares
// each result with Exp32(x). The kernel must write
// len(in) results to out. Work is split in batches across pool; a canceled
// ctx stops the scan and returns its error along with the partial stats.
func Scan32(ctx context.Context, pool *workerpool.Pool, kernel func(in, out []float32), r Range) (Stats, error) {
	if r.To > 1<<32 {
		return Stats{}, fmt.Errorf("ulp: float32 range end %#x exceeds 32 bits", r.To)
	}
	return scan(ctx, pool, r, func(bits []uint64, st *Stats, in, out []float32) {
		for i, b := range bits {
			in[i] = math.Float32frombits(uint32(b))
		}
		kernel(in, out)
		for i, x := range in {
			st.Add(bits[i], Distance32(out[i], Exp32(x)))
		}
	})
}

// Scan64 evaluates kernel on every float64 bit pattern in r and compares
// each result with the platform-independent Exp64.
func Scan64(ctx context.Context, pool *workerpool.Pool, kernel func(in, out []float64), r Range) (Stats, error) {
	return scan(ctx, pool, r, func(bits []uint64, st *Stats, in, out []float64) {
		for i, b := range bits {
			in[i] = math.Float64frombits(b)
		}
		kernel(in, out)
		for i, x := range in {
			st.Add(bits[i], Distance64(out[i], Exp64(x)))
		}
	})
}

type scanBuffers[T float32 | float64] struct {
	bits    []uint64
	in, out []T
}

func scan[T float32 | float64](ctx context.Context, pool *workerpool.Pool, r Range,
	eval func(bits []uint64, st *Stats, in, out []T)) (Stats, error) {
	n := r.Count()
	if n == 0 {
		return Stats{}, fmt.Errorf("%w: [%#x, %#x)", ErrEmptyRange, r.From, r.To)
	}
	step := r.step()

	buffers := sync.Pool{New: func() any {
		return &scanBuffers[T]{
			bits: make([]uint64, batchSize),
			in:   make([]T, batchSize),
			out:  make([]T, batchSize),
		}
	}}

	var mu sync.Mutex
	var total Stats
	err := pool.ParallelForBatched(ctx, n, batchSize, func(start, end uint64) {
		buf := buffers.Get().(*scanBuffers[T])
		defer buffers.Put(buf)

		m := int(end - start)
		bits := buf.bits[:m]
		for i := range bits {
			bits[i] = r.From + (start+uint64(i))*step
		}

		var st Stats
		eval(bits, &st, buf.in[:m], buf.out[:m])

		mu.Lock()
		total.Merge(st)
		mu.Unlock()
	})
	return total, err
}
