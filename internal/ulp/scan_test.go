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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cexa-project/go-vexp/hwy/contrib/workerpool"
)

func exact32(in, out []float32) {
	for i, x := range in {
		out[i] = Exp32(x)
	}
}

func exact64(in, out []float64) {
	for i, x := range in {
		out[i] = Exp64(x)
	}
}

func newPool(t *testing.T) *workerpool.Pool {
	pool := workerpool.New(4)
	t.Cleanup(pool.Close)
	return pool
}

func TestRangeCount(t *testing.T) {
	assert.Equal(t, uint64(1)<<32, Full32.Count())
	assert.Equal(t, uint64(0), Range{From: 5, To: 5}.Count())
	assert.Equal(t, uint64(0), Range{From: 6, To: 5}.Count())
	assert.Equal(t, uint64(4), Range{From: 0, To: 10, Step: 3}.Count())
	assert.Equal(t, uint64(10), Range{From: 0, To: 10}.Count())
}

func TestScan32Exact(t *testing.T) {
	// 1.0 through 2.0 in steps of 64 ULP.
	r := Range{From: 0x3f800000, To: 0x40000001, Step: 64}
	st, err := Scan32(context.Background(), newPool(t), exact32, r)
	require.NoError(t, err)
	assert.Equal(t, r.Count(), st.Count)
	assert.Equal(t, uint64(0), st.Max)
	assert.Equal(t, uint64(0x3f800000), st.MaxAt)
	assert.Equal(t, 0.0, st.Mean())
	assert.Equal(t, st.Count, st.Histogram[0])
}

func TestScan32OffByOne(t *testing.T) {
	// Every other input is one ULP high; batches span several workers.
	bumped := func(in, out []float32) {
		exact32(in, out)
		for i, x := range in {
			if math.Float32bits(x)%2 == 1 {
				out[i] = math.Nextafter32(out[i], float32(math.Inf(1)))
			}
		}
	}
	r := Range{From: 0xc0000000, To: 0xc0000000 + 3*batchSize + 17}
	st, err := Scan32(context.Background(), newPool(t), bumped, r)
	require.NoError(t, err)
	assert.Equal(t, r.Count(), st.Count)
	assert.Equal(t, uint64(1), st.Max)
	assert.Equal(t, uint64(0xc0000001), st.MaxAt)
	assert.Equal(t, st.Count/2, st.Histogram[1])
	assert.Equal(t, st.Count-st.Count/2, st.Histogram[0])
	assert.InDelta(t, 0.5, st.Mean(), 1e-3)
}

func TestScan32Specials(t *testing.T) {
	// Positive infinity and the first NaN patterns.
	st, err := Scan32(context.Background(), newPool(t), exact32, Range{From: 0x7f800000, To: 0x7f800010})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), st.Max)

	broken := func(in, out []float32) {
		for i := range in {
			out[i] = 1
		}
	}
	st, err = Scan32(context.Background(), newPool(t), broken, Range{From: 0x7f800000, To: 0x7f800002})
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), st.Max)
	assert.Equal(t, uint64(0x7f800001), st.MaxAt)
	assert.Equal(t, uint64(2), st.Histogram[HistogramBuckets-1])
}

func TestScan32RangeErrors(t *testing.T) {
	_, err := Scan32(context.Background(), newPool(t), exact32, Range{From: 10, To: 10})
	require.ErrorIs(t, err, ErrEmptyRange)

	_, err = Scan32(context.Background(), newPool(t), exact32, Range{From: 0, To: 1<<32 + 1})
	require.Error(t, err)
}

func TestScan32Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := Scan32(ctx, newPool(t), exact32, Full32)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, st.Count, Full32.Count())
}

func TestScan64(t *testing.T) {
	r := Range{From: math.Float64bits(-700), To: math.Float64bits(-700) + 5000, Step: 7}
	st, err := Scan64(context.Background(), newPool(t), exact64, r)
	require.NoError(t, err)
	assert.Equal(t, r.Count(), st.Count)
	assert.Equal(t, uint64(0), st.Max)

	_, err = Scan64(context.Background(), newPool(t), exact64, Range{})
	require.ErrorIs(t, err, ErrEmptyRange)
}

func TestStatsMerge(t *testing.T) {
	var a, b Stats
	a.Add(10, 1)
	a.Add(11, 3)
	b.Add(5, 3)
	b.Add(6, 0)

	var total Stats
	total.Merge(Stats{})
	total.Merge(a)
	total.Merge(b)

	assert.Equal(t, uint64(4), total.Count)
	assert.Equal(t, uint64(3), total.Max)
	assert.Equal(t, uint64(5), total.MaxAt, "ties keep the lowest input")
	assert.Equal(t, 7.0, total.Sum)
	assert.Equal(t, 1.75, total.Mean())
	assert.Equal(t, [HistogramBuckets]uint64{0: 1, 1: 1, 3: 2}, total.Histogram)
}

func BenchmarkScan32(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	r := Range{From: 0x3f800000, To: 0x3f800000 + 1<<20}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Scan32(context.Background(), pool, exact32, r)
	}
}
