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

package algo

import (
	"github.com/cexa-project/go-vexp/hwy"
	"github.com/cexa-project/go-vexp/hwy/contrib/math"
	"github.com/cexa-project/go-vexp/hwy/contrib/workerpool"
)

// ExpTransform applies exp(x) to each element using the widest vectors of
// the current dispatch level.
func ExpTransform[T hwy.Floats](in, out []T) {
	Apply(in, out, hwy.ScalableTag[T]{}.MaxLanes(), math.Exp[T])
}

// ExpTaylorTransform applies exp(x) with the Taylor-series kernels.
func ExpTaylorTransform[T hwy.Floats](in, out []T) {
	Apply(in, out, hwy.ScalableTag[T]{}.MaxLanes(), math.ExpTaylor[T])
}

// ParallelExpTransform runs ExpTransform over contiguous chunks of in on
// the pool's workers. Chunks are rounded to whole vectors so only the final
// chunk has a partial tail.
func ParallelExpTransform[T hwy.Floats](pool *workerpool.Pool, in, out []T) {
	n := min(len(in), len(out))
	lanes := hwy.ScalableTag[T]{}.MaxLanes()
	vectors := (n + lanes - 1) / lanes

	pool.ParallelFor(vectors, func(start, end int) {
		lo, hi := start*lanes, min(end*lanes, n)
		ExpTransform(in[lo:hi], out[lo:hi])
	})
}
