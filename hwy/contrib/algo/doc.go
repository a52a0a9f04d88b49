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

// Package algo provides bulk slice transforms built on the vector exp
// kernels. This package corresponds to Google Highway's hwy/contrib/algo
// directory.
//
// # Transform API
//
// The transforms apply a kernel to entire slices without allocating,
// similar to C++ Highway's std::transform:
//
//   - Apply[T](in, out, lanes, fn) runs any Vec[T] -> Vec[T] function
//   - ExpTransform[T](in, out) computes e^x with the table-driven kernel
//   - ExpTaylorTransform[T](in, out) uses the Taylor-series kernel
//   - ParallelExpTransform[T](pool, in, out) splits ExpTransform across a
//     workerpool.Pool
//
// Only min(len(in), len(out)) elements are processed. The last partial
// vector is loaded zero-padded and only its live lanes are stored, so there
// is no scalar tail loop.
//
// # Example Usage
//
//	import "github.com/cexa-project/go-vexp/hwy/contrib/algo"
//
//	func Softmax(logits []float32) []float32 {
//	    out := make([]float32, len(logits))
//	    algo.ExpTransform(logits, out)
//	    var sum float32
//	    for _, e := range out {
//	        sum += e
//	    }
//	    for i := range out {
//	        out[i] /= sum
//	    }
//	    return out
//	}
package algo
