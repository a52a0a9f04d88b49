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

import "github.com/cexa-project/go-vexp/hwy"

// Apply transforms in to out using fn on vectors of the given lane count.
// Tail elements are handled with a zero-padded load, so fn always sees a
// full vector.
//
// Example usage:
//
//	Apply(input, output, 8, math.BaseExpVec[float32])
func Apply[T hwy.Floats](in, out []T, lanes int, fn func(hwy.Vec[T]) hwy.Vec[T]) {
	n := min(len(in), len(out))
	i := 0

	// Process full vectors
	for ; i+lanes <= n; i += lanes {
		hwy.Store(fn(hwy.Load(in[i:], lanes)), out[i:])
	}

	// Load zero-fills the missing lanes and Store stops at len(dst).
	if i < n {
		hwy.Store(fn(hwy.Load(in[i:n], lanes)), out[i:n])
	}
}
