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

package hwy

// Fixed-shape vector types. These mirror the register shapes of the x86
// targets: the width is part of the type, so a kernel taking Float32x8 can
// never be handed a vector of the wrong lane count.

// Float32x4 is four float32 lanes (128 bits).
type Float32x4 [4]float32

// Float32x8 is eight float32 lanes (256 bits).
type Float32x8 [8]float32

// Float32x16 is sixteen float32 lanes (512 bits).
type Float32x16 [16]float32

// Float64x4 is four float64 lanes (256 bits).
type Float64x4 [4]float64

// Float64x8 is eight float64 lanes (512 bits).
type Float64x8 [8]float64

// Vec returns v as a generic vector.
func (v Float32x4) Vec() Vec[float32] { return Load(v[:], 4) }

// Vec returns v as a generic vector.
func (v Float32x8) Vec() Vec[float32] { return Load(v[:], 8) }

// Vec returns v as a generic vector.
func (v Float32x16) Vec() Vec[float32] { return Load(v[:], 16) }

// Vec returns v as a generic vector.
func (v Float64x4) Vec() Vec[float64] { return Load(v[:], 4) }

// Vec returns v as a generic vector.
func (v Float64x8) Vec() Vec[float64] { return Load(v[:], 8) }

// AsFloat32x4 copies a 4-lane vector into its fixed-shape form.
func AsFloat32x4(v Vec[float32]) (out Float32x4) {
	sameLanes(v.n, 4)
	copy(out[:], v.data[:4])
	return out
}

// AsFloat32x8 copies an 8-lane vector into its fixed-shape form.
func AsFloat32x8(v Vec[float32]) (out Float32x8) {
	sameLanes(v.n, 8)
	copy(out[:], v.data[:8])
	return out
}

// AsFloat32x16 copies a 16-lane vector into its fixed-shape form.
func AsFloat32x16(v Vec[float32]) (out Float32x16) {
	sameLanes(v.n, 16)
	copy(out[:], v.data[:16])
	return out
}

// AsFloat64x4 copies a 4-lane vector into its fixed-shape form.
func AsFloat64x4(v Vec[float64]) (out Float64x4) {
	sameLanes(v.n, 4)
	copy(out[:], v.data[:4])
	return out
}

// AsFloat64x8 copies an 8-lane vector into its fixed-shape form.
func AsFloat64x8(v Vec[float64]) (out Float64x8) {
	sameLanes(v.n, 8)
	copy(out[:], v.data[:8])
	return out
}
