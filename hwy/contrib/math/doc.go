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

// Package math provides vectorized exponential kernels.
// This package corresponds to Google Highway's hwy/contrib/math directory,
// narrowed to exp.
//
// # Low-Level Functions
//
// Fixed-shape kernels for library authors composing their own operations.
// Every kernel is a pure function: no allocation, no locks, no panics, for
// every input bit pattern.
//
// 256-bit target (AVX2):
//   - Exp_AVX2_F32x4(x Float32x4) Float32x4
//   - Exp_AVX2_F32x8(x Float32x8) Float32x8
//   - Exp_AVX2_F64x4(x Float64x4) Float64x4
//
// 512-bit target (AVX-512):
//   - Exp_AVX512_F32x8(x Float32x8) Float32x8
//   - Exp_AVX512_F32x16(x Float32x16) Float32x16
//   - Exp_AVX512_F64x8(x Float64x8) Float64x8
//
// Each has an ExpTaylor_* counterpart computed with a Taylor series instead
// of the lead/trail table.
//
// # Generic Functions
//
//   - Exp[T](v Vec[T]) Vec[T] picks the kernel for v's lane count and the
//     current dispatch level
//   - BaseExpVec[T](v Vec[T]) Vec[T] runs the table-driven pipeline at any
//     lane count
//   - Variants, LookupVariant and FindVariant enumerate the instantiations
//
// # Accuracy
//
// Table-driven kernels are within 2 ULP of the correctly rounded result
// over the whole float32 range and sampled float64 ranges; the Taylor
// kernels within 8 ULP. Special values:
//   - exp(NaN) = NaN with the payload preserved
//   - exp(+Inf) = +Inf, exp(-Inf) = +0
//   - exp(x) = 1+x for |x| below 2^-25 (float32) or 2^-54 (float64)
//   - results past the largest finite value are +Inf, below the smallest
//     subnormal +0
//
// # Example Usage
//
//	import (
//	    "github.com/cexa-project/go-vexp/hwy"
//	    "github.com/cexa-project/go-vexp/hwy/contrib/math"
//	)
//
//	func ExpTimesX(x hwy.Float32x8) hwy.Float32x8 {
//	    e := math.Exp_AVX2_F32x8(x)
//	    return hwy.AsFloat32x8(hwy.Mul(e.Vec(), x.Vec()))
//	}
package math
