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

package math

import "github.com/cexa-project/go-vexp/hwy"

// 256-bit instantiations. AVX2 has no packed float64 -> int64 conversion, so
// these kernels compute N with the shifter trick (roundMagic) for both
// precisions. The 4-lane float32 shape is the 128-bit half register.

// Exp_AVX2_F32x4 computes e^x for a single Float32x4 vector.
func Exp_AVX2_F32x4(x hwy.Float32x4) hwy.Float32x4 {
	return hwy.AsFloat32x4(expTable(x.Vec(), &expTable_f32, roundMagic[float32, int32]))
}

// Exp_AVX2_F32x8 computes e^x for a single Float32x8 vector.
//
// Algorithm:
//  1. N = round(x * 32/ln2), split into 32*M + j
//  2. e^r - 1 by a degree-2 polynomial in r = x - N*ln2/32
//  3. 2^M * (S_lead[j] + (S[j]*p + S_trail[j]))
func Exp_AVX2_F32x8(x hwy.Float32x8) hwy.Float32x8 {
	return hwy.AsFloat32x8(expTable(x.Vec(), &expTable_f32, roundMagic[float32, int32]))
}

// Exp_AVX2_F64x4 computes e^x for a single Float64x4 vector with a
// degree-5 polynomial.
func Exp_AVX2_F64x4(x hwy.Float64x4) hwy.Float64x4 {
	return hwy.AsFloat64x4(expTable(x.Vec(), &expTable_f64, roundMagic[float64, int64]))
}

// ExpTaylor_AVX2_F32x4 computes e^x for a Float32x4 vector with the
// Taylor-series variant.
func ExpTaylor_AVX2_F32x4(x hwy.Float32x4) hwy.Float32x4 {
	return hwy.AsFloat32x4(expTaylor(x.Vec(), expTaylor_f32))
}

// ExpTaylor_AVX2_F32x8 computes e^x for a Float32x8 vector with the
// Taylor-series variant.
func ExpTaylor_AVX2_F32x8(x hwy.Float32x8) hwy.Float32x8 {
	return hwy.AsFloat32x8(expTaylor(x.Vec(), expTaylor_f32))
}

// ExpTaylor_AVX2_F64x4 computes e^x for a Float64x4 vector with the
// Taylor-series variant.
func ExpTaylor_AVX2_F64x4(x hwy.Float64x4) hwy.Float64x4 {
	return hwy.AsFloat64x4(expTaylor(x.Vec(), expTaylor_f64))
}
