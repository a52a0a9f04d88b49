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

// 512-bit instantiations. AVX-512DQ converts packed float64 to int64
// directly, so N is rounded in the float domain and converted
// (roundConvert). The 8-lane float32 shape is the 256-bit half register.

// Exp_AVX512_F32x8 computes e^x for a single Float32x8 vector.
func Exp_AVX512_F32x8(x hwy.Float32x8) hwy.Float32x8 {
	return hwy.AsFloat32x8(expTable(x.Vec(), &expTable_f32, roundConvert[float32, int32]))
}

// Exp_AVX512_F32x16 computes e^x for a single Float32x16 vector.
func Exp_AVX512_F32x16(x hwy.Float32x16) hwy.Float32x16 {
	return hwy.AsFloat32x16(expTable(x.Vec(), &expTable_f32, roundConvert[float32, int32]))
}

// Exp_AVX512_F64x8 computes e^x for a single Float64x8 vector.
func Exp_AVX512_F64x8(x hwy.Float64x8) hwy.Float64x8 {
	return hwy.AsFloat64x8(expTable(x.Vec(), &expTable_f64, roundConvert[float64, int64]))
}

// ExpTaylor_AVX512_F32x8 computes e^x for a Float32x8 vector with the
// Taylor-series variant.
func ExpTaylor_AVX512_F32x8(x hwy.Float32x8) hwy.Float32x8 {
	return hwy.AsFloat32x8(expTaylor(x.Vec(), expTaylor_f32))
}

// ExpTaylor_AVX512_F32x16 computes e^x for a Float32x16 vector with the
// Taylor-series variant.
func ExpTaylor_AVX512_F32x16(x hwy.Float32x16) hwy.Float32x16 {
	return hwy.AsFloat32x16(expTaylor(x.Vec(), expTaylor_f32))
}

// ExpTaylor_AVX512_F64x8 computes e^x for a Float64x8 vector with the
// Taylor-series variant.
func ExpTaylor_AVX512_F64x8(x hwy.Float64x8) hwy.Float64x8 {
	return hwy.AsFloat64x8(expTaylor(x.Vec(), expTaylor_f64))
}
