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

// Exp computes e^x for each lane of v.
//
// The kernel is the table-driven instantiation matching v's lane count and
// the current dispatch level. When the level is AVX-512 and no 512-bit
// shape matches, the 256-bit one is tried; lane counts with no
// instantiation at all run the same pipeline through BaseExpVec.
func Exp[T hwy.Floats](v hwy.Vec[T]) hwy.Vec[T] {
	return expDispatch(hwy.CurrentLevel(), AlgoTable, v)
}

// ExpTaylor computes e^x for each lane of v with the Taylor-series kernels,
// selected the same way as Exp.
func ExpTaylor[T hwy.Floats](v hwy.Vec[T]) hwy.Vec[T] {
	return expDispatch(hwy.CurrentLevel(), AlgoTaylor, v)
}

func precisionOf[T hwy.Floats]() Precision {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return F32
	}
	return F64
}

// lookupKernel finds the registry index for a shape, preferring level and
// falling back to the 256-bit kernels.
func lookupKernel(level hwy.DispatchLevel, algo Algo, precision Precision, lanes int) (int, bool) {
	if level == hwy.DispatchAVX512 {
		if i, ok := byKey[variantKey{algo, hwy.DispatchAVX512, precision, lanes}]; ok {
			return i, true
		}
	}
	i, ok := byKey[variantKey{algo, hwy.DispatchAVX2, precision, lanes}]
	return i, ok
}

func expDispatch[T hwy.Floats](level hwy.DispatchLevel, algo Algo, v hwy.Vec[T]) hwy.Vec[T] {
	i, ok := lookupKernel(level, algo, precisionOf[T](), v.NumLanes())
	if !ok {
		if algo == AlgoTaylor {
			return BaseExpTaylorVec(v)
		}
		return BaseExpVec(v)
	}
	switch x := any(v).(type) {
	case hwy.Vec[float32]:
		return any(registry[i].Kernel32(x)).(hwy.Vec[T])
	case hwy.Vec[float64]:
		return any(registry[i].Kernel64(x)).(hwy.Vec[T])
	}
	panic("unreachable")
}
