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

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/cexa-project/go-vexp/hwy"
)

// ErrUnsupportedShape is returned when no kernel exists for the requested
// algorithm, target, precision and lane count.
var ErrUnsupportedShape = errors.New("math: unsupported exp kernel shape")

// ErrUnknownVariant is returned by LookupVariant for names not in the registry.
var ErrUnknownVariant = errors.New("math: unknown exp kernel variant")

// Algo selects the exp algorithm.
type Algo string

const (
	// AlgoTable is the table-driven kernel (primary, <= 2 ULP).
	AlgoTable Algo = "table"
	// AlgoTaylor is the Taylor-series kernel (cross-check, <= 8 ULP).
	AlgoTaylor Algo = "taylor"
)

// Precision names a lane type.
type Precision string

// Supported precisions.
const (
	F32 Precision = "f32"
	F64 Precision = "f64"
)

// Variant describes one exp kernel instantiation.
//
// Exactly one of Kernel32 and Kernel64 is set, matching Precision. The
// kernel panics if handed a vector whose lane count is not Lanes.
type Variant struct {
	Name      string
	Algo      Algo
	Target    hwy.DispatchLevel
	Precision Precision
	Lanes     int

	Kernel32 func(hwy.Vec[float32]) hwy.Vec[float32]
	Kernel64 func(hwy.Vec[float64]) hwy.Vec[float64]
}

// MaxULP is the accuracy bound the variant is tested against.
func (v Variant) MaxULP() uint64 {
	if v.Algo == AlgoTaylor {
		return 8
	}
	return 2
}

func (v Variant) String() string {
	return v.Name
}

// Apply32 runs a float32 kernel over in, writing min(len(in), len(out))
// results to out. The final partial vector is zero-padded. Apply32 panics on
// a float64 variant.
func (v Variant) Apply32(in, out []float32) {
	applySlice(in, out, v.Lanes, v.Kernel32)
}

// Apply64 is the float64 counterpart of Apply32.
func (v Variant) Apply64(in, out []float64) {
	applySlice(in, out, v.Lanes, v.Kernel64)
}

func applySlice[T hwy.Floats](in, out []T, lanes int, kernel func(hwy.Vec[T]) hwy.Vec[T]) {
	n := min(len(in), len(out))
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		hwy.Store(kernel(hwy.Load(in[i:end], lanes)), out[i:end])
	}
}

type variantKey struct {
	algo      Algo
	target    hwy.DispatchLevel
	precision Precision
	lanes     int
}

var (
	registry []Variant
	byKey    map[variantKey]int
	byName   map[string]int
)

func init() {
	registry = []Variant{
		f32Variant("exp_avx2_f32x4", AlgoTable, hwy.DispatchAVX2, hwy.FixedTag128[float32]{}.MaxLanes(), adapt32x4(Exp_AVX2_F32x4)),
		f32Variant("exp_avx2_f32x8", AlgoTable, hwy.DispatchAVX2, hwy.FixedTag256[float32]{}.MaxLanes(), adapt32x8(Exp_AVX2_F32x8)),
		f64Variant("exp_avx2_f64x4", AlgoTable, hwy.DispatchAVX2, hwy.FixedTag256[float64]{}.MaxLanes(), adapt64x4(Exp_AVX2_F64x4)),
		f32Variant("exp_avx512_f32x8", AlgoTable, hwy.DispatchAVX512, hwy.FixedTag256[float32]{}.MaxLanes(), adapt32x8(Exp_AVX512_F32x8)),
		f32Variant("exp_avx512_f32x16", AlgoTable, hwy.DispatchAVX512, hwy.FixedTag512[float32]{}.MaxLanes(), adapt32x16(Exp_AVX512_F32x16)),
		f64Variant("exp_avx512_f64x8", AlgoTable, hwy.DispatchAVX512, hwy.FixedTag512[float64]{}.MaxLanes(), adapt64x8(Exp_AVX512_F64x8)),

		f32Variant("exptaylor_avx2_f32x4", AlgoTaylor, hwy.DispatchAVX2, hwy.FixedTag128[float32]{}.MaxLanes(), adapt32x4(ExpTaylor_AVX2_F32x4)),
		f32Variant("exptaylor_avx2_f32x8", AlgoTaylor, hwy.DispatchAVX2, hwy.FixedTag256[float32]{}.MaxLanes(), adapt32x8(ExpTaylor_AVX2_F32x8)),
		f64Variant("exptaylor_avx2_f64x4", AlgoTaylor, hwy.DispatchAVX2, hwy.FixedTag256[float64]{}.MaxLanes(), adapt64x4(ExpTaylor_AVX2_F64x4)),
		f32Variant("exptaylor_avx512_f32x8", AlgoTaylor, hwy.DispatchAVX512, hwy.FixedTag256[float32]{}.MaxLanes(), adapt32x8(ExpTaylor_AVX512_F32x8)),
		f32Variant("exptaylor_avx512_f32x16", AlgoTaylor, hwy.DispatchAVX512, hwy.FixedTag512[float32]{}.MaxLanes(), adapt32x16(ExpTaylor_AVX512_F32x16)),
		f64Variant("exptaylor_avx512_f64x8", AlgoTaylor, hwy.DispatchAVX512, hwy.FixedTag512[float64]{}.MaxLanes(), adapt64x8(ExpTaylor_AVX512_F64x8)),
	}

	byKey = make(map[variantKey]int, len(registry))
	byName = make(map[string]int, len(registry))
	for i, v := range registry {
		byKey[variantKey{v.Algo, v.Target, v.Precision, v.Lanes}] = i
		byName[v.Name] = i
	}
}

func f32Variant(name string, algo Algo, target hwy.DispatchLevel, lanes int, k func(hwy.Vec[float32]) hwy.Vec[float32]) Variant {
	return Variant{Name: name, Algo: algo, Target: target, Precision: F32, Lanes: lanes, Kernel32: k}
}

func f64Variant(name string, algo Algo, target hwy.DispatchLevel, lanes int, k func(hwy.Vec[float64]) hwy.Vec[float64]) Variant {
	return Variant{Name: name, Algo: algo, Target: target, Precision: F64, Lanes: lanes, Kernel64: k}
}

func adapt32x4(f func(hwy.Float32x4) hwy.Float32x4) func(hwy.Vec[float32]) hwy.Vec[float32] {
	return func(v hwy.Vec[float32]) hwy.Vec[float32] { return f(hwy.AsFloat32x4(v)).Vec() }
}

func adapt32x8(f func(hwy.Float32x8) hwy.Float32x8) func(hwy.Vec[float32]) hwy.Vec[float32] {
	return func(v hwy.Vec[float32]) hwy.Vec[float32] { return f(hwy.AsFloat32x8(v)).Vec() }
}

func adapt32x16(f func(hwy.Float32x16) hwy.Float32x16) func(hwy.Vec[float32]) hwy.Vec[float32] {
	return func(v hwy.Vec[float32]) hwy.Vec[float32] { return f(hwy.AsFloat32x16(v)).Vec() }
}

func adapt64x4(f func(hwy.Float64x4) hwy.Float64x4) func(hwy.Vec[float64]) hwy.Vec[float64] {
	return func(v hwy.Vec[float64]) hwy.Vec[float64] { return f(hwy.AsFloat64x4(v)).Vec() }
}

func adapt64x8(f func(hwy.Float64x8) hwy.Float64x8) func(hwy.Vec[float64]) hwy.Vec[float64] {
	return func(v hwy.Vec[float64]) hwy.Vec[float64] { return f(hwy.AsFloat64x8(v)).Vec() }
}

// Variants returns every registered kernel, table-driven first.
func Variants() []Variant {
	return append([]Variant(nil), registry...)
}

// FilterVariants returns the registered kernels for which keep returns true.
func FilterVariants(keep func(Variant) bool) []Variant {
	return lo.Filter(registry, func(v Variant, _ int) bool { return keep(v) })
}

// VariantNames lists the registered kernel names.
func VariantNames() []string {
	return lo.Map(registry, func(v Variant, _ int) string { return v.Name })
}

// LookupVariant returns the kernel with the given name (case-insensitive).
func LookupVariant(name string) (Variant, error) {
	i, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return registry[i], nil
}

// FindVariant returns the kernel for an algorithm, target, precision and
// lane count. The scalar target has no kernels of its own and resolves to
// the 256-bit instantiations. Shapes a target's registers cannot hold (for
// example 16 float32 lanes on AVX2) return ErrUnsupportedShape.
func FindVariant(algo Algo, target hwy.DispatchLevel, precision Precision, lanes int) (Variant, error) {
	if target == hwy.DispatchScalar {
		target = hwy.DispatchAVX2
	}
	i, ok := byKey[variantKey{algo, target, precision, lanes}]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %s %s %sx%d", ErrUnsupportedShape, algo, target, precision, lanes)
	}
	return registry[i], nil
}
