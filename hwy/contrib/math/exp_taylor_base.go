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

// expTaylorParams holds the constants of the Taylor-series exponential.
type expTaylorParams[T hwy.Floats, I expInts] struct {
	bias, shift I
	threshold1  T
	invLn2      T
	ln2Hi       T
	ln2Lo       T
	coeffs      [len(taylorCoeffs)]T
}

func newTaylorParams[T hwy.Floats, I expInts](bias, shift I, threshold1, invLn2, ln2Hi, ln2Lo T) *expTaylorParams[T, I] {
	p := &expTaylorParams[T, I]{
		bias:       bias,
		shift:      shift,
		threshold1: threshold1,
		invLn2:     invLn2,
		ln2Hi:      ln2Hi,
		ln2Lo:      ln2Lo,
	}
	for i, c := range taylorCoeffs {
		p.coeffs[i] = T(c)
	}
	return p
}

var (
	expTaylor_f32 = newTaylorParams[float32, int32](expBias_f32, expShift_f32,
		f32bits(expThreshold1Bits_f32), expInvLn2_f32, expLn2Hi_f32, expLn2Lo_f32)
	expTaylor_f64 = newTaylorParams[float64, int64](expBias_f64, expShift_f64,
		f64bits(expThreshold1Bits_f64), expInvLn2_f64, expLn2Hi_f64, expLn2Lo_f64)
)

// expTaylor computes e^x as 2^k * e^r with a degree-13 Taylor polynomial for
// e^r. It is less accurate than expTable and kept as an independent
// cross-check; it shares the 2^k synthesis and the special-value blend.
//
//	k = floor(x/ln2 + 1/2)
//	r = x - k*ln2Hi - k*ln2Lo
//	e^r = 1 + r*(1 + r*(1/2 + r*(1/6 + ...)))
func expTaylor[T hwy.Floats, I expInts](x hwy.Vec[T], p *expTaylorParams[T, I]) hwy.Vec[T] {
	n := x.NumLanes()
	xs := expSanitize(x, p.threshold1)

	kf := hwy.Floor(hwy.MulAdd(xs, hwy.Set(n, p.invLn2), hwy.Set[T](n, 0.5)))
	r := hwy.MulAdd(kf, hwy.Set(n, -p.ln2Hi), xs)
	r = hwy.MulAdd(kf, hwy.Set(n, -p.ln2Lo), r)

	last := len(p.coeffs) - 1
	poly := hwy.Set(n, p.coeffs[last])
	for i := last - 1; i >= 0; i-- {
		poly = hwy.MulAdd(poly, r, hwy.Set(n, p.coeffs[i]))
	}
	poly = hwy.MulAdd(poly, r, hwy.Set[T](n, 1))

	scale, twice, overflow := expPow2[T](hwy.ConvertToInt[I](kf), p.bias, p.shift)
	result := hwy.Mul(scale, poly)
	result = hwy.IfThenElse(twice, hwy.Mul(result, hwy.Set[T](n, 2)), result)

	return expClassify(x, result, overflow, p.threshold1, 0)
}

// BaseExpTaylorVec computes e^x for a single vector with the Taylor-series
// variant.
func BaseExpTaylorVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	switch v := any(x).(type) {
	case hwy.Vec[float32]:
		return any(expTaylor(v, expTaylor_f32)).(hwy.Vec[T])
	case hwy.Vec[float64]:
		return any(expTaylor(v, expTaylor_f64)).(hwy.Vec[T])
	}
	panic("unreachable")
}
