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
	stdmath "math"

	"github.com/cexa-project/go-vexp/hwy"
)

// expInts pairs each float lane type with the signed integer of the same width.
type expInts interface {
	int32 | int64
}

// expTableParams holds the per-precision constants of the table-driven exp.
// One instance exists per float type; kernels only ever read it.
type expTableParams[T hwy.Floats, I expInts] struct {
	bias  I // exponent bias
	shift I // position of the exponent field

	threshold1 T // |x| beyond this saturates to +Inf or 0
	threshold2 T // |x| below this returns 1+x
	invL       T // 32/ln2
	l1, l2     T // ln2/32 = l1 + l2

	poly []T // A1, A2, ... lowest order first

	sLead  [32]T
	sTrail [32]T
}

var expTable_f32 = expTableParams[float32, int32]{
	bias:       expBias_f32,
	shift:      expShift_f32,
	threshold1: f32bits(expThreshold1Bits_f32),
	threshold2: f32bits(expThreshold2Bits_f32),
	invL:       f32bits(expInvLBits_f32),
	l1:         f32bits(expL1Bits_f32),
	l2:         f32bits(expL2Bits_f32),
	poly:       []float32{f32bits(expA1Bits_f32), f32bits(expA2Bits_f32)},
	sLead:      tableF32(expSLeadBits_f32),
	sTrail:     tableF32(expSTrailBits_f32),
}

var expTable_f64 = expTableParams[float64, int64]{
	bias:       expBias_f64,
	shift:      expShift_f64,
	threshold1: f64bits(expThreshold1Bits_f64),
	threshold2: f64bits(expThreshold2Bits_f64),
	invL:       f64bits(expInvLBits_f64),
	l1:         f64bits(expL1Bits_f64),
	l2:         f64bits(expL2Bits_f64),
	poly: []float64{
		f64bits(expA1Bits_f64),
		f64bits(expA2Bits_f64),
		f64bits(expA3Bits_f64),
		f64bits(expA4Bits_f64),
		f64bits(expA5Bits_f64),
	},
	sLead:  tableF64(expSLeadBits_f64),
	sTrail: tableF64(expSTrailBits_f64),
}

// roundFunc computes N = roundToEven(v) as an integer lane. Both
// implementations agree on every input the kernels feed them.
type roundFunc[T hwy.Floats, I expInts] func(v hwy.Vec[T]) hwy.Vec[I]

// roundConvert rounds in the float domain and converts, the way AVX-512
// does it with VRNDSCALE and VCVTPS2DQ/VCVTPD2QQ.
func roundConvert[T hwy.Floats, I expInts](v hwy.Vec[T]) hwy.Vec[I] {
	return hwy.ConvertToInt[I](hwy.RoundToEven(v))
}

// roundMagic rounds with the 1.5*2^p shifter: adding it pushes the fraction
// out of the significand, so the low bits of the sum hold N directly. AVX2
// has no packed float64 -> int64 conversion; this needs only an add and an
// integer subtract. Valid for |v| < 2^(p-1).
func roundMagic[T hwy.Floats, I expInts](v hwy.Vec[T]) hwy.Vec[I] {
	n := v.NumLanes()
	var magic T
	switch any(magic).(type) {
	case float32:
		magic = T(0x1.8p23)
	case float64:
		magic = T(0x1.8p52)
	}
	shifter := hwy.Set(n, magic)
	sum := hwy.Add(v, shifter)
	return hwy.Sub(hwy.BitCast[I](sum), hwy.BitCast[I](shifter))
}

// expSanitize replaces NaN lanes with 0 and clamps the rest to
// [-threshold1, threshold1], so that range reduction never sees a value whose
// integer conversion or shift amount is out of range. Lanes it changes are
// overwritten by the classifier afterwards.
func expSanitize[T hwy.Floats](x hwy.Vec[T], threshold1 T) hwy.Vec[T] {
	n := x.NumLanes()
	t1 := hwy.Set(n, threshold1)
	xs := hwy.IfThenElse(hwy.IsNaN(x), hwy.Zero[T](n), x)
	return hwy.Min(hwy.Max(xs, hwy.Neg(t1)), t1)
}

// expReduction is the output of range reduction: x = (32*M + N2)*ln2/32 + R1 + R2.
type expReduction[T hwy.Floats, I expInts] struct {
	m, n2  hwy.Vec[I]
	r1, r2 hwy.Vec[T]
}

// expReduce splits a sanitized x into the table index N2, the binary exponent
// M and the two-part remainder R1 + R2.
func expReduce[T hwy.Floats, I expInts](x hwy.Vec[T], p *expTableParams[T, I], round roundFunc[T, I]) expReduction[T, I] {
	n := x.NumLanes()
	l1 := hwy.Set(n, p.l1)

	bigN := round(hwy.Mul(x, hwy.Set(n, p.invL)))
	n2 := hwy.And(bigN, hwy.Set[I](n, 31))
	n1 := hwy.Sub(bigN, n2)

	fN := hwy.ConvertToFloat[T](bigN)
	fN1 := hwy.ConvertToFloat[T](n1)
	fN2 := hwy.ConvertToFloat[T](n2)

	small := hwy.MaskAnd(
		hwy.LessThan(bigN, hwy.Set[I](n, expReduceSplit)),
		hwy.GreaterThan(bigN, hwy.Set[I](n, -expReduceSplit)),
	)
	r1Small := hwy.Sub(x, hwy.Mul(fN, l1))
	r1Large := hwy.Sub(hwy.Sub(x, hwy.Mul(fN1, l1)), hwy.Mul(fN2, l1))

	return expReduction[T, I]{
		m:  hwy.ShiftRight(n1, 5),
		n2: n2,
		r1: hwy.IfThenElse(hwy.RebindMask[T](small), r1Small, r1Large),
		r2: hwy.Mul(hwy.Neg(fN), hwy.Set(n, p.l2)),
	}
}

// expPoly evaluates P ~ exp(R1+R2) - 1 with R = R1 + R2:
//
//	Q = A1 + R*(A2 + R*(...))
//	P = R1 + (R*(R*Q) + R2)
//
// Adding R1 last keeps its low bits, which carry most of the result.
func expPoly[T hwy.Floats](r1, r2 hwy.Vec[T], poly []T) hwy.Vec[T] {
	n := r1.NumLanes()
	r := hwy.Add(r1, r2)

	last := len(poly) - 1
	q := hwy.Set(n, poly[last])
	for i := last - 1; i >= 0; i-- {
		q = hwy.MulAdd(q, r, hwy.Set(n, poly[i]))
	}
	q = hwy.Mul(r, q)
	return hwy.Add(r1, hwy.MulAdd(r, q, r2))
}

// expPow2 synthesizes 2^k directly from exponent bits.
//
//   - biased exponent in [1, 2*bias]: a normal power of two.
//   - biased exponent <= 0: a subnormal, built by shifting a single 1 bit
//     into the significand; below the smallest subnormal the shift amount
//     goes negative and the result is +0.
//   - biased exponent == 2*bias+1: not representable, so the half is built
//     and twice is set; the caller doubles after multiplying.
//   - anything larger sets overflow.
func expPow2[T hwy.Floats, I expInts](k hwy.Vec[I], bias, shift I) (scale hwy.Vec[T], twice, overflow hwy.Mask[T]) {
	n := k.NumLanes()
	maxBiased := hwy.Set(n, 2*bias+1)
	shiftV := hwy.Set(n, shift)
	one := hwy.Set[I](n, 1)

	biased := hwy.Add(k, hwy.Set(n, bias))
	twiceI := hwy.Equal(biased, maxBiased)
	overflowI := hwy.GreaterThan(biased, maxBiased)
	biased = hwy.IfThenElse(twiceI, hwy.Sub(biased, one), biased)

	amount := hwy.Min(shiftV, hwy.Sub(hwy.Add(shiftV, biased), one))
	value := hwy.IfThenElse(hwy.Equal(amount, shiftV), biased, one)
	scale = hwy.BitCast[T](hwy.ShiftLeftVar(value, amount))

	return scale, hwy.RebindMask[T](twiceI), hwy.RebindMask[T](overflowI)
}

// expReconstruct computes 2^M * (S_lead + (S*P + S_trail)) with
// S = S_lead + S_trail. The returned mask flags lanes whose 2^M is too large
// to represent even with the doubling fixup.
func expReconstruct[T hwy.Floats, I expInts](red expReduction[T, I], poly hwy.Vec[T], p *expTableParams[T, I]) (hwy.Vec[T], hwy.Mask[T]) {
	n := poly.NumLanes()
	sLead := hwy.GatherIndex(p.sLead[:], red.n2)
	sTrail := hwy.GatherIndex(p.sTrail[:], red.n2)
	s := hwy.Add(sLead, sTrail)
	p2 := hwy.Add(sLead, hwy.MulAdd(s, poly, sTrail))

	scale, twice, overflow := expPow2[T](red.m, p.bias, p.shift)
	result := hwy.Mul(scale, p2)
	result = hwy.IfThenElse(twice, hwy.Mul(result, hwy.Set[T](n, 2)), result)
	return result, overflow
}

// expClassify blends the special cases over the computed result. Later
// blends win: tiny inputs, then overflow, then underflow, then NaN.
// tiny may be skipped by passing a zero threshold2.
func expClassify[T hwy.Floats](x, result hwy.Vec[T], overflow hwy.Mask[T], threshold1, threshold2 T) hwy.Vec[T] {
	n := x.NumLanes()
	t1 := hwy.Set(n, threshold1)

	tiny := hwy.LessThan(hwy.Abs(x), hwy.Set(n, threshold2))
	result = hwy.IfThenElse(tiny, hwy.Add(hwy.Set[T](n, 1), x), result)

	toInf := hwy.MaskOr(hwy.MaskOr(hwy.GreaterThan(x, t1), hwy.IsInf(x, 1)), overflow)
	result = hwy.IfThenElse(toInf, hwy.Set(n, T(stdmath.Inf(1))), result)

	toZero := hwy.MaskOr(hwy.LessThan(x, hwy.Neg(t1)), hwy.IsInf(x, -1))
	result = hwy.IfThenElse(toZero, hwy.Zero[T](n), result)

	return hwy.IfThenElse(hwy.IsNaN(x), x, result)
}

// expTable is the table-driven exponential shared by every width and target:
// sanitize, reduce, approximate, reconstruct, classify. It allocates nothing
// and has no data-dependent branches.
func expTable[T hwy.Floats, I expInts](x hwy.Vec[T], p *expTableParams[T, I], round roundFunc[T, I]) hwy.Vec[T] {
	xs := expSanitize(x, p.threshold1)
	red := expReduce(xs, p, round)
	poly := expPoly(red.r1, red.r2, p.poly)
	result, overflow := expReconstruct(red, poly, p)
	return expClassify(x, result, overflow, p.threshold1, p.threshold2)
}

// BaseExpVec computes e^x for a single vector of any supported lane count,
// returning the result. This is the register-level building block for
// zero-allocation composition.
//
// Algorithm (table-driven, after Tang):
//  1. Range reduction: x = (32*M + j)*ln2/32 + r, |r| <= ln2/64
//  2. Polynomial approximation: e^r - 1 ~ r + A1*r^2 + A2*r^3 + ...
//  3. Reconstruction: e^x = 2^M * 2^(j/32) * e^r with 2^(j/32) read from a
//     lead/trail table and 2^M built from exponent bits
func BaseExpVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	switch v := any(x).(type) {
	case hwy.Vec[float32]:
		return any(expTable(v, &expTable_f32, roundConvert[float32, int32])).(hwy.Vec[T])
	case hwy.Vec[float64]:
		return any(expTable(v, &expTable_f64, roundConvert[float64, int64])).(hwy.Vec[T])
	}
	panic("unreachable")
}
