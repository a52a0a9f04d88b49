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

import (
	"math"
	"unsafe"
)

// This file provides the pure Go implementations of the lane-wise operations.
// Every operation is total: there are no data-dependent branches that can
// panic, and binary operations require both operands to have the same lane
// count. Floating-point results are explicitly converted to T after every
// arithmetic step so that the compiler never fuses a multiply and an add
// behind our back; MulAdd is the only fused operation.

// Load creates an n-lane vector from the first n elements of src.
// Lanes beyond len(src) are zero.
func Load[T Lanes](src []T, n int) Vec[T] {
	checkLanes(n)
	v := Vec[T]{n: n}
	copy(v.data[:n], src)
	return v
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	v.Store(dst)
}

// Set creates an n-lane vector with all lanes set to the same value.
func Set[T Lanes](n int, value T) Vec[T] {
	checkLanes(n)
	v := Vec[T]{n: n}
	for i := 0; i < n; i++ {
		v.data[i] = value
	}
	return v
}

// Zero creates an n-lane vector with all lanes set to zero.
func Zero[T Lanes](n int) Vec[T] {
	checkLanes(n)
	return Vec[T]{n: n}
}

// Iota returns an n-lane vector holding 0, 1, 2, ...
func Iota[T Lanes](n int) Vec[T] {
	checkLanes(n)
	v := Vec[T]{n: n}
	for i := 0; i < n; i++ {
		v.data[i] = T(i)
	}
	return v
}

// Add performs element-wise addition.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		r.data[i] = T(a.data[i] + b.data[i])
	}
	return r
}

// Sub performs element-wise subtraction.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		r.data[i] = T(a.data[i] - b.data[i])
	}
	return r
}

// Mul performs element-wise multiplication.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		r.data[i] = T(a.data[i] * b.data[i])
	}
	return r
}

// MulAdd computes a*b + c with a single rounding per lane.
// For float32 the product is exact in float64, so the fused float64 result
// rounded to float32 matches the hardware FMA except for rare double-rounding
// ties.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	sameLanes(a.n, c.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		r.data[i] = T(math.FMA(float64(a.data[i]), float64(b.data[i]), float64(c.data[i])))
	}
	return r
}

// Neg negates each lane.
func Neg[T Lanes](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = -v.data[i]
	}
	return r
}

// Abs returns the absolute value of each lane. NaN lanes stay NaN.
func Abs[T Floats](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = T(math.Abs(float64(v.data[i])))
	}
	return r
}

// Min returns the lane-wise minimum. If either lane is NaN the result is b's lane,
// matching the x86 MINPS operand order.
func Min[T Lanes](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		if a.data[i] < b.data[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// Max returns the lane-wise maximum. If either lane is NaN the result is b's lane.
func Max[T Lanes](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		if a.data[i] > b.data[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// Equal returns a mask of lanes where a == b. NaN lanes compare false.
func Equal[T Lanes](a, b Vec[T]) Mask[T] {
	sameLanes(a.n, b.n)
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.data[i] == b.data[i]
	}
	return m
}

// LessThan returns a mask of lanes where a < b.
func LessThan[T Lanes](a, b Vec[T]) Mask[T] {
	sameLanes(a.n, b.n)
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.data[i] < b.data[i]
	}
	return m
}

// GreaterThan returns a mask of lanes where a > b.
func GreaterThan[T Lanes](a, b Vec[T]) Mask[T] {
	sameLanes(a.n, b.n)
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.data[i] > b.data[i]
	}
	return m
}

// GreaterEqual returns a mask of lanes where a >= b.
func GreaterEqual[T Lanes](a, b Vec[T]) Mask[T] {
	sameLanes(a.n, b.n)
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.data[i] >= b.data[i]
	}
	return m
}

// IsNaN returns a mask of lanes holding NaN.
func IsNaN[T Floats](v Vec[T]) Mask[T] {
	m := Mask[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		m.bits[i] = v.data[i] != v.data[i]
	}
	return m
}

// IsInf returns a mask of infinite lanes.
// sign > 0 selects +Inf, sign < 0 selects -Inf, sign == 0 selects both.
func IsInf[T Floats](v Vec[T], sign int) Mask[T] {
	m := Mask[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		m.bits[i] = math.IsInf(float64(v.data[i]), sign)
	}
	return m
}

// MaskAnd returns the lane-wise conjunction of two masks.
func MaskAnd[T Lanes](a, b Mask[T]) Mask[T] {
	sameLanes(a.n, b.n)
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.bits[i] && b.bits[i]
	}
	return m
}

// MaskOr returns the lane-wise disjunction of two masks.
func MaskOr[T Lanes](a, b Mask[T]) Mask[T] {
	sameLanes(a.n, b.n)
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.bits[i] || b.bits[i]
	}
	return m
}

// MaskNot inverts every lane of the mask.
func MaskNot[T Lanes](a Mask[T]) Mask[T] {
	m := Mask[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		m.bits[i] = !a.bits[i]
	}
	return m
}

// RebindMask reinterprets a mask for a lane type of the same lane count,
// e.g. the result of an int32 comparison used to select float32 lanes.
func RebindMask[To, From Lanes](m Mask[From]) Mask[To] {
	return Mask[To]{n: m.n, bits: m.bits}
}

// IfThenElse selects a's lane where mask is set and b's lane elsewhere.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	sameLanes(a.n, mask.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		if mask.bits[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// And performs a lane-wise bitwise AND.
func And[T Integers](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		r.data[i] = a.data[i] & b.data[i]
	}
	return r
}

// Or performs a lane-wise bitwise OR.
func Or[T Integers](a, b Vec[T]) Vec[T] {
	sameLanes(a.n, b.n)
	r := Vec[T]{n: a.n}
	for i := 0; i < a.n; i++ {
		r.data[i] = a.data[i] | b.data[i]
	}
	return r
}

// ShiftLeft shifts every lane left by a constant number of bits.
func ShiftLeft[T Integers](v Vec[T], bits int) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = v.data[i] << bits
	}
	return r
}

// ShiftRight shifts every lane right by a constant number of bits.
// Signed lanes shift arithmetically.
func ShiftRight[T Integers](v Vec[T], bits int) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = v.data[i] >> bits
	}
	return r
}

// ShiftLeftVar shifts each lane of v left by the matching lane of amounts.
// Amounts that are negative or not smaller than the lane width produce 0,
// matching VPSLLVD/VPSLLVQ.
func ShiftLeftVar[T Integers](v, amounts Vec[T]) Vec[T] {
	sameLanes(v.n, amounts.n)
	var zero T
	width := uint64(unsafe.Sizeof(zero)) * 8
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		s := uint64(amounts.data[i])
		if amounts.data[i] < 0 || s >= width {
			continue
		}
		r.data[i] = v.data[i] << s
	}
	return r
}
