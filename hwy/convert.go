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

// This file provides rounding, numeric conversion and bit reinterpretation.

// RoundToEven rounds each lane to the nearest integer, ties to even.
// Infinities and NaN pass through unchanged.
func RoundToEven[T Floats](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = T(math.RoundToEven(float64(v.data[i])))
	}
	return r
}

// Floor rounds each lane down (toward negative infinity).
func Floor[T Floats](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = T(math.Floor(float64(v.data[i])))
	}
	return r
}

// ConvertToInt converts each float lane to a signed integer, truncating
// toward zero. NaN and out-of-range lanes produce the most negative
// integer, the x86 "integer indefinite" value, instead of Go's
// implementation-defined conversion result.
func ConvertToInt[I int32 | int64, T Floats](v Vec[T]) Vec[I] {
	var zero I
	bits := int(unsafe.Sizeof(zero)) * 8
	lo := -math.Ldexp(1, bits-1)
	hi := math.Ldexp(1, bits-1)
	indefinite := I(-1) << (bits - 1)

	r := Vec[I]{n: v.n}
	for i := 0; i < v.n; i++ {
		f := math.Trunc(float64(v.data[i]))
		if f >= lo && f < hi {
			r.data[i] = I(f)
		} else {
			r.data[i] = indefinite
		}
	}
	return r
}

// ConvertToFloat converts each signed integer lane to T, rounding to nearest.
func ConvertToFloat[T Floats, I int32 | int64](v Vec[I]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = T(v.data[i])
	}
	return r
}

// BitCast reinterprets the bits of every lane as a lane of type To.
// From and To must have the same size; this is a bitwise reinterpretation,
// not a numeric conversion, so NaN payloads survive a round trip.
func BitCast[To, From Lanes](v Vec[From]) Vec[To] {
	var to To
	var from From
	if unsafe.Sizeof(to) != unsafe.Sizeof(from) {
		panic("hwy: BitCast between lanes of different sizes")
	}
	r := Vec[To]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = *(*To)(unsafe.Pointer(&v.data[i]))
	}
	return r
}
