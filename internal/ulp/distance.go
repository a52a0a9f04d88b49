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

// Package ulp measures the distance between floating-point results in units
// in the last place and scans kernels against a correctly rounded scalar exp.
package ulp

import "math"

// Distance32 returns the number of representable float32 values between a
// and b. +0 and -0 are equal and crossing zero counts the steps on both
// sides. Two NaNs are at distance 0; a NaN and a number at MaxUint64.
func Distance32(a, b float32) uint64 {
	an, bn := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case an && bn:
		return 0
	case an || bn:
		return math.MaxUint64
	}
	return ordered(uint64(math.Float32bits(a)), uint64(math.Float32bits(b)), 1<<31)
}

// Distance64 is the float64 counterpart of Distance32.
func Distance64(a, b float64) uint64 {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an || bn:
		return math.MaxUint64
	}
	return ordered(math.Float64bits(a), math.Float64bits(b), 1<<63)
}

// ordered measures sign-magnitude bit patterns on a line through zero.
func ordered(a, b, sign uint64) uint64 {
	am, bm := a&^sign, b&^sign
	if a&sign != b&sign {
		return am + bm
	}
	if am > bm {
		return am - bm
	}
	return bm - am
}
