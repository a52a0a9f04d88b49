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

package ulp

import (
	"math"
	"math/big"
)

// Working precision of Exp64. The squaring steps cost refSquarings bits, so
// the result still carries well over 100 correct bits before the final
// rounding to float64.
const (
	refPrec      = 160
	refSquarings = 8
	refTerms     = 14
)

var ln2Ref = computeLn2(refPrec + 64)

// computeLn2 sums ln 2 = 2*atanh(1/3) = sum 2 / ((2n+1) * 3^(2n+1)).
func computeLn2(prec uint) *big.Float {
	newF := func() *big.Float { return new(big.Float).SetPrec(prec) }
	third := newF().Quo(newF().SetInt64(1), newF().SetInt64(3))
	ninth := newF().Mul(third, third)

	sum, power, term := newF(), newF().Set(third), newF()
	for n := 0; n <= int(prec)/3; n++ {
		term.Quo(power, newF().SetInt64(int64(2*n+1)))
		sum.Add(sum, term)
		power.Mul(power, ninth)
	}
	return sum.Mul(sum, newF().SetInt64(2))
}

// Exp64 returns e^x correctly rounded to float64 (outside rare hard cases
// closer to a rounding boundary than 2^-100 relative). It does not depend
// on the platform's math.Exp, which on amd64 overflows early near 709.78.
// Subnormal and overflowing results round the way a correctly rounded exp
// does.
func Exp64(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 710:
		return math.Inf(1)
	case x < -746:
		return 0
	case math.Abs(x) < 0x1p-60:
		// e^x lies within 2^-59 of 1, under half an ULP on either side.
		return 1
	}

	// x = k*ln2 + r, |r| <= ln2/2
	k := math.Round(x / math.Ln2)
	r := new(big.Float).SetPrec(refPrec).SetFloat64(x)
	kln2 := new(big.Float).SetPrec(refPrec).SetFloat64(k)
	r.Sub(r, kln2.Mul(kln2, ln2Ref))

	// e^r = (e^(r/2^s))^(2^s), with e^(r/2^s) from its Taylor series.
	r.SetMantExp(r, -refSquarings)
	sum := new(big.Float).SetPrec(refPrec).SetInt64(1)
	term := new(big.Float).SetPrec(refPrec).SetInt64(1)
	for n := int64(1); n <= refTerms; n++ {
		term.Mul(term, r)
		term.Quo(term, new(big.Float).SetInt64(n))
		sum.Add(sum, term)
	}
	for range refSquarings {
		sum.Mul(sum, sum)
	}

	f, _ := sum.SetMantExp(sum, int(k)).Float64()
	return f
}

// Exp32 returns e^x rounded to float32. float64 carries 29 extra bits, so
// the double rounding through math.Exp is exact except in hard cases.
func Exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}
