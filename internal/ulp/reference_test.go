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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExp64Values(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 1},
		{"negative zero", math.Copysign(0, -1), 1},
		{"tiny", 0x1p-70, 1},
		{"one", 1, math.E},
		{"ln2", math.Ln2, 2},
		{"largest finite", 709.78, 1.7928227943945155e+308},
		{"just past overflow", 709.7828, math.Inf(1)},
		{"overflow", 710, math.Inf(1)},
		{"+Inf", math.Inf(1), math.Inf(1)},
		{"smallest subnormal", -745.13, math.SmallestNonzeroFloat64},
		{"rounds to zero", -745.14, 0},
		{"underflow", -746, 0},
		{"-Inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Exp64(tt.in)
			assert.Equal(t, math.Float64bits(tt.want), math.Float64bits(got), "Exp64(%v) = %v, want %v", tt.in, got, tt.want)
		})
	}
	assert.True(t, math.IsNaN(Exp64(math.NaN())))
}

func TestExp64NearOverflow(t *testing.T) {
	// Finite all the way to ln(MaxFloat64), where some platform math.Exp
	// implementations already return +Inf.
	for _, x := range []float64{709.44, 709.5, 709.7, 709.78, 709.7827} {
		got := Exp64(x)
		require.False(t, math.IsInf(got, 0), "Exp64(%v) = %v", x, got)
		assert.Greater(t, got, 1e308, "Exp64(%v)", x)
	}
}

func TestExp64MatchesMathExp(t *testing.T) {
	// In the normal range away from overflow math.Exp is within 1 ULP.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		x := rng.Float64()*1400 - 700
		got, want := Exp64(x), math.Exp(x)
		require.LessOrEqual(t, Distance64(got, want), uint64(1), "Exp64(%v) = %v, math.Exp = %v", x, got, want)
	}
}

func TestExp64SubnormalMonotonic(t *testing.T) {
	prev := 0.0
	for x := -745.2; x <= -708; x += 0.0137 {
		got := Exp64(x)
		require.GreaterOrEqual(t, got, prev, "Exp64(%v)", x)
		prev = got
	}
	assert.Greater(t, prev, 0.0)
}

func TestExp32(t *testing.T) {
	assert.Equal(t, float32(1), Exp32(0))
	assert.Equal(t, math.Float32frombits(1), Exp32(-103))
	assert.True(t, math.IsInf(float64(Exp32(89)), 1))
}

func BenchmarkExp64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Exp64(-700 + float64(i%1400))
	}
}
