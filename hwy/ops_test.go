package hwy

import (
	"math"
	"testing"
)

func TestLoad(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	v := Load(data, 8)

	if v.NumLanes() != 8 {
		t.Fatalf("Load: got %d lanes, want 8", v.NumLanes())
	}
	for i := 0; i < v.NumLanes(); i++ {
		if v.data[i] != data[i] {
			t.Errorf("Load: lane %d: got %v, want %v", i, v.data[i], data[i])
		}
	}
}

func TestLoadShortSource(t *testing.T) {
	v := Load([]float64{1, 2}, 4)
	want := []float64{1, 2, 0, 0}
	for i, w := range want {
		if v.Lane(i) != w {
			t.Errorf("Load: lane %d: got %v, want %v", i, v.Lane(i), w)
		}
	}
}

func TestLoadLaneCountPanics(t *testing.T) {
	for _, n := range []int{0, -1, MaxVecLanes + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Load with %d lanes did not panic", n)
				}
			}()
			Load([]float32{1}, n)
		}()
	}
}

func TestStore(t *testing.T) {
	v := Iota[int32](4)
	dst := make([]int32, 6)
	Store(v, dst)
	want := []int32{0, 1, 2, 3, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("Store: index %d: got %v, want %v", i, dst[i], want[i])
		}
	}

	short := make([]int32, 2)
	v.Store(short)
	if short[0] != 0 || short[1] != 1 {
		t.Errorf("Store into short slice: got %v", short)
	}
}

func TestSet(t *testing.T) {
	v := Set[float32](16, 42.0)

	if v.NumLanes() != 16 {
		t.Fatalf("Set: got %d lanes, want 16", v.NumLanes())
	}
	for i := 0; i < v.NumLanes(); i++ {
		if v.data[i] != 42.0 {
			t.Errorf("Set: lane %d: got %v, want %v", i, v.data[i], 42.0)
		}
	}
}

func TestZero(t *testing.T) {
	v := Zero[int64](8)
	for i := 0; i < v.NumLanes(); i++ {
		if v.data[i] != 0 {
			t.Errorf("Zero: lane %d: got %v, want 0", i, v.data[i])
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := Set[float32](4, 10.0)
	b := Set[float32](4, 4.0)

	tests := []struct {
		name string
		got  Vec[float32]
		want float32
	}{
		{"Add", Add(a, b), 14},
		{"Sub", Sub(a, b), 6},
		{"Mul", Mul(a, b), 40},
		{"Neg", Neg(a), -10},
		{"Min", Min(a, b), 4},
		{"Max", Max(a, b), 10},
		{"MulAdd", MulAdd(a, b, b), 44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.got.NumLanes(); i++ {
				if tt.got.data[i] != tt.want {
					t.Errorf("%s: lane %d: got %v, want %v", tt.name, i, tt.got.data[i], tt.want)
				}
			}
		})
	}
}

func TestMismatchedLanesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add with mismatched lane counts did not panic")
		}
	}()
	Add(Zero[float32](4), Zero[float32](8))
}

func TestMulAddIsFused(t *testing.T) {
	// (1+2^-30)^2 - 1 loses the 2^-60 term unless the multiply-add is fused.
	x := 1 + math.Ldexp(1, -30)
	a := Set[float64](4, x)
	c := Set[float64](4, -1)

	fused := MulAdd(a, a, c).Lane(0)
	want := math.Ldexp(1, -29) + math.Ldexp(1, -60)
	if fused != want {
		t.Errorf("MulAdd: got %v, want %v", fused, want)
	}
	unfused := Add(Mul(a, a), c).Lane(0)
	if unfused == want {
		t.Errorf("Mul+Add unexpectedly kept the low-order term")
	}
}

func TestAbs(t *testing.T) {
	v := Load([]float64{-1.5, 2, math.Inf(-1), math.Copysign(0, -1)}, 4)
	got := Abs(v)
	want := []float64{1.5, 2, math.Inf(1), 0}
	for i, w := range want {
		if got.Lane(i) != w || math.Signbit(got.Lane(i)) {
			t.Errorf("Abs: lane %d: got %v, want %v", i, got.Lane(i), w)
		}
	}
	if !math.IsNaN(Abs(Set(4, math.NaN())).Lane(0)) {
		t.Error("Abs(NaN) is not NaN")
	}
}

func TestComparisons(t *testing.T) {
	nan := float32(math.NaN())
	a := Load([]float32{1, 2, 3, nan}, 4)
	b := Load([]float32{2, 2, 2, 2}, 4)

	check := func(name string, m Mask[float32], want []bool) {
		t.Helper()
		for i, w := range want {
			if m.GetBit(i) != w {
				t.Errorf("%s: lane %d: got %v, want %v", name, i, m.GetBit(i), w)
			}
		}
	}
	check("Equal", Equal(a, b), []bool{false, true, false, false})
	check("LessThan", LessThan(a, b), []bool{true, false, false, false})
	check("GreaterThan", GreaterThan(a, b), []bool{false, false, true, false})
	check("GreaterEqual", GreaterEqual(a, b), []bool{false, true, true, false})
	check("IsNaN", IsNaN(a), []bool{false, false, false, true})
}

func TestIsInf(t *testing.T) {
	v := Load([]float64{math.Inf(1), math.Inf(-1), 1, math.NaN()}, 4)
	tests := []struct {
		sign int
		want []bool
	}{
		{1, []bool{true, false, false, false}},
		{-1, []bool{false, true, false, false}},
		{0, []bool{true, true, false, false}},
	}
	for _, tt := range tests {
		m := IsInf(v, tt.sign)
		for i, w := range tt.want {
			if m.GetBit(i) != w {
				t.Errorf("IsInf(sign=%d): lane %d: got %v, want %v", tt.sign, i, m.GetBit(i), w)
			}
		}
	}
}

func TestMaskAlgebra(t *testing.T) {
	v := Iota[int32](8)
	low := LessThan(v, Set[int32](8, 4))
	even := Equal(And(v, Set[int32](8, 1)), Zero[int32](8))

	if got := MaskAnd(low, even).CountTrue(); got != 2 {
		t.Errorf("MaskAnd: got %d active lanes, want 2", got)
	}
	if got := MaskOr(low, even).CountTrue(); got != 6 {
		t.Errorf("MaskOr: got %d active lanes, want 6", got)
	}
	if got := MaskNot(low).CountTrue(); got != 4 {
		t.Errorf("MaskNot: got %d active lanes, want 4", got)
	}
	if !MaskOr(low, MaskNot(low)).AllTrue() {
		t.Error("m | !m is not all true")
	}
	if MaskAnd(low, MaskNot(low)).AnyTrue() {
		t.Error("m & !m has active lanes")
	}
	if low.GetBit(-1) || low.GetBit(8) {
		t.Error("GetBit out of range reported an active lane")
	}
}

func TestIfThenElse(t *testing.T) {
	a := Set[float32](4, 1)
	b := Set[float32](4, 2)
	m := LessThan(Iota[float32](4), Set[float32](4, 2))
	got := IfThenElse(m, a, b)
	want := []float32{1, 1, 2, 2}
	for i, w := range want {
		if got.Lane(i) != w {
			t.Errorf("IfThenElse: lane %d: got %v, want %v", i, got.Lane(i), w)
		}
	}
}

func TestRebindMask(t *testing.T) {
	ints := Load([]int32{0, 5, 0, 7}, 4)
	m := RebindMask[float32](GreaterThan(ints, Zero[int32](4)))
	got := IfThenElse(m, Set[float32](4, 1), Zero[float32](4))
	want := []float32{0, 1, 0, 1}
	for i, w := range want {
		if got.Lane(i) != w {
			t.Errorf("RebindMask: lane %d: got %v, want %v", i, got.Lane(i), w)
		}
	}
}

func TestShifts(t *testing.T) {
	v := Load([]int32{1, -8, 3, 1 << 20}, 4)

	left := ShiftLeft(v, 2)
	right := ShiftRight(v, 2)
	wantLeft := []int32{4, -32, 12, 1 << 22}
	wantRight := []int32{0, -2, 0, 1 << 18}
	for i := range wantLeft {
		if left.Lane(i) != wantLeft[i] {
			t.Errorf("ShiftLeft: lane %d: got %v, want %v", i, left.Lane(i), wantLeft[i])
		}
		if right.Lane(i) != wantRight[i] {
			t.Errorf("ShiftRight: lane %d: got %v, want %v", i, right.Lane(i), wantRight[i])
		}
	}
}

func TestShiftLeftVar(t *testing.T) {
	v := Set[int64](8, 1)
	amounts := Load([]int64{0, 1, 52, 63, 64, 100, -1, -64}, 8)
	got := ShiftLeftVar(v, amounts)
	want := []int64{1, 2, 1 << 52, math.MinInt64, 0, 0, 0, 0}
	for i, w := range want {
		if got.Lane(i) != w {
			t.Errorf("ShiftLeftVar: lane %d (amount %d): got %v, want %v", i, amounts.Lane(i), got.Lane(i), w)
		}
	}

	got32 := ShiftLeftVar(Set[int32](4, 3), Load([]int32{23, 31, 32, -5}, 4))
	want32 := []int32{3 << 23, math.MinInt32, 0, 0}
	for i, w := range want32 {
		if got32.Lane(i) != w {
			t.Errorf("ShiftLeftVar int32: lane %d: got %v, want %v", i, got32.Lane(i), w)
		}
	}
}

func TestDataIsCopy(t *testing.T) {
	v := Set[float32](4, 1)
	d := v.Data()
	d[0] = 99
	if v.Lane(0) != 1 {
		t.Error("mutating Data() changed the vector")
	}
	if len(d) != 4 {
		t.Errorf("Data: got %d elements, want 4", len(d))
	}
}

func TestFixedShapes(t *testing.T) {
	in := Float32x8{1, 2, 3, 4, 5, 6, 7, 8}
	back := AsFloat32x8(Mul(in.Vec(), Set[float32](8, 2)))
	for i := range in {
		if back[i] != 2*in[i] {
			t.Errorf("Float32x8 round trip: lane %d: got %v, want %v", i, back[i], 2*in[i])
		}
	}

	d := Float64x4{1, 2, 3, 4}
	if got := AsFloat64x4(d.Vec()); got != d {
		t.Errorf("Float64x4 round trip: got %v, want %v", got, d)
	}

	defer func() {
		if recover() == nil {
			t.Error("AsFloat32x16 accepted an 8-lane vector")
		}
	}()
	AsFloat32x16(in.Vec())
}

func TestTags(t *testing.T) {
	if got := (FixedTag128[float32]{}).MaxLanes(); got != 4 {
		t.Errorf("FixedTag128[float32].MaxLanes() = %d, want 4", got)
	}
	if got := (FixedTag256[float64]{}).MaxLanes(); got != 4 {
		t.Errorf("FixedTag256[float64].MaxLanes() = %d, want 4", got)
	}
	if got := (FixedTag512[float32]{}).MaxLanes(); got != 16 {
		t.Errorf("FixedTag512[float32].MaxLanes() = %d, want 16", got)
	}
	if got := (FixedTag512[int8]{}).MaxLanes(); got != MaxVecLanes {
		t.Errorf("FixedTag512[int8].MaxLanes() = %d, want %d", got, MaxVecLanes)
	}
	if got, want := (ScalableTag[float32]{}).MaxLanes(), CurrentWidth()/4; got != want {
		t.Errorf("ScalableTag[float32].MaxLanes() = %d, want %d", got, want)
	}
}

func BenchmarkMulAdd(b *testing.B) {
	x := Set[float32](8, 1.5)
	y := Set[float32](8, 2.5)
	z := Set[float32](8, 0.5)
	for i := 0; i < b.N; i++ {
		z = MulAdd(x, y, z)
	}
	_ = z
}
