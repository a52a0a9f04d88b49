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

import stdmath "math"

// =============================================================================
// Constants for the table-driven exponential
// =============================================================================
//
// Every constant is stored as its exact IEEE-754 bit pattern so that no
// decimal round trip can perturb the last bit. N = round(x * 32/ln2) is split
// as N = 32*M + j; L1 + L2 is ln2/32 with L1 short enough that N*L1 is exact
// for |N| < 512, and S_lead[j] + S_trail[j] is 2^(j/32) to well beyond
// working precision, with S_lead carrying only the leading bits.

// Float32 constants for Exp
const (
	expBias_f32  int32 = 127
	expShift_f32 int32 = 23

	expThreshold1Bits_f32 uint32 = 0x435C6BBA // |x| above this saturates
	expThreshold2Bits_f32 uint32 = 0x33000000 // 2^-25: exp(x) rounds to 1+x below this
	expInvLBits_f32       uint32 = 0x4238AA3B // 32/ln2
	expL1Bits_f32         uint32 = 0x3CB17200
	expL2Bits_f32         uint32 = 0x333FBE8E
	expA1Bits_f32         uint32 = 0x3F000044
	expA2Bits_f32         uint32 = 0x3E2AAAEC
)

// Float64 constants for Exp
const (
	expBias_f64  int64 = 1023
	expShift_f64 int64 = 52

	expThreshold1Bits_f64 uint64 = 0x409C4474E1726455
	expThreshold2Bits_f64 uint64 = 0x3C90000000000000 // 2^-54
	expInvLBits_f64       uint64 = 0x40471547652B82FE
	expL1Bits_f64         uint64 = 0x3F962E42FEF00000
	expL2Bits_f64         uint64 = 0x3D8473DE6AF278ED
	expA1Bits_f64         uint64 = 0x3FE0000000000000
	expA2Bits_f64         uint64 = 0x3FC5555555548F7C
	expA3Bits_f64         uint64 = 0x3FA5555555545D4E
	expA4Bits_f64         uint64 = 0x3F811115B7AA905E
	expA5Bits_f64         uint64 = 0x3F56C1728D739765
)

// expReduceSplit is the |N| at which N*L1 stops being exact and the
// reduction switches to the two-step (N1, N2) form.
const expReduceSplit = 512

var expSLeadBits_f32 = [32]uint32{
	0x3F800000, 0x3F82CD80, 0x3F85AAC0, 0x3F889800,
	0x3F8B95C0, 0x3F8EA400, 0x3F91C3C0, 0x3F94F4C0,
	0x3F9837C0, 0x3F9B8D00, 0x3F9EF500, 0x3FA27040,
	0x3FA5FEC0, 0x3FA9A140, 0x3FAD5800, 0x3FB123C0,
	0x3FB504C0, 0x3FB8FB80, 0x3FBD0880, 0x3FC12C40,
	0x3FC56700, 0x3FC9B980, 0x3FCE2480, 0x3FD2A800,
	0x3FD744C0, 0x3FDBFB80, 0x3FE0CCC0, 0x3FE5B900,
	0x3FEAC0C0, 0x3FEFE480, 0x3FF52540, 0x3FFA8380,
}

var expSTrailBits_f32 = [32]uint32{
	0x00000000, 0x35531585, 0x34D9F312, 0x35E8092E,
	0x3471F546, 0x36E62D17, 0x361B9D59, 0x36BEA3FC,
	0x36C14637, 0x36E6E755, 0x36C98247, 0x34C0C312,
	0x36354D8B, 0x3655A754, 0x36FBA90B, 0x36D6074B,
	0x36CCCFE7, 0x36BD1D8C, 0x368E7D60, 0x35CCA667,
	0x36A84554, 0x36F619B9, 0x35C151F8, 0x366C8F89,
	0x36F32B5A, 0x36DE5F6C, 0x36776155, 0x355CEF90,
	0x355CFBA5, 0x36E66F73, 0x36F45492, 0x36CB6DC9,
}

var expSLeadBits_f64 = [32]uint64{
	0x3FF0000000000000, 0x3FF059B0D3158540,
	0x3FF0B5586CF98900, 0x3FF11301D0125B40,
	0x3FF172B83C7D5140, 0x3FF1D4873168B980,
	0x3FF2387A6E756200, 0x3FF29E9DF51FDEC0,
	0x3FF306FE0A31B700, 0x3FF371A7373AA9C0,
	0x3FF3DEA64C123400, 0x3FF44E0860618900,
	0x3FF4BFDAD5362A00, 0x3FF5342B569D4F80,
	0x3FF5AB07DD485400, 0x3FF6247EB03A5580,
	0x3FF6A09E667F3BC0, 0x3FF71F75E8EC5F40,
	0x3FF7A11473EB0180, 0x3FF82589994CCE00,
	0x3FF8ACE5422AA0C0, 0x3FF93737B0CDC5C0,
	0x3FF9C49182A3F080, 0x3FFA5503B23E2540,
	0x3FFAE89F995AD380, 0x3FFB7F76F2FB5E40,
	0x3FFC199BDD855280, 0x3FFCB720DCEF9040,
	0x3FFD5818DCFBA480, 0x3FFDFC97337B9B40,
	0x3FFEA4AFA2A490C0, 0x3FFF50765B6E4540,
}

var expSTrailBits_f64 = [32]uint64{
	0x0000000000000000, 0x3D0A1D73E2A475B4,
	0x3CEEC5317256E308, 0x3CF0A4EBBF1AED93,
	0x3D0D6E6FBE462876, 0x3D053C02DC0144C8,
	0x3D0C3360FD6D8E0B, 0x3D009612E8AFAD12,
	0x3CF52DE8D5A46306, 0x3CE54E28AA05E8A9,
	0x3D011ADA0911F09F, 0x3D068189B7A04EF8,
	0x3D038EA1CBD7F621, 0x3CBDF0A83C49D86A,
	0x3D04AC64980A8C8F, 0x3CD2C7C3E81BF4B7,
	0x3CE921165F626CDD, 0x3D09EE91B8797785,
	0x3CDB5F54408FDB37, 0x3CF28ACF88AFAB35,
	0x3CFB5BA7C55A192D, 0x3D027A280E1F92A0,
	0x3CF01C7C46B071F3, 0x3CFC8B424491CAF8,
	0x3D06AF439A68BB99, 0x3CDBAA9EC206AD4F,
	0x3CFC2220CB12A092, 0x3D048A81E5E8F4A5,
	0x3CDC976816BAD9B8, 0x3CFEB968CAC39ED3,
	0x3CF9858F73A18F5E, 0x3C99D3E12DD8A18B,
}

// Constants for the Taylor-series exponential. ln2 is split Cody-Waite style;
// k*ln2Hi is exact for every k the clamped input can produce.
var (
	expLn2Hi_f32  float32 = 0.693359375
	expLn2Lo_f32  float32 = -2.12194440e-4
	expInvLn2_f32 float32 = 1.44269504088896341

	expLn2Hi_f64  float64 = 0.6931471803691238
	expLn2Lo_f64  float64 = 1.9082149292705877e-10
	expInvLn2_f64 float64 = 1.4426950408889634
)

// taylorCoeffs holds 1/n! for n = 1..13, highest order last.
var taylorCoeffs = [13]float64{
	1.0,
	1.0 / 2,
	1.0 / 6,
	1.0 / 24,
	1.0 / 120,
	1.0 / 720,
	1.0 / 5040,
	1.0 / 40320,
	1.0 / 362880,
	1.0 / 3628800,
	1.0 / 39916800,
	1.0 / 479001600,
	1.0 / 6227020800,
}

func f32bits(b uint32) float32 { return stdmath.Float32frombits(b) }

func f64bits(b uint64) float64 { return stdmath.Float64frombits(b) }

func tableF32(bits [32]uint32) (t [32]float32) {
	for i, b := range bits {
		t[i] = f32bits(b)
	}
	return t
}

func tableF64(bits [32]uint64) (t [32]float64) {
	for i, b := range bits {
		t[i] = f64bits(b)
	}
	return t
}
