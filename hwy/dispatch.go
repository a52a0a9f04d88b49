package hwy

import (
	"os"
	"strconv"
	"strings"
	"unsafe"
)

// DispatchLevel represents the instruction-set generation kernels are picked for.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD detection; 256-bit shaped kernels are used.
	DispatchScalar DispatchLevel = iota

	// DispatchAVX2 indicates AVX2 with FMA (256-bit registers).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512F/DQ (512-bit registers).
	DispatchAVX512
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// ParseDispatchLevel maps a target name ("scalar", "avx2", "avx512") to its level.
func ParseDispatchLevel(name string) (DispatchLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "scalar":
		return DispatchScalar, true
	case "avx2":
		return DispatchAVX2, true
	case "avx512", "avx-512":
		return DispatchAVX512, true
	}
	return DispatchScalar, false
}

// currentLevel is the detected level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the register width in bytes for the current level.
var currentWidth int

// CurrentLevel returns the instruction-set generation being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the register width in bytes.
// 32 for AVX2 and the scalar level, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current target.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, the scalar level is used regardless of CPU capabilities.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// TargetEnv returns the level named by HWY_TARGET, if any.
// It caps the detected level; it never enables instructions the CPU lacks.
func TargetEnv() (DispatchLevel, bool) {
	val := os.Getenv("HWY_TARGET")
	if val == "" {
		return DispatchScalar, false
	}
	return ParseDispatchLevel(val)
}

// setLevel applies the detected level, honoring HWY_NO_SIMD and HWY_TARGET.
func setLevel(detected DispatchLevel) {
	if NoSimdEnv() {
		detected = DispatchScalar
	}
	if capped, ok := TargetEnv(); ok && capped < detected {
		detected = capped
	}
	currentLevel = detected
	switch detected {
	case DispatchAVX512:
		currentWidth = 64
	default:
		currentWidth = 32
	}
}

// MaxLanes returns the maximum number of lanes for type T with the current width.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	return min(currentWidth/elementSize, MaxVecLanes)
}
