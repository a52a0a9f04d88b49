// Package hwy provides portable lane vectors with runtime CPU dispatch.
//
// It follows the Highway C++ library's design philosophy: write a kernel once
// against lane-wise operations, then instantiate it for every lane count and
// element type the target supports. Vectors are fixed-capacity values, so
// passing them around never touches the heap.
//
// Basic usage:
//
//	import "github.com/cexa-project/go-vexp/hwy"
//
//	// Load data into vectors
//	a := hwy.Load(data1, 8)
//	b := hwy.Load(data2, 8)
//
//	// Perform lane-wise operations
//	result := hwy.Add(a, b)
//
//	// Store results
//	hwy.Store(result, output)
package hwy

// MaxVecLanes is the largest lane count a Vec can hold (16 x float32 in 512 bits).
const MaxVecLanes = 16

// Floats is a constraint for floating-point types.
type Floats interface {
	float32 | float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector of n lanes of T.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	n    int
	data [MaxVecLanes]T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Data returns a copy of the active lanes.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	out := make([]T, v.n)
	copy(out, v.data[:v.n])
	return out
}

// Lane returns the value held in lane i.
func (v Vec[T]) Lane(i int) T {
	return v.data[i]
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), v.n)
	copy(dst[:n], v.data[:n])
}

// Mask represents the result of a comparison operation.
// It can be used with IfThenElse to select lanes branchlessly.
//
// Mask instances should not be created directly; use comparison operations
// like Equal, LessThan, or GreaterThan instead.
type Mask[T Lanes] struct {
	n    int
	bits [MaxVecLanes]bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return m.n
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for i := 0; i < m.n; i++ {
		if !m.bits[i] {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for i := 0; i < m.n; i++ {
		if m.bits[i] {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for i := 0; i < m.n; i++ {
		if m.bits[i] {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= m.n {
		return false
	}
	return m.bits[i]
}

func checkLanes(n int) {
	if n < 1 || n > MaxVecLanes {
		panic("hwy: lane count out of range")
	}
}

func sameLanes(a, b int) {
	if a != b {
		panic("hwy: mismatched lane counts")
	}
}
