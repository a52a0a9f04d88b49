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

import "unsafe"

// Tag represents a register width that determines how many lanes
// a kernel instantiation works on.
type Tag interface {
	// Width returns the width in bytes (16 for 128-bit, 32 for 256-bit, etc.)
	Width() int

	// Name returns a human-readable name for this tag ("128bit", "256bit", ...)
	Name() string
}

// lanesFor returns how many T fit in width bytes, capped at MaxVecLanes.
func lanesFor[T Lanes](width int) int {
	var dummy T
	return min(width/int(unsafe.Sizeof(dummy)), MaxVecLanes)
}

// ScalableTag adapts to the widest register available at runtime.
//
// Usage:
//
//	tag := hwy.ScalableTag[float32]{}
//	v := hwy.Load(data, tag.MaxLanes())
type ScalableTag[T Lanes] struct{}

// Width returns the current runtime register width in bytes.
func (ScalableTag[T]) Width() int {
	return currentWidth
}

// Name returns the current runtime target name.
func (ScalableTag[T]) Name() string {
	return currentLevel.String()
}

// MaxLanes returns the number of lanes of T for the current width.
func (ScalableTag[T]) MaxLanes() int {
	return MaxLanes[T]()
}

// FixedTag128 selects 128-bit vectors (4 x float32).
type FixedTag128[T Lanes] struct{}

// Width returns 16 bytes (128 bits).
func (FixedTag128[T]) Width() int { return 16 }

// Name returns "128bit".
func (FixedTag128[T]) Name() string { return "128bit" }

// MaxLanes returns the number of T values that fit in 128 bits.
func (FixedTag128[T]) MaxLanes() int { return lanesFor[T](16) }

// FixedTag256 selects 256-bit vectors (8 x float32, 4 x float64).
type FixedTag256[T Lanes] struct{}

// Width returns 32 bytes (256 bits).
func (FixedTag256[T]) Width() int { return 32 }

// Name returns "256bit".
func (FixedTag256[T]) Name() string { return "256bit" }

// MaxLanes returns the number of T values that fit in 256 bits.
func (FixedTag256[T]) MaxLanes() int { return lanesFor[T](32) }

// FixedTag512 selects 512-bit vectors (16 x float32, 8 x float64).
type FixedTag512[T Lanes] struct{}

// Width returns 64 bytes (512 bits).
func (FixedTag512[T]) Width() int { return 64 }

// Name returns "512bit".
func (FixedTag512[T]) Name() string { return "512bit" }

// MaxLanes returns the number of T values that fit in 512 bits.
// Element types narrower than 4 bytes are capped at MaxVecLanes.
func (FixedTag512[T]) MaxLanes() int { return lanesFor[T](64) }
