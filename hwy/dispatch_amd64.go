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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	setLevel(detectCPUFeatures())
}

func detectCPUFeatures() DispatchLevel {
	// AVX-512 kernels need F for the arithmetic and DQ for the 64-bit
	// float <-> int conversions used in range reduction.
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ {
		return DispatchAVX512
	}
	// AVX2 kernels are written with fused multiply-add.
	if cpu.X86.HasAVX2 && cpu.X86.HasFMA {
		return DispatchAVX2
	}
	return DispatchScalar
}

// HasFMA returns true if the CPU supports fused multiply-add.
func HasFMA() bool {
	return cpu.X86.HasFMA
}
