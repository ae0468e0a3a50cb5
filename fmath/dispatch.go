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

package fmath

import (
	"os"
	"strconv"
)

// DispatchLevel represents the instruction set the batch kernels are tuned for.
type DispatchLevel int

const (
	// DispatchScalar indicates plain per-element loops.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates the x86-64 baseline (128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 (256-bit).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 (512-bit).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON (128-bit).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Set by init() in dispatch_*.go files.
var (
	currentLevel DispatchLevel
	currentWidth = 16
	currentName  = "scalar"

	// hasHalfConvert is set when the CPU has native half<->single
	// conversion (F16C on x86, FPHP on arm64). Reported for diagnostics.
	hasHalfConvert bool
)

// CurrentLevel returns the detected dispatch level.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector register width in bytes used to size
// batch blocks. For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current target.
func CurrentName() string {
	return currentName
}

// HasHalfConvert reports whether the CPU has native half<->float conversion
// instructions.
func HasHalfConvert() bool {
	return hasHalfConvert
}

// NoSimdEnv checks if the FMATH_NO_SIMD environment variable is set.
// When set, the batch entry points use the per-element scalar kernels
// regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("FMATH_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLanes returns the number of T elements in one block at the current
// width. For example, with AVX2 (32 bytes): float32 -> 8, Float16 -> 16.
func MaxLanes[T Numbers]() int {
	size := TypeOf[T]().Size()
	if size == 0 {
		return 0
	}
	return currentWidth / size
}

func setLevel(level DispatchLevel, width int) {
	currentLevel = level
	currentWidth = width
	currentName = level.String()
	selectKernels()
}

func setScalarMode() {
	setLevel(DispatchScalar, 16)
}

// selectKernels binds the batch entry points to the implementation matching
// the current level. SIMD levels get the table decoder and the branch-light
// encoder in blocks of one register of float32.
func selectKernels() {
	if currentLevel == DispatchScalar {
		decodeFloat16Kernel = decodeFloat16Scalar
		decodeFloat16To64Kernel = decodeFloat16To64Scalar
		encodeFloat16Kernel = encodeFloat16Scalar
		return
	}

	decodeFloat16To64Kernel = decodeFloat16To64Table
	switch MaxLanes[float32]() {
	case 16:
		decodeFloat16Kernel = decodeFloat16x16
		encodeFloat16Kernel = encodeFloat16x16
	case 8:
		decodeFloat16Kernel = decodeFloat16x8
		encodeFloat16Kernel = encodeFloat16x8
	default:
		decodeFloat16Kernel = decodeFloat16x4
		encodeFloat16Kernel = encodeFloat16x4
	}
}
