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
	"math"
	"sync"
)

// Batch kernels, rebound by selectKernels at init.
var (
	decodeFloat16Kernel     = decodeFloat16Scalar
	decodeFloat16To64Kernel = decodeFloat16To64Scalar
	encodeFloat16Kernel     = encodeFloat16Scalar
)

// Float16sToFloat32s decodes min(len(dst), len(src)) halves into dst and
// returns the count. Output bits match Float16ToFloat32 for every input.
func Float16sToFloat32s(dst []float32, src []Float16) int {
	n := min(len(dst), len(src))
	decodeFloat16Kernel(dst[:n], src[:n])
	return n
}

// Float32sToFloat16s encodes min(len(dst), len(src)) floats into dst and
// returns the count. Output bits match Float32ToFloat16 for every input.
func Float32sToFloat16s(dst []Float16, src []float32) int {
	n := min(len(dst), len(src))
	encodeFloat16Kernel(dst[:n], src[:n])
	return n
}

// Float16sToFloat64s decodes min(len(dst), len(src)) halves into dst.
func Float16sToFloat64s(dst []float64, src []Float16) int {
	n := min(len(dst), len(src))
	decodeFloat16To64Kernel(dst[:n], src[:n])
	return n
}

// Float64sToFloat16s encodes min(len(dst), len(src)) doubles into dst with
// a single rounding step per element.
func Float64sToFloat16s(dst []Float16, src []float64) int {
	n := min(len(dst), len(src))
	dst = dst[:n]
	for i, f := range src[:n] {
		dst[i] = Float64ToFloat16(f)
	}
	return n
}

func decodeFloat16Scalar(dst []float32, src []Float16) {
	for i, h := range src {
		dst[i] = Float16ToFloat32(h)
	}
}

func decodeFloat16To64Scalar(dst []float64, src []Float16) {
	for i, h := range src {
		dst[i] = Float16ToFloat64(h)
	}
}

func encodeFloat16Scalar(dst []Float16, src []float32) {
	for i, f := range src {
		dst[i] = Float32ToFloat16(f)
	}
}

// float16Table holds the binary32 bits of every half pattern. Bits rather
// than float32 values so NaN payloads survive loads and stores.
var float16Table = sync.OnceValue(func() *[1 << 16]uint32 {
	var t [1 << 16]uint32
	for i := range t {
		t[i] = float16ToFloat32Bits(Float16(i))
	}
	return &t
})

func decodeFloat16Table(dst []float32, src []Float16) {
	table := float16Table()
	dst = dst[:len(src)]
	for i, h := range src {
		dst[i] = math.Float32frombits(table[h])
	}
}

func decodeFloat16To64Table(dst []float64, src []Float16) {
	table := float16Table()
	dst = dst[:len(src)]
	for i, h := range src {
		dst[i] = float64(math.Float32frombits(table[h]))
	}
}

func encodeFloat16Fast(dst []Float16, src []float32) {
	dst = dst[:len(src)]
	for i, f := range src {
		dst[i] = float32ToFloat16Fast(f)
	}
}

// The fixed-width kernels below cover one vector register of float32 per
// block: 4 lanes at 128 bits, 8 at 256 and 16 at 512. The array pointer
// conversions drop the per-element bounds checks inside a block.

func decodeFloat16x4(dst []float32, src []Float16) {
	table := float16Table()
	dst = dst[:len(src)]
	ProcessWithTail(len(src), 4,
		func(off int) {
			s, d := (*[4]Float16)(src[off:]), (*[4]float32)(dst[off:])
			for i := range s {
				d[i] = math.Float32frombits(table[s[i]])
			}
		},
		func(off, count int) { decodeFloat16Table(dst[off:off+count], src[off:off+count]) },
	)
}

func decodeFloat16x8(dst []float32, src []Float16) {
	table := float16Table()
	dst = dst[:len(src)]
	ProcessWithTail(len(src), 8,
		func(off int) {
			s, d := (*[8]Float16)(src[off:]), (*[8]float32)(dst[off:])
			for i := range s {
				d[i] = math.Float32frombits(table[s[i]])
			}
		},
		func(off, count int) { decodeFloat16Table(dst[off:off+count], src[off:off+count]) },
	)
}

func decodeFloat16x16(dst []float32, src []Float16) {
	table := float16Table()
	dst = dst[:len(src)]
	ProcessWithTail(len(src), 16,
		func(off int) {
			s, d := (*[16]Float16)(src[off:]), (*[16]float32)(dst[off:])
			for i := range s {
				d[i] = math.Float32frombits(table[s[i]])
			}
		},
		func(off, count int) { decodeFloat16Table(dst[off:off+count], src[off:off+count]) },
	)
}

func encodeFloat16x4(dst []Float16, src []float32) {
	dst = dst[:len(src)]
	ProcessWithTail(len(src), 4,
		func(off int) {
			s, d := (*[4]float32)(src[off:]), (*[4]Float16)(dst[off:])
			for i := range s {
				d[i] = float32ToFloat16Fast(s[i])
			}
		},
		func(off, count int) { encodeFloat16Fast(dst[off:off+count], src[off:off+count]) },
	)
}

func encodeFloat16x8(dst []Float16, src []float32) {
	dst = dst[:len(src)]
	ProcessWithTail(len(src), 8,
		func(off int) {
			s, d := (*[8]float32)(src[off:]), (*[8]Float16)(dst[off:])
			for i := range s {
				d[i] = float32ToFloat16Fast(s[i])
			}
		},
		func(off, count int) { encodeFloat16Fast(dst[off:off+count], src[off:off+count]) },
	)
}

func encodeFloat16x16(dst []Float16, src []float32) {
	dst = dst[:len(src)]
	ProcessWithTail(len(src), 16,
		func(off int) {
			s, d := (*[16]float32)(src[off:]), (*[16]Float16)(dst[off:])
			for i := range s {
				d[i] = float32ToFloat16Fast(s[i])
			}
		},
		func(off, count int) { encodeFloat16Fast(dst[off:off+count], src[off:off+count]) },
	)
}

const (
	f16OverflowBits    = (127 + 16) << 23 // 65536.0
	f16MinNormalBits   = 113 << 23        // 2^-14
	f16DenormMagicBits = 126 << 23        // 0.5
)

// float32ToFloat16Fast is the round-to-nearest-even encoder that adds
// rounding bias in the integer domain instead of branching on the
// discarded bits. Subnormal results come from one float add against 0.5,
// which lines the ten mantissa bits up at the bottom of the word and lets
// the FPU do the rounding.
func float32ToFloat16Fast(f float32) Float16 {
	u := math.Float32bits(f)
	sign := uint16(u>>16) & float16SignMask
	u &^= 0x80000000

	switch {
	case u >= f16OverflowBits:
		if u > 0x7F800000 {
			return Float16(sign | float16ExpMask | float16QuietBit | uint16(u>>13)&float16MantissaMask)
		}
		return Float16(sign | float16ExpMask)
	case u < f16MinNormalBits:
		magic := math.Float32frombits(f16DenormMagicBits)
		r := math.Float32frombits(u) + magic
		return Float16(sign | uint16(math.Float32bits(r)-f16DenormMagicBits))
	default:
		mantOdd := (u >> 13) & 1
		// Rebias 127 -> 15 and add just under half an ulp, plus one more
		// when the kept mantissa is odd.
		u -= (127 - 15) << 23
		u += 0xFFF + mantOdd
		return Float16(sign | uint16(u>>13))
	}
}
