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
	"math/bits"
	"strconv"
)

// Float16 represents an IEEE 754 half-precision (binary16) floating-point number.
// It wraps uint16 for storage; there is no half arithmetic, only conversion.
//
// Format: Sign (1 bit) | Exponent (5 bits) | Mantissa (10 bits)
//
//	S | EEEEE | MMMMMMMMMM
//
// Properties:
//   - Exponent bias: 15
//   - Max value: 65504
//   - Min positive normal: 2^-14 (~6.10e-5)
//   - Min positive subnormal: 2^-24 (~5.96e-8)
type Float16 uint16

// Float16 constants for special values.
const (
	Float16Zero      Float16 = 0x0000 // Positive zero
	Float16NegZero   Float16 = 0x8000 // Negative zero
	Float16One       Float16 = 0x3C00 // 1.0
	Float16NegOne    Float16 = 0xBC00 // -1.0
	Float16MaxValue  Float16 = 0x7BFF // 65504 (max finite value)
	Float16MinNormal Float16 = 0x0400 // 2^-14
	Float16MinValue  Float16 = 0x0001 // 2^-24, smallest subnormal
	Float16Inf       Float16 = 0x7C00 // Positive infinity
	Float16NegInf    Float16 = 0xFC00 // Negative infinity
	Float16NaN       Float16 = 0x7E00 // Quiet NaN (canonical)

	float16SignMask     = 0x8000
	float16ExpMask      = 0x7C00
	float16MantissaMask = 0x03FF
	float16QuietBit     = 0x0200
)

// Float16ToFloat32 converts a Float16 to float32. The conversion is exact for
// every non-NaN pattern. NaNs keep their sign and payload and come out quiet.
func Float16ToFloat32(h Float16) float32 {
	return math.Float32frombits(float16ToFloat32Bits(h))
}

func float16ToFloat32Bits(h Float16) uint32 {
	sign := uint32(h&float16SignMask) << 16
	exp := uint32(h&float16ExpMask) >> 10
	mant := uint32(h & float16MantissaMask)

	switch exp {
	case 0:
		if mant == 0 {
			return sign
		}
		// Subnormal: mant * 2^-24. Move the leading one to bit 10 and
		// drop it into the implicit position.
		shift := uint32(bits.LeadingZeros32(mant)) - 21
		mant = (mant << shift) & float16MantissaMask
		return sign | (113-shift)<<23 | mant<<13
	case 0x1F:
		if mant == 0 {
			return sign | 0x7F800000
		}
		return sign | 0x7FC00000 | mant<<13
	default:
		// Rebias 15 -> 127.
		return sign | (exp+112)<<23 | mant<<13
	}
}

// Float16ToFloat64 converts a Float16 to float64. Exact for non-NaN values.
func Float16ToFloat64(h Float16) float64 {
	return float64(Float16ToFloat32(h))
}

// Float32ToFloat16 converts a float32 to Float16 with round-to-nearest-even.
// Values beyond the half range become infinities, values below half the
// smallest subnormal become signed zeros. NaNs stay NaN with their sign.
func Float32ToFloat16(f float32) Float16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & float16SignMask
	exp := int32(b>>23) & 0xFF
	mant := uint64(b & 0x7FFFFF)

	if exp == 0xFF {
		if mant == 0 {
			return Float16(sign | float16ExpMask)
		}
		return Float16(sign | float16ExpMask | float16QuietBit | uint16(mant>>13))
	}

	e := exp - 127 + 15
	if e >= 0x1F {
		return Float16(sign | float16ExpMask)
	}
	if e <= 0 {
		// Half subnormal or zero: the integer mantissa is f / 2^-24.
		shift := uint(126 - exp)
		if shift > 24 {
			return Float16(sign)
		}
		return Float16(sign | uint16(shiftRoundEven(mant|0x800000, shift)))
	}

	// A carry out of the mantissa bumps the exponent, and a carry out of
	// the largest exponent lands exactly on infinity.
	h := uint64(e)<<10 | mant>>13
	h = roundEvenCarry(h, mant&0x1FFF, 0x1000)
	return Float16(sign | uint16(h))
}

// Float64ToFloat16 converts a float64 to Float16 with a single
// round-to-nearest-even step. Going through float32 first would round twice.
func Float64ToFloat16(f float64) Float16 {
	b := math.Float64bits(f)
	sign := uint16(b>>48) & float16SignMask
	exp := int64(b>>52) & 0x7FF
	mant := b & (1<<52 - 1)

	if exp == 0x7FF {
		if mant == 0 {
			return Float16(sign | float16ExpMask)
		}
		return Float16(sign | float16ExpMask | float16QuietBit | uint16(mant>>42))
	}

	e := exp - 1023 + 15
	if e >= 0x1F {
		return Float16(sign | float16ExpMask)
	}
	if e <= 0 {
		shift := uint(1051 - exp)
		if shift > 53 {
			return Float16(sign)
		}
		return Float16(sign | uint16(shiftRoundEven(mant|1<<52, shift)))
	}

	h := uint64(e)<<10 | mant>>42
	h = roundEvenCarry(h, mant&(1<<42-1), 1<<41)
	return Float16(sign | uint16(h))
}

// shiftRoundEven returns x >> s rounded to nearest, ties to even. s >= 1.
func shiftRoundEven(x uint64, s uint) uint64 {
	q := x >> s
	return roundEvenCarry(q, x&(1<<s-1), 1<<(s-1))
}

// roundEvenCarry adds one to q when the discarded bits rem are above half,
// or exactly half with q odd.
func roundEvenCarry(q, rem, half uint64) uint64 {
	if rem > half || (rem == half && q&1 == 1) {
		q++
	}
	return q
}

// NewFloat16 creates a Float16 from a float32 value.
func NewFloat16(f float32) Float16 {
	return Float32ToFloat16(f)
}

// Float16FromBits creates a Float16 from raw bits.
func Float16FromBits(b uint16) Float16 {
	return Float16(b)
}

// Bits returns the raw uint16 representation.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

// Float32 converts h to float32.
func (h Float16) Float32() float32 {
	return Float16ToFloat32(h)
}

// Float64 converts h to float64.
func (h Float16) Float64() float64 {
	return Float16ToFloat64(h)
}

// IsNaN returns true if h is a NaN value.
func (h Float16) IsNaN() bool {
	return h&float16ExpMask == float16ExpMask && h&float16MantissaMask != 0
}

// IsInf returns true if h is positive or negative infinity.
func (h Float16) IsInf() bool {
	return h&^float16SignMask == float16ExpMask
}

// IsFinite returns true if h is neither infinite nor NaN.
func (h Float16) IsFinite() bool {
	return h&float16ExpMask != float16ExpMask
}

// IsZero returns true if h is positive or negative zero.
func (h Float16) IsZero() bool {
	return h&^float16SignMask == 0
}

// IsNegative returns true if the sign bit is set.
func (h Float16) IsNegative() bool {
	return h&float16SignMask != 0
}

// IsDenormal returns true if h is a subnormal number.
func (h Float16) IsDenormal() bool {
	return h&float16ExpMask == 0 && h&float16MantissaMask != 0
}

// String formats h as its float32 value.
func (h Float16) String() string {
	return strconv.FormatFloat(float64(h.Float32()), 'g', -1, 32)
}
