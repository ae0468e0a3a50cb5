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

// BitRange rescales unsigned fixed-point fractions from one bit width to
// another: an in-bit value x encodes x/(2^in-1) and comes out as the
// nearest out-bit encoding of the same value.
type BitRange struct {
	in, out       uint
	inMax, outMax uint64
}

// NewBitRange returns the rescaler from in bits to out bits. Widths are
// clamped to [1, 32].
func NewBitRange(in, out uint) BitRange {
	in, out = clampWidth(in), clampWidth(out)
	return BitRange{
		in:     in,
		out:    out,
		inMax:  1<<in - 1,
		outMax: 1<<out - 1,
	}
}

func clampWidth(w uint) uint {
	return min(max(w, 1), 32)
}

// In returns the source width in bits.
func (b BitRange) In() uint { return b.in }

// Out returns the destination width in bits.
func (b BitRange) Out() uint { return b.out }

// Convert rescales x. Bits of x above the source width are ignored.
func (b BitRange) Convert(x uint32) uint32 {
	v := uint64(x) & b.inMax
	if b.in == b.out {
		return uint32(v)
	}
	return uint32(rescaleUint(v, b.inMax, b.outMax))
}

// ConvertSlice rescales min(len(dst), len(src)) values and returns the count.
func (b BitRange) ConvertSlice(dst, src []uint32) int {
	n := min(len(dst), len(src))
	dst, src = dst[:n], src[:n]
	for i, x := range src {
		dst[i] = b.Convert(x)
	}
	return n
}

// BitRangeConvert rescales the in-bit fraction x to out bits, rounding to
// nearest. 0 maps to 0 and 2^in-1 maps to 2^out-1.
//
// For example:
//
//	BitRangeConvert(10, 16, 1023)  // 65535
//	BitRangeConvert(2, 8, 3)       // 255
//	BitRangeConvert(16, 10, 65535) // 1023
func BitRangeConvert(in, out uint, x uint32) uint32 {
	return NewBitRange(in, out).Convert(x)
}
