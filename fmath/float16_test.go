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
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	x448 "github.com/x448/float16"
)

func TestFloat16ToFloat32(t *testing.T) {
	tests := []struct {
		name string
		h    Float16
		want float32
	}{
		{"zero", Float16Zero, 0},
		{"one", Float16One, 1},
		{"neg one", Float16NegOne, -1},
		{"two", 0x4000, 2},
		{"half", 0x3800, 0.5},
		{"1.5", 0x3E00, 1.5},
		{"max", Float16MaxValue, 65504},
		{"min normal", Float16MinNormal, 1.0 / 16384},
		{"min subnormal", Float16MinValue, 1.0 / (1 << 24)},
		{"max subnormal", 0x03FF, 1023.0 / (1 << 24)},
		{"inf", Float16Inf, float32(math.Inf(1))},
		{"neg inf", Float16NegInf, float32(math.Inf(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Float16ToFloat32(tt.h))
		})
	}

	negZero := Float16ToFloat32(Float16NegZero)
	assert.Equal(t, uint32(0x80000000), math.Float32bits(negZero))
	assert.True(t, math.IsNaN(float64(Float16ToFloat32(Float16NaN))))
}

func TestFloat32ToFloat16(t *testing.T) {
	tests := []struct {
		name string
		f    float32
		want Float16
	}{
		{"zero", 0, Float16Zero},
		{"neg zero", float32(math.Copysign(0, -1)), Float16NegZero},
		{"one", 1, Float16One},
		{"0.1", 0.1, 0x2E66},
		{"max", 65504, Float16MaxValue},
		{"rounds to max", 65519, Float16MaxValue},
		{"rounds to inf", 65520, Float16Inf},
		{"overflow", 1e6, Float16Inf},
		{"neg overflow", -1e6, Float16NegInf},
		{"inf", float32(math.Inf(1)), Float16Inf},
		{"min subnormal", 1.0 / (1 << 24), Float16MinValue},
		{"half min subnormal ties to zero", 1.0 / (1 << 25), Float16Zero},
		{"above half min subnormal", math.Nextafter32(1.0/(1<<25), 1), Float16MinValue},
		{"1.5 subnormal ulps ties to even", 3.0 / (1 << 25), 0x0002},
		{"underflow", 1e-10, Float16Zero},
		{"neg underflow", -1e-10, Float16NegZero},
		{"tie to even down", 1 + 1.0/2048, Float16One},
		{"tie to even up", 1 + 3.0/2048, 0x3C02},
		{"subnormal carries to normal", 0.99999 / 16384, Float16MinNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Float32ToFloat16(tt.f), "got %#04x", uint16(Float32ToFloat16(tt.f)))
		})
	}
}

func TestFloat16NaN(t *testing.T) {
	nan32 := float32(math.NaN())
	h := Float32ToFloat16(nan32)
	assert.True(t, h.IsNaN())
	assert.False(t, h.IsNegative())

	negNaN := math.Float32frombits(0xFFC00001)
	h = Float32ToFloat16(negNaN)
	assert.True(t, h.IsNaN())
	assert.True(t, h.IsNegative())

	// Signaling NaNs come out quiet with the top payload bits kept.
	snan := math.Float32frombits(0x7F802000)
	h = Float32ToFloat16(snan)
	assert.Equal(t, Float16(0x7E01), h)

	// Decoding keeps the payload and sets the quiet bit.
	bits := math.Float32bits(Float16ToFloat32(0x7C01))
	assert.Equal(t, uint32(0x7FC02000), bits)
}

func TestFloat16Methods(t *testing.T) {
	assert.True(t, Float16NaN.IsNaN())
	assert.False(t, Float16Inf.IsNaN())
	assert.True(t, Float16Inf.IsInf())
	assert.True(t, Float16NegInf.IsInf())
	assert.False(t, Float16MaxValue.IsInf())
	assert.True(t, Float16MaxValue.IsFinite())
	assert.False(t, Float16NaN.IsFinite())
	assert.True(t, Float16NegZero.IsZero())
	assert.True(t, Float16NegZero.IsNegative())
	assert.False(t, Float16MinValue.IsZero())
	assert.True(t, Float16MinValue.IsDenormal())
	assert.False(t, Float16MinNormal.IsDenormal())

	h := NewFloat16(1.5)
	assert.Equal(t, uint16(0x3E00), h.Bits())
	assert.Equal(t, h, Float16FromBits(0x3E00))
	assert.Equal(t, float32(1.5), h.Float32())
	assert.Equal(t, 1.5, h.Float64())
	assert.Equal(t, "1.5", h.String())
	assert.Equal(t, "65504", Float16MaxValue.String())
}

// TestFloat16AllPatterns checks every half bit pattern against the x448
// implementation and against its own round trip.
func TestFloat16AllPatterns(t *testing.T) {
	for i := range 1 << 16 {
		h := Float16(i)
		f := Float16ToFloat32(h)
		ref := x448.Frombits(uint16(i))

		if h.IsNaN() {
			require.True(t, math.IsNaN(float64(f)), "%#04x", i)
			require.True(t, ref.IsNaN(), "%#04x", i)
			require.True(t, Float32ToFloat16(f).IsNaN(), "%#04x", i)
			require.Equal(t, h.IsNegative(), math.Signbit(float64(f)), "%#04x", i)
			continue
		}
		require.Equal(t, math.Float32bits(ref.Float32()), math.Float32bits(f), "decode %#04x", i)
		require.Equal(t, h, Float32ToFloat16(f), "round trip %#04x", i)
		require.Equal(t, h, Float64ToFloat16(Float16ToFloat64(h)), "float64 round trip %#04x", i)
	}
}

// halfEncodeInputs returns float32 values that exercise every rounding
// boundary: all half values, the midpoints between neighbors and the floats
// just either side of each midpoint, plus random bit patterns.
func halfEncodeInputs(random int) []float32 {
	var in []float32
	for i := range 0x7C00 {
		lo := Float16ToFloat32(Float16(i))
		hi := Float16ToFloat32(Float16(i + 1))
		mid := lo + (hi-lo)/2
		for _, f := range []float32{lo, mid, math.Nextafter32(mid, 0), math.Nextafter32(mid, 1e9)} {
			in = append(in, f, -f)
		}
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for range random {
		in = append(in, math.Float32frombits(rng.Uint32()))
	}
	// Values straddling the subnormal and overflow edges.
	in = append(in, 65504, 65519.99, 65520, 65536, 1e30, 1.0/(1<<25), 1.0/(1<<26), 5.9e-8, 6.1e-5)
	return in
}

func TestFloat32ToFloat16MatchesReference(t *testing.T) {
	for _, f := range halfEncodeInputs(1 << 18) {
		if math.IsNaN(float64(f)) {
			continue
		}
		want := x448.Fromfloat32(f).Bits()
		require.Equal(t, want, Float32ToFloat16(f).Bits(), "encode %g (%#08x)", f, math.Float32bits(f))
	}
}

func TestFloat32ToFloat16FastMatchesScalar(t *testing.T) {
	in := halfEncodeInputs(1 << 18)
	in = append(in, float32(math.NaN()), math.Float32frombits(0xFF800001), math.Float32frombits(0x7FBFFFFF))
	for _, f := range in {
		require.Equal(t, Float32ToFloat16(f), float32ToFloat16Fast(f), "%#08x", math.Float32bits(f))
	}
}

func TestFloat64ToFloat16(t *testing.T) {
	// Every float32 is exact in float64, so both encoders round once.
	for _, f := range halfEncodeInputs(1 << 16) {
		require.Equal(t, Float32ToFloat16(f), Float64ToFloat16(float64(f)), "%g", f)
	}

	tests := []struct {
		name string
		f    float64
		want Float16
	}{
		// 1 + 2^-11 + 2^-40 narrows to the midpoint 1 + 2^-11 in float32,
		// which would then tie to 1.0. A single rounding goes up.
		{"no double rounding", 1 + 1.0/2048 + 1.0/(1<<40), 0x3C01},
		{"no double rounding subnormal", 1.0/(1<<25) + 1.0/(1<<60), Float16MinValue},
		{"tie", 1 + 1.0/2048, Float16One},
		{"overflow", 1e300, Float16Inf},
		{"underflow", -1e-300, Float16NegZero},
		{"max", 65504, Float16MaxValue},
		{"inf", math.Inf(-1), Float16NegInf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Float64ToFloat16(tt.f))
		})
	}
	assert.True(t, Float64ToFloat16(math.NaN()).IsNaN())
}

func TestFloat16Batch(t *testing.T) {
	src := make([]Float16, 1<<16)
	for i := range src {
		src[i] = Float16(i)
	}

	decoders := map[string]func([]float32, []Float16){
		"scalar": decodeFloat16Scalar,
		"table":  decodeFloat16Table,
		"x4":     decodeFloat16x4,
		"x8":     decodeFloat16x8,
		"x16":    decodeFloat16x16,
		"active": func(dst []float32, src []Float16) { Float16sToFloat32s(dst, src) },
	}
	for name, decode := range decoders {
		t.Run("decode/"+name, func(t *testing.T) {
			// One short of the full range so the block kernels have a tail.
			src := src[:len(src)-1]
			dst := make([]float32, len(src))
			decode(dst, src)
			for i, h := range src {
				require.Equal(t, math.Float32bits(Float16ToFloat32(h)), math.Float32bits(dst[i]), "%#04x", i)
			}
		})
	}

	wideDecoders := map[string]func([]float64, []Float16){
		"scalar": decodeFloat16To64Scalar,
		"table":  decodeFloat16To64Table,
	}
	for name, decode := range wideDecoders {
		t.Run("decode64/"+name, func(t *testing.T) {
			dst := make([]float64, len(src))
			decode(dst, src)
			for i, h := range src {
				want := Float16ToFloat64(h)
				if h.IsNaN() {
					require.True(t, math.IsNaN(dst[i]), "%#04x", i)
					continue
				}
				require.Equal(t, want, dst[i], "%#04x", i)
			}
		})
	}

	in := halfEncodeInputs(1 << 14)
	in = append(in, float32(math.NaN()))
	encoders := map[string]func([]Float16, []float32){
		"scalar": encodeFloat16Scalar,
		"fast":   encodeFloat16Fast,
		"x4":     encodeFloat16x4,
		"x8":     encodeFloat16x8,
		"x16":    encodeFloat16x16,
		"active": func(dst []Float16, src []float32) { Float32sToFloat16s(dst, src) },
	}
	for name, encode := range encoders {
		t.Run("encode/"+name, func(t *testing.T) {
			// Odd length so the block kernels have a tail.
			src := in[:len(in)-len(in)%2-1]
			dst := make([]Float16, len(src))
			encode(dst, src)
			for i, f := range src {
				require.Equal(t, Float32ToFloat16(f), dst[i], "%#08x", math.Float32bits(f))
			}
		})
	}
}

func TestFloat16BatchLengths(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5}
	dst := make([]Float16, 3)
	assert.Equal(t, 3, Float32sToFloat16s(dst, src))
	assert.Equal(t, []Float16{0x3C00, 0x4000, 0x4200}, dst)

	back := make([]float32, 8)
	assert.Equal(t, 3, Float16sToFloat32s(back, dst))
	assert.Equal(t, []float32{1, 2, 3, 0, 0, 0, 0, 0}, back)

	wide := make([]float64, 3)
	assert.Equal(t, 3, Float16sToFloat64s(wide, dst))
	assert.Equal(t, []float64{1, 2, 3}, wide)

	assert.Equal(t, 2, Float64sToFloat16s(dst, []float64{0.5, -2}))
	assert.Equal(t, []Float16{0x3800, 0xC000, 0x4200}, dst)

	assert.Zero(t, Float16sToFloat32s(nil, dst))
	assert.Zero(t, Float16sToFloat64s(wide, nil))
}

func BenchmarkFloat16sToFloat32s(b *testing.B) {
	src := make([]Float16, 4096)
	for i := range src {
		src[i] = Float16(i * 13)
	}
	dst := make([]float32, len(src))
	b.SetBytes(int64(len(src) * 2))
	for b.Loop() {
		Float16sToFloat32s(dst, src)
	}
}

func BenchmarkFloat32sToFloat16s(b *testing.B) {
	src := make([]float32, 4096)
	for i := range src {
		src[i] = float32(i) * 0.37
	}
	dst := make([]Float16, len(src))
	b.SetBytes(int64(len(src) * 4))
	for b.Loop() {
		Float32sToFloat16s(dst, src)
	}
}
