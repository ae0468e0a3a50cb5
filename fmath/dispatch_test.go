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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchLevel(t *testing.T) {
	t.Logf("level=%s width=%d halfconvert=%v", CurrentName(), CurrentWidth(), HasHalfConvert())

	assert.Equal(t, CurrentLevel().String(), CurrentName())
	assert.Contains(t, []int{16, 32, 64}, CurrentWidth())
	assert.Equal(t, "unknown", DispatchLevel(99).String())
	if NoSimdEnv() {
		assert.Equal(t, DispatchScalar, CurrentLevel())
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("FMATH_NO_SIMD", tt.val)
		assert.Equal(t, tt.want, NoSimdEnv(), "FMATH_NO_SIMD=%q", tt.val)
	}
}

func TestMaxLanes(t *testing.T) {
	w := CurrentWidth()
	assert.Equal(t, w, MaxLanes[uint8]())
	assert.Equal(t, w/2, MaxLanes[Float16]())
	assert.Equal(t, w/2, MaxLanes[int16]())
	assert.Equal(t, w/4, MaxLanes[float32]())
	assert.Equal(t, w/8, MaxLanes[float64]())
}

// TestSelectKernels flips the dispatch level and checks that each level
// binds its own block width and that the batch entry points still agree
// with the scalar codec.
func TestSelectKernels(t *testing.T) {
	level, width := CurrentLevel(), CurrentWidth()
	t.Cleanup(func() { setLevel(level, width) })

	funcPtr := func(fn any) uintptr { return reflect.ValueOf(fn).Pointer() }
	tests := []struct {
		level          DispatchLevel
		width          int
		decode, encode any
		decode64       any
	}{
		{DispatchScalar, 16, decodeFloat16Scalar, encodeFloat16Scalar, decodeFloat16To64Scalar},
		{DispatchSSE2, 16, decodeFloat16x4, encodeFloat16x4, decodeFloat16To64Table},
		{DispatchNEON, 16, decodeFloat16x4, encodeFloat16x4, decodeFloat16To64Table},
		{DispatchAVX2, 32, decodeFloat16x8, encodeFloat16x8, decodeFloat16To64Table},
		{DispatchAVX512, 64, decodeFloat16x16, encodeFloat16x16, decodeFloat16To64Table},
	}

	src := []float32{0, 1, -2.5, 1e-7, 70000, 0.1, 3, 65504, -6e-8, 0.333, 1e-5, 2049, 7, 8, 9, 10, 11, 12, 13}
	for _, tt := range tests {
		setLevel(tt.level, tt.width)
		assert.Equal(t, funcPtr(tt.decode), funcPtr(decodeFloat16Kernel), "%s decode kernel", tt.level)
		assert.Equal(t, funcPtr(tt.encode), funcPtr(encodeFloat16Kernel), "%s encode kernel", tt.level)
		assert.Equal(t, funcPtr(tt.decode64), funcPtr(decodeFloat16To64Kernel), "%s decode64 kernel", tt.level)

		halves := make([]Float16, len(src))
		Float32sToFloat16s(halves, src)
		back := make([]float32, len(src))
		Float16sToFloat32s(back, halves)
		wide := make([]float64, len(src))
		Float16sToFloat64s(wide, halves)
		for i, f := range src {
			assert.Equal(t, Float32ToFloat16(f), halves[i], "%s encode %g", tt.level, f)
			assert.Equal(t, Float16ToFloat32(halves[i]), back[i], "%s decode %g", tt.level, f)
			assert.Equal(t, Float16ToFloat64(halves[i]), wide[i], "%s decode64 %g", tt.level, f)
		}
	}
}

func TestTypeDesc(t *testing.T) {
	tests := []struct {
		desc   TypeDesc
		name   string
		size   int
		float  bool
		signed bool
	}{
		{TypeOf[uint8](), "uint8", 1, false, false},
		{TypeOf[int8](), "int8", 1, false, true},
		{TypeOf[uint16](), "uint16", 2, false, false},
		{TypeOf[int16](), "int16", 2, false, true},
		{TypeOf[uint32](), "uint", 4, false, false},
		{TypeOf[int32](), "int", 4, false, true},
		{TypeOf[uint64](), "uint64", 8, false, false},
		{TypeOf[int64](), "int64", 8, false, true},
		{TypeOf[Float16](), "half", 2, true, false},
		{TypeOf[float32](), "float", 4, true, false},
		{TypeOf[float64](), "double", 8, true, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.desc.String())
		assert.Equal(t, tt.size, tt.desc.Size(), tt.name)
		assert.Equal(t, uint(tt.size*8), tt.desc.Bits(), tt.name)
		assert.Equal(t, tt.float, tt.desc.IsFloat(), tt.name)
		assert.Equal(t, tt.signed, tt.desc.IsSigned(), tt.name)
	}
	assert.Equal(t, "unknown", TypeUnknown.String())
	assert.Zero(t, TypeUnknown.Size())
}
