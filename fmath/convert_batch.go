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

// ConvertSlice converts min(len(dst), len(src)) elements of src into dst and
// returns the count. Every element gets exactly the bits ConvertType would
// produce.
//
// Common pairs (uint8/uint16 <-> float32, Float16 <-> float32/float64,
// same-type copies) run specialized kernels. Everything else loops over the
// scalar rule with the type information resolved once.
//
// dst and src may be the same memory when S and D have the same size.
func ConvertSlice[S, D Numbers](dst []D, src []S) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}
	dst, src = dst[:n], src[:n]

	if kernel := sliceKernel[S, D](); kernel != nil {
		kernel(dst, src)
		return n
	}

	s, d := infoOf[S](), infoOf[D]()
	for i, x := range src {
		dst[i] = convertWith[S, D](x, s, d)
	}
	return n
}

// sliceKernel returns the specialized batch kernel for (S, D), or nil.
func sliceKernel[S, D Numbers]() func(dst []D, src []S) {
	var k any
	switch any((func([]D, []S))(nil)).(type) {
	case func([]float32, []uint8):
		k = convertUint8sToFloat32s
	case func([]float32, []uint16):
		k = convertUint16sToFloat32s
	case func([]uint8, []float32):
		k = convertFloat32sToUint8s
	case func([]uint16, []float32):
		k = convertFloat32sToUint16s
	case func([]float32, []Float16):
		k = func(dst []float32, src []Float16) { Float16sToFloat32s(dst, src) }
	case func([]Float16, []float32):
		k = func(dst []Float16, src []float32) { Float32sToFloat16s(dst, src) }
	case func([]float64, []Float16):
		k = func(dst []float64, src []Float16) { Float16sToFloat64s(dst, src) }
	case func([]Float16, []float64):
		k = func(dst []Float16, src []float64) { Float64sToFloat16s(dst, src) }
	}
	if k != nil {
		return k.(func([]D, []S))
	}
	if TypeOf[S]() == TypeOf[D]() {
		return func(dst []D, src []S) {
			copy(dst, any(src).([]D))
		}
	}
	return nil
}

// uint8ToFloat32 is small enough to build eagerly.
var uint8ToFloat32 = func() (t [1 << 8]float32) {
	info := &numInfos[TypeUint8]
	for i := range t {
		t[i] = float32(float64(i) / info.fmax)
	}
	return t
}()

var uint16ToFloat32 = sync.OnceValue(func() *[1 << 16]float32 {
	var t [1 << 16]float32
	info := &numInfos[TypeUint16]
	for i := range t {
		t[i] = float32(float64(i) / info.fmax)
	}
	return &t
})

func convertUint8sToFloat32s(dst []float32, src []uint8) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = uint8ToFloat32[x]
	}
}

func convertUint16sToFloat32s(dst []float32, src []uint16) {
	table := uint16ToFloat32()
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = table[x]
	}
}

func convertFloat32sToUint8s(dst []uint8, src []float32) {
	dst = dst[:len(src)]
	for i, f := range src {
		dst[i] = uint8(unormFromFloat32(f, math.MaxUint8))
	}
}

func convertFloat32sToUint16s(dst []uint16, src []float32) {
	dst = dst[:len(src)]
	for i, f := range src {
		dst[i] = uint16(unormFromFloat32(f, math.MaxUint16))
	}
}

// unormFromFloat32 is saturate specialized for unsigned destinations.
func unormFromFloat32(f float32, umax float64) uint32 {
	s := float64(f) * umax
	switch {
	case !(s > 0):
		return 0
	case s >= umax:
		return uint32(umax)
	}
	return uint32(math.Round(s))
}
