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

// Package fmath provides bit-exact numeric conversions and bit-layout helpers.
//
// It covers normalized conversion between fixed-width integers, float32,
// float64 and IEEE 754 half precision (Float16), integer power-of-two and
// rounding helpers, floor/sign helpers, bit-range rescaling, and linear
// interpolation over regularly sampled knots.
//
// Every operation is a pure function. Batch forms (ConvertSlice,
// Float16sToFloat32s, ...) pick a specialized kernel at runtime and always
// produce the same bits as the scalar form.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-fmath/fmath"
//
//	f := fmath.ConvertType[uint8, float32](255) // 1.0
//	u := fmath.ConvertType[float32, uint16](0.5) // 32768
//
//	h := fmath.Float32ToFloat16(1.5)
//	back := h.Float32() // 1.5
//
//	// Batch conversion into caller-owned buffers
//	fmath.ConvertSlice(dst, src)
package fmath

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Numbers is the closed set of types accepted by the normalized converters.
//
// Unlike the other constraints it lists exact types only: Float16 has uint16
// as its underlying type, so a ~uint16 term would make the two
// indistinguishable.
type Numbers interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 |
		float32 | float64 | Float16
}
