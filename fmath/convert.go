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
)

// numInfo describes the normalization range of one Numbers type.
type numInfo struct {
	desc       TypeDesc
	umax       uint64 // max value, unsigned types only
	imin, imax int64  // signed types only
	fmin, fmax float64
}

var numInfos = [...]numInfo{
	TypeUnknown: {desc: TypeUnknown, fmax: 1},
	TypeUint8:   unsignedInfo(TypeUint8, math.MaxUint8),
	TypeUint16:  unsignedInfo(TypeUint16, math.MaxUint16),
	TypeUint32:  unsignedInfo(TypeUint32, math.MaxUint32),
	TypeUint64:  unsignedInfo(TypeUint64, math.MaxUint64),
	TypeInt8:    signedInfo(TypeInt8, math.MinInt8, math.MaxInt8),
	TypeInt16:   signedInfo(TypeInt16, math.MinInt16, math.MaxInt16),
	TypeInt32:   signedInfo(TypeInt32, math.MinInt32, math.MaxInt32),
	TypeInt64:   signedInfo(TypeInt64, math.MinInt64, math.MaxInt64),
	TypeHalf:    {desc: TypeHalf, fmin: -1, fmax: 1},
	TypeFloat:   {desc: TypeFloat, fmin: -1, fmax: 1},
	TypeDouble:  {desc: TypeDouble, fmin: -1, fmax: 1},
}

func unsignedInfo(t TypeDesc, umax uint64) numInfo {
	return numInfo{desc: t, umax: umax, fmax: float64(umax)}
}

func signedInfo(t TypeDesc, imin, imax int64) numInfo {
	return numInfo{desc: t, imin: imin, imax: imax, fmin: float64(imin), fmax: float64(imax)}
}

func infoOf[T Numbers]() *numInfo {
	return &numInfos[TypeOf[T]()]
}

// ConvertType converts x from S to D with normalized semantics whenever one
// side is an integer and the other a float:
//
//   - unsigned N-bit integers span [0, 1], with 2^N-1 mapping to exactly 1.0
//   - signed N-bit integers divide by 2^(N-1)-1 on both halves, so the most
//     negative value lands slightly below -1 and still round trips
//   - float to integer scales by the destination max, rounds half away from
//     zero and saturates; NaN becomes 0
//   - unsigned to unsigned is an exact bit-range rescale
//   - other integer pairs go through float64 with the ratio of the maxima
//   - float to float (half included) is a plain value conversion
//   - integer to half normalizes to float32 first, then rounds to half
//
// For example:
//
//	ConvertType[uint8, float32](255)   // 1.0
//	ConvertType[float32, int16](-0.5)  // -16384 (rounded from -16383.5)
//	ConvertType[uint8, uint16](0x80)   // 0x8080
//	ConvertType[float32, Float16](0.1) // 0x2E66
func ConvertType[S, D Numbers](x S) D {
	return convertWith[S, D](x, infoOf[S](), infoOf[D]())
}

// Converter returns the scalar conversion function for the pair (S, D),
// with the type information resolved up front.
func Converter[S, D Numbers]() func(S) D {
	src, dst := infoOf[S](), infoOf[D]()
	return func(x S) D {
		return convertWith[S, D](x, src, dst)
	}
}

func convertWith[S, D Numbers](x S, src, dst *numInfo) D {
	if src.desc == dst.desc {
		return D(x)
	}

	switch {
	case src.desc == TypeHalf:
		f := Float16ToFloat32(Float16(x))
		switch {
		case dst.desc == TypeDouble:
			return D(float64(f))
		case dst.desc == TypeFloat:
			return D(f)
		}
		return saturate[D](float64(f)*dst.fmax, dst)

	case dst.desc == TypeHalf:
		var h Float16
		switch src.desc {
		case TypeFloat:
			h = Float32ToFloat16(float32(x))
		case TypeDouble:
			h = Float64ToFloat16(float64(x))
		default:
			h = Float32ToFloat16(float32(float64(x) / src.fmax))
		}
		return D(h)

	case src.desc.IsFloat() && dst.desc.IsFloat():
		return D(x)

	case dst.desc.IsFloat():
		return D(float64(x) / src.fmax)

	case src.desc.IsFloat():
		return saturate[D](float64(x)*dst.fmax, dst)

	case !src.desc.IsSigned() && !dst.desc.IsSigned():
		return D(rescaleUint(uint64(x), src.umax, dst.umax))
	}

	return saturate[D](float64(x)*(dst.fmax/src.fmax), dst)
}

// saturate rounds s half away from zero and clamps it to the integer range
// of dst. NaN gives 0.
func saturate[D Numbers](s float64, dst *numInfo) D {
	switch {
	case s != s:
		return 0
	case s >= dst.fmax:
		if dst.desc.IsSigned() {
			return D(dst.imax)
		}
		return D(dst.umax)
	case s <= dst.fmin:
		if dst.desc.IsSigned() {
			return D(dst.imin)
		}
		return 0
	}
	r := math.Round(s)
	if dst.desc.IsSigned() {
		return D(int64(r))
	}
	return D(uint64(r))
}

// rescaleUint returns round(x * outMax / inMax) for x <= inMax using 128-bit
// intermediates. inMax is 2^N-1, which is odd, so there are no ties.
func rescaleUint(x, inMax, outMax uint64) uint64 {
	if x >= inMax {
		return outMax
	}
	hi, lo := bits.Mul64(x, outMax)
	lo, carry := bits.Add64(lo, inMax>>1, 0)
	hi += carry
	// hi < inMax because x < inMax, so Div64 cannot overflow.
	q, _ := bits.Div64(hi, lo, inMax)
	return q
}
