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
	"unsafe"
)

// IFloor returns floor(f) as an int32. Values outside the int32 range
// saturate (so +Inf gives MaxInt32 and -Inf gives MinInt32) and NaN gives 0.
func IFloor[T Floats](f T) int32 {
	v := float64(f)
	switch {
	case v != v:
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(math.Floor(v))
}

// FloorFrac splits f into IFloor(f) and the fraction f - floor(f), which is
// in [0, 1). For NaN, infinities and values whose floor saturates the
// fraction is 0.
func FloorFrac[T Floats](f T) (int32, T) {
	i := IFloor(f)
	v := float64(f)
	if v != v || v < math.MinInt32 || v >= 1<<31 {
		return i, 0
	}
	frac := f - T(i)
	if frac >= 1 {
		// A tiny negative f rounds f+1 up to exactly 1.
		frac = oneMinusUlp[T]()
	}
	return i, frac
}

// oneMinusUlp returns the largest T below 1.
func oneMinusUlp[T Floats]() T {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return T(math.Nextafter32(1, 0))
	}
	return T(math.Nextafter(1, 0))
}

// Sign returns -1 for negative f, 1 for positive f, and 0 for zero of
// either sign and for NaN.
func Sign[T Floats](f T) T {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}
