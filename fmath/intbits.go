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

import "math/bits"

// IsPow2 reports whether x is a power of two. Zero counts as one;
// negative values never do.
func IsPow2[T Integers](x T) bool {
	return x >= 0 && x&(x-1) == 0
}

// Pow2RoundUp returns the smallest power of two >= x, or 1 when x <= 1.
// The result wraps to zero (or the sign bit for signed T) when it does not
// fit in T.
func Pow2RoundUp[T Integers](x T) T {
	if x <= 1 {
		return 1
	}
	return T(1) << bits.Len64(uint64(x-1))
}

// Pow2RoundDown returns the largest power of two <= x, or 0 when x <= 0.
func Pow2RoundDown[T Integers](x T) T {
	if x <= 0 {
		return 0
	}
	return T(1) << (bits.Len64(uint64(x)) - 1)
}

// RoundToMultiple returns the smallest v >= x with v%m == 0.
// For m <= 0 it returns x unchanged.
func RoundToMultiple[T Integers](x, m T) T {
	if m <= 0 {
		return x
	}
	r := x % m
	switch {
	case r == 0:
		return x
	case r < 0:
		// Truncated remainder: x - r is already the next multiple up.
		return x - r
	default:
		return x + (m - r)
	}
}

// RoundToMultipleOfPow2 rounds x up to a multiple of p, which must be a
// power of two. Other values of p still compute (x+p-1) &^ (p-1).
func RoundToMultipleOfPow2[T Integers](x, p T) T {
	return (x + p - 1) &^ (p - 1)
}
