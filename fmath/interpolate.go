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

// Sequence is a read-only indexed view of knot values.
type Sequence[T Floats] interface {
	Len() int
	At(i int) T
}

// Span is a contiguous Sequence backed by a slice.
type Span[T Floats] []T

func (s Span[T]) Len() int   { return len(s) }
func (s Span[T]) At(i int) T { return s[i] }

// Strided is a Sequence reading every stride-th element of data, starting
// at data[0]. It never copies.
type Strided[T Floats] struct {
	data   []T
	n      int
	stride int
}

// NewStrided returns a view of n elements of data spaced stride apart.
// A stride below 1 is treated as 1, and n is clamped to the number of
// elements data actually holds at that stride.
func NewStrided[T Floats](data []T, n, stride int) Strided[T] {
	stride = max(stride, 1)
	avail := 0
	if len(data) > 0 {
		avail = (len(data)-1)/stride + 1
	}
	return Strided[T]{data: data, n: min(max(n, 0), avail), stride: stride}
}

func (s Strided[T]) Len() int   { return s.n }
func (s Strided[T]) At(i int) T { return s.data[i*s.stride] }

// Stride returns the element stride of the view.
func (s Strided[T]) Stride() int { return s.stride }

// InterpolateLinear evaluates the piecewise-linear curve through knots,
// which are taken as equally spaced on [0, 1]. x is clamped to [0, 1] and
// NaN counts as 0.
//
// For example, with knots [1, 2, 4, 6]:
//
//	InterpolateLinear(0.5, knots) // 3
//	InterpolateLinear(1.1, knots) // 6
func InterpolateLinear[T Floats](x T, knots []T) T {
	return InterpolateLinearSeq[T](x, Span[T](knots))
}

// InterpolateLinearSeq is InterpolateLinear over any Sequence, such as a
// Strided view. A single knot is returned as is; no knots gives 0.
func InterpolateLinearSeq[T Floats, S Sequence[T]](x T, knots S) T {
	n := knots.Len()
	switch n {
	case 0:
		return 0
	case 1:
		return knots.At(0)
	}

	switch {
	case !(x > 0):
		x = 0
	case x > 1:
		x = 1
	}

	t := x * T(n-1)
	i := min(int(t), n-2)
	f := t - T(i)
	return knots.At(i)*(1-f) + knots.At(i+1)*f
}
