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

package main

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ajroetker/go-fmath/fmath"
	"github.com/ajroetker/go-fmath/fmath/contrib/workerpool"
)

// checker counts assertions and logs the failing ones. A failed check never
// stops the run.
type checker struct {
	log      zerolog.Logger
	checks   int
	failures int
}

func newChecker(logger zerolog.Logger) *checker {
	return &checker{log: logger}
}

func (c *checker) assert(ok bool, format string, args ...any) bool {
	c.checks++
	if !ok {
		c.failures++
		c.log.Error().Msgf("check failed: "+format, args...)
	}
	return ok
}

func checkEqual[T comparable](c *checker, what string, got, want T) bool {
	return c.assert(got == want, "%s: got %v, want %v", what, got, want)
}

// checkApprox compares within the absolute or relative tolerance the
// original assertion macros used.
func checkApprox(c *checker, what string, got, want float64) bool {
	return c.assert(scalar.EqualWithinAbsOrRel(got, want, 1e-6, 1e-6), "%s: got %g, want approx %g", what, got, want)
}

func checkIntHelpers(c *checker) {
	c.log.Info().Msg("int helpers")

	for i := 1; i < 1<<30; i *= 2 {
		c.assert(fmath.IsPow2(i), "IsPow2(%d)", i)
		if i > 1 {
			c.assert(!fmath.IsPow2(i+1), "!IsPow2(%d)", i+1)
		}
	}
	c.assert(fmath.IsPow2(0), "IsPow2(0)")
	c.assert(!fmath.IsPow2(-1), "!IsPow2(-1)")
	c.assert(!fmath.IsPow2(-2), "!IsPow2(-2)")

	for i := uint64(1); i < 1<<30; i *= 2 {
		c.assert(fmath.IsPow2(i), "IsPow2(uint64(%d))", i)
		if i > 1 {
			c.assert(!fmath.IsPow2(i+1), "!IsPow2(uint64(%d))", i+1)
		}
	}
	c.assert(fmath.IsPow2(uint32(0)), "IsPow2(uint32(0))")

	for x, want := range map[int]int{4: 4, 5: 8, 6: 8, 7: 8, 8: 8} {
		checkEqual(c, fmt.Sprintf("Pow2RoundUp(%d)", x), fmath.Pow2RoundUp(x), want)
	}
	for x, want := range map[int]int{4: 4, 5: 4, 6: 4, 7: 4, 8: 8} {
		checkEqual(c, fmt.Sprintf("Pow2RoundDown(%d)", x), fmath.Pow2RoundDown(x), want)
	}
	for x, want := range []int{0, 5, 5, 5, 5, 5, 10} {
		checkEqual(c, fmt.Sprintf("RoundToMultiple(%d, 5)", x), fmath.RoundToMultiple(x, 5), want)
	}
	checkEqual(c, "RoundToMultiple(uint64(5), 5)", fmath.RoundToMultiple(uint64(5), 5), 5)
	checkEqual(c, "RoundToMultiple(uint64(6), 5)", fmath.RoundToMultiple(uint64(6), 5), 10)
	for x, want := range []int{0, 4, 4, 4, 4, 8} {
		checkEqual(c, fmt.Sprintf("RoundToMultipleOfPow2(%d, 4)", x), fmath.RoundToMultipleOfPow2(x, 4), want)
		checkEqual(c, fmt.Sprintf("RoundToMultipleOfPow2(uint64(%d), 4)", x), fmath.RoundToMultipleOfPow2(uint64(x), 4), uint64(want))
	}
}

func checkMathFunctions(c *checker, opts options) {
	c.log.Info().Msg("math functions")

	floors := []struct {
		f    float32
		want int32
	}{
		{0, 0}, {-0.999, -1}, {-1, -1}, {-1.001, -2}, {0.999, 0}, {1, 1}, {1.001, 1},
	}
	for _, tt := range floors {
		checkEqual(c, fmt.Sprintf("IFloor(%g)", tt.f), fmath.IFloor(tt.f), tt.want)
	}

	fracs := []struct {
		f    float32
		i    int32
		frac float64
	}{
		{0, 0, 0}, {-0.999, -1, 0.001}, {-1, -1, 0}, {-1.001, -2, 0.999},
		{0.999, 0, 0.999}, {1, 1, 0}, {1.001, 1, 0.001},
	}
	for _, tt := range fracs {
		i, frac := fmath.FloorFrac(tt.f)
		checkEqual(c, fmt.Sprintf("FloorFrac(%g) int", tt.f), i, tt.i)
		checkApprox(c, fmt.Sprintf("FloorFrac(%g) frac", tt.f), float64(frac), tt.frac)
	}

	checkEqual(c, "Sign(3.1)", fmath.Sign(float32(3.1)), 1)
	checkEqual(c, "Sign(-3.1)", fmath.Sign(float32(-3.1)), -1)
	checkEqual(c, "Sign(0)", fmath.Sign(float32(0)), 0)

	if opts.verbose {
		x := float32(1.1)
		var sink int32
		const reps = 1 << 20
		t := timeTrial(func() {
			for range reps {
				sink += fmath.IFloor(x)
			}
		}, opts.trials, 1)
		c.log.Debug().Float64("ns_per_op", t/reps*1e9).Int32("sink", sink).Msg("IFloor")
		t = timeTrial(func() {
			for range reps {
				i, f := fmath.FloorFrac(x)
				sink += i + int32(f)
			}
		}, opts.trials, 1)
		c.log.Debug().Float64("ns_per_op", t/reps*1e9).Int32("sink", sink).Msg("FloorFrac")
	}
}

// roundTripInts converts every T in [lo, hi] to F and back and expects the
// original value.
func roundTripInts[T, F fmath.Numbers](c *checker, lo, hi int64) {
	c.log.Info().Msgf("round trip convert %s/%s/%s", fmath.TypeOf[T](), fmath.TypeOf[F](), fmath.TypeOf[T]())
	bad := 0
	for i := lo; i <= hi; i++ {
		in := T(i)
		f := fmath.ConvertType[T, F](in)
		out := fmath.ConvertType[F, T](f)
		if out != in {
			bad++
			c.log.Debug().Msgf("  convert %d -> %v -> %d", i, f, int64(out))
		}
	}
	c.assert(bad == 0, "%s/%s round trip: %d mismatches", fmath.TypeOf[T](), fmath.TypeOf[F](), bad)
}

// roundTripFloats walks [0, 1] in steps of 0.001 through F and back.
func roundTripFloats[T, F fmath.Numbers](c *checker, tolerance float64) {
	c.log.Info().Msgf("round trip convert %s/%s/%s", fmath.TypeOf[T](), fmath.TypeOf[F](), fmath.TypeOf[T]())
	bad := 0
	for i := float32(0); i <= 1; i += 0.001 {
		in := T(i)
		f := fmath.ConvertType[T, F](in)
		out := fmath.ConvertType[F, T](f)
		if diff := math.Abs(float64(out) - float64(in)); diff > tolerance {
			bad++
			c.log.Debug().Msgf("  convert %v -> %v -> %v (diff = %g)", in, f, out, diff)
		}
	}
	c.assert(bad == 0, "%s/%s round trip: %d mismatches", fmath.TypeOf[T](), fmath.TypeOf[F](), bad)
}

func checkConvertMatrix(c *checker) {
	roundTripInts[int8, float32](c, math.MinInt8, math.MaxInt8)
	roundTripInts[uint8, float32](c, 0, math.MaxUint8)
	roundTripInts[uint8, uint16](c, 0, math.MaxUint8)
	roundTripInts[int16, float32](c, math.MinInt16, math.MaxInt16)
	roundTripInts[uint16, float32](c, 0, math.MaxUint16)
	roundTripFloats[float32, int32](c, 1e-6)
	roundTripFloats[float64, float32](c, 1e-6)
	roundTripFloats[float64, int64](c, 1e-6)
	roundTripFloats[float32, uint32](c, 1e-6)
}

// bin16 formats a half bit pattern as sign'exponent'mantissa.
func bin16(i uint16) string {
	s := fmt.Sprintf("%016b", i)
	return s[:1] + "'" + s[1:6] + "'" + s[6:]
}

// checkHalfAccuracy converts every half pattern to float32 and back in
// batch, and compares each element with the scalar codec and with an
// independent implementation.
func checkHalfAccuracy(c *checker) {
	const n = 1 << 16
	h := make([]fmath.Float16, n)
	for i := range h {
		h[i] = fmath.Float16(i)
	}
	f := make([]float32, n)
	fmath.ConvertSlice(f, h)
	h2 := make([]fmath.Float16, n)
	fmath.ConvertSlice(h2, f)

	wrong := 0
	for i := range h {
		if h[i].IsNaN() {
			if !math.IsNaN(float64(f[i])) || !h2[i].IsNaN() {
				wrong++
				c.log.Debug().Msgf("wrong %d 0b%s  NaN lost: f=%g back=%v", i, bin16(uint16(i)), f[i], h2[i])
			}
			continue
		}
		if h[i].IsInf() {
			if !math.IsInf(float64(f[i]), 0) || math.Signbit(float64(f[i])) != h[i].IsNegative() || h2[i] != h[i] {
				wrong++
				c.log.Debug().Msgf("wrong %d 0b%s  inf: f=%g back=%v", i, bin16(uint16(i)), f[i], h2[i])
			}
			continue
		}
		scalarF := h[i].Float32()
		scalarH := fmath.Float32ToFloat16(scalarF)
		ref := float16.Frombits(uint16(i)).Float32()
		if scalarF != f[i] || scalarF != ref || scalarH != h[i] || h2[i] != h[i] {
			wrong++
			c.log.Debug().Msgf("wrong %d 0b%s  h=%v, f=%g ref=%g", i, bin16(uint16(i)), h[i], f[i], ref)
		}
	}

	ev := c.log.Info()
	if wrong > 0 {
		ev = c.log.Error()
	}
	ev.Int("mismatches", wrong).Msg("half convert accuracy")
	c.assert(wrong == 0, "half convert accuracy: %d mismatches", wrong)
}

func checkBitRange(c *checker, pool *workerpool.Pool) {
	c.log.Info().Msg("bit range convert")
	tests := []struct {
		in, out uint
		x, want uint32
	}{
		{10, 16, 1023, 65535},
		{2, 8, 3, 255},
		{8, 8, 255, 255},
		{16, 10, 65535, 1023},
		{2, 20, 3, 1048575},
		{20, 2, 1048575, 3},
		{20, 21, 1048575, 2097151},
		{32, 32, 4294967295, 4294967295},
		{32, 16, 4294967295, 65535},
	}
	for _, tt := range tests {
		checkEqual(c, fmt.Sprintf("BitRangeConvert(%d, %d, %d)", tt.in, tt.out, tt.x),
			fmath.BitRangeConvert(tt.in, tt.out, tt.x), tt.want)
	}

	// Exhaustive sweeps against round(x * outMax / inMax). With an odd
	// inMax the quotient is never exactly a half.
	for _, w := range []struct{ in, out uint }{{16, 8}, {8, 16}, {16, 10}, {10, 16}, {12, 16}} {
		br := fmath.NewBitRange(w.in, w.out)
		n := 1 << w.in
		src := make([]uint32, n)
		for i := range src {
			src[i] = uint32(i)
		}
		dst := make([]uint32, n)
		pool.ParallelFor(n, func(start, end int) {
			br.ConvertSlice(dst[start:end], src[start:end])
		})

		inMax, outMax := uint64(n-1), uint64(1)<<w.out - 1
		bad := 0
		for i, got := range dst {
			if want := (2*uint64(i)*outMax + inMax) / (2 * inMax); uint64(got) != want {
				bad++
			}
		}
		c.assert(bad == 0, "BitRange %d->%d sweep: %d mismatches", w.in, w.out, bad)
	}
}

func checkInterpolate(c *checker) {
	c.log.Info().Msg("interpolate linear")

	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	knots2 := []float32{1, 2}
	for _, tt := range []struct{ x, want float32 }{
		{0, 1}, {0.25, 1.25}, {1, 2}, {-0.1, 1}, {1.1, 2}, {-inf, 1}, {inf, 2}, {nan, 1},
	} {
		checkEqual(c, fmt.Sprintf("InterpolateLinear(%g, knots2)", tt.x), fmath.InterpolateLinear(tt.x, knots2), tt.want)
	}

	knots4 := []float32{1, 2, 4, 6}
	strided := fmath.NewStrided([]float32{1, 0, 2, 0, 4, 0, 6, 0}, 4, 2)
	for _, tt := range []struct{ x, want float32 }{
		{-0.1, 1}, {0, 1}, {1.0 / 3.0, 2}, {0.5, 3}, {5.0 / 6.0, 5}, {1, 6}, {1.1, 6},
	} {
		checkEqual(c, fmt.Sprintf("InterpolateLinear(%g, knots4)", tt.x), fmath.InterpolateLinear(tt.x, knots4), tt.want)
		checkEqual(c, fmt.Sprintf("InterpolateLinear(%g, strided)", tt.x), fmath.InterpolateLinearSeq(tt.x, strided), tt.want)
	}
}
