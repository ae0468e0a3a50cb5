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
	"io"
	"math"
	"time"

	"github.com/ajroetker/go-fmath/fmath"
	"github.com/ajroetker/go-fmath/fmath/contrib/workerpool"
)

const benchRepeats = 10

// timeTrial runs fn repeats times per trial and returns the fastest trial in
// seconds.
func timeTrial(fn func(), trials, repeats int) float64 {
	best := math.Inf(1)
	for range max(trials, 1) {
		start := time.Now()
		for range max(repeats, 1) {
			fn()
		}
		best = min(best, time.Since(start).Seconds())
	}
	return best
}

// unitValue returns the S that reads as 1: 1.0 for floats and half, the
// integer 1 otherwise.
func unitValue[S fmath.Numbers]() S {
	if fmath.TypeOf[S]() == fmath.TypeHalf {
		one := fmath.Float16One
		return S(one)
	}
	return S(1)
}

// benchmarkConvert times ConvertSlice over opts.iterations copies of a
// single value and prints the throughput. The last element is checked
// against the scalar conversion.
func benchmarkConvert[S, D fmath.Numbers](c *checker, opts options, w io.Writer, pool *workerpool.Pool) {
	size := max(opts.iterations, 1)
	val := unitValue[S]()
	src := make([]S, size)
	for i := range src {
		src[i] = val
	}
	dst := make([]D, size)

	convert := func() { fmath.ConvertSlice(dst, src) }
	label := ""
	if pool != nil {
		convert = func() { fmath.ConvertSliceParallel(pool, dst, src) }
		label = " (parallel)"
	}

	secs := timeTrial(convert, opts.trials, benchRepeats) / benchRepeats
	mvals := float64(size) / 1e6 / secs
	fmt.Fprintf(w, "Benchmark conversion of %6s -> %6s : %7.1f Mvals/sec%s\n",
		fmath.TypeOf[S](), fmath.TypeOf[D](), mvals, label)
	c.log.Debug().
		Str("pair", fmath.TypeOf[S]().String()+"->"+fmath.TypeOf[D]().String()).
		Bool("parallel", pool != nil).
		Float64("mvals_per_sec", mvals).
		Msg("benchmark")

	checkEqual(c, fmt.Sprintf("ConvertSlice %s -> %s last element", fmath.TypeOf[S](), fmath.TypeOf[D]()),
		dst[size-1], fmath.ConvertType[S, D](val))
}

// runBenchmarks prints one throughput line per conversion pair, plus the
// parallel lines when pool has more than one worker.
func runBenchmarks(c *checker, opts options, w io.Writer, pool *workerpool.Pool) {
	benchmarkConvert[uint8, float32](c, opts, w, nil)
	benchmarkConvert[float32, uint8](c, opts, w, nil)
	benchmarkConvert[uint16, float32](c, opts, w, nil)
	benchmarkConvert[float32, uint16](c, opts, w, nil)
	benchmarkConvert[fmath.Float16, float32](c, opts, w, nil)
	benchmarkConvert[float32, fmath.Float16](c, opts, w, nil)
	benchmarkConvert[float32, float32](c, opts, w, nil)

	if pool.NumWorkers() > 1 {
		benchmarkConvert[uint16, float32](c, opts, w, pool)
		benchmarkConvert[float32, fmath.Float16](c, opts, w, pool)
	}
}
