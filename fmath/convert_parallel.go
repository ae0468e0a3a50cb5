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

// MinParallelConvert is the element count below which ConvertSliceParallel
// stays on the calling goroutine.
const MinParallelConvert = 1 << 16

// BatchRunner runs fn over [0, n) in batches of batchSize, possibly
// concurrently. *workerpool.Pool implements it.
type BatchRunner interface {
	ParallelForBatched(n, batchSize int, fn func(start, end int))
}

// ConvertSliceParallel is ConvertSlice split into block-aligned chunks run
// by r. The output is identical to ConvertSlice. With a nil runner or fewer
// than MinParallelConvert elements it converts sequentially.
//
// Example:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	fmath.ConvertSliceParallel(pool, dst, src)
func ConvertSliceParallel[S, D Numbers](r BatchRunner, dst []D, src []S) int {
	n := min(len(dst), len(src))
	if r == nil || n < MinParallelConvert {
		return ConvertSlice(dst, src)
	}

	// A byte-lane multiple is a whole number of registers for any S and D.
	chunk := AlignedSize[uint8](max(n/(4*parallelism(r)), MinParallelConvert/4))
	r.ParallelForBatched(n, chunk, func(start, end int) {
		ConvertSlice(dst[start:end], src[start:end])
	})
	return n
}

// parallelism returns the worker count of r when it reports one.
func parallelism(r BatchRunner) int {
	if w, ok := r.(interface{ NumWorkers() int }); ok && w.NumWorkers() > 0 {
		return w.NumWorkers()
	}
	return 1
}
