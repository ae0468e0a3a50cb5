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

// ProcessWithTail walks size elements in blocks of lanes.
//
// It calls:
//   - fullFn(offset) for each full block (offset is the starting index)
//   - tailFn(offset, count) once for the remainder, if any
//
// Example:
//
//	fmath.ProcessWithTail(len(src), 8,
//	    func(offset int) {
//	        // convert src[offset : offset+8]
//	    },
//	    func(offset, count int) {
//	        // convert the last count elements one at a time
//	    },
//	)
func ProcessWithTail(size, lanes int, fullFn func(offset int), tailFn func(offset, count int)) {
	if lanes <= 0 {
		if size > 0 {
			tailFn(0, size)
		}
		return
	}

	blocks := size / lanes
	for i := range blocks {
		fullFn(i * lanes)
	}

	if remaining := size % lanes; remaining > 0 {
		tailFn(blocks*lanes, remaining)
	}
}

// AlignedSize rounds size up to the next multiple of MaxLanes[T]().
// Useful for sizing chunks handed to separate workers.
func AlignedSize[T Numbers](size int) int {
	lanes := MaxLanes[T]()
	if lanes <= 0 {
		return size
	}
	return RoundToMultiple(size, lanes)
}
