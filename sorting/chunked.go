// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package sorting

import (
	"fmt"
)

// ParallelThreshold is the input length at or below which
// the parallel routines run the serial algorithm directly.
const ParallelThreshold = 1000

// ParallelBubbleSort sorts chunks of in with BubbleSort
// on a pool of the given number of threads and merges them.
func ParallelBubbleSort(in []int, threads int) ([]int, error) {
	return chunked(in, threads, ParallelThreshold, BubbleSort)
}

// ParallelInsertionSort sorts chunks of in with InsertionSort
// on a pool of the given number of threads and merges them.
func ParallelInsertionSort(in []int, threads int) ([]int, error) {
	return chunked(in, threads, ParallelThreshold, InsertionSort)
}

func chunked(in []int, threads, threshold int, sort SerialFunc) ([]int, error) {
	if threads < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrThreads, threads)
	}
	if len(in) <= threshold {
		return sort(in), nil
	}

	pool := NewThreadPool(threads)
	defer pool.Close()

	parts := split(in, threads)
	tasks := make([]*Task, len(parts))
	for i := range parts {
		part := parts[i]
		tasks[i] = pool.Enqueue(func() ([]int, error) {
			return sort(part), nil
		})
	}

	// wait for every chunk before folding,
	// even if an earlier one has failed
	sorted := make([][]int, len(tasks))
	var err error
	for i := range tasks {
		out, terr := tasks[i].Wait()
		if terr != nil && err == nil {
			err = terr
		}
		sorted[i] = out
	}
	if err != nil {
		return nil, err
	}

	var out []int
	for i := range sorted {
		out = Merge(out, sorted[i])
	}
	return out, nil
}

// split cuts in into exactly n contiguous views of
// ceil(len(in)/n) elements; trailing views may be
// shorter or empty.
func split(in []int, n int) [][]int {
	size := (len(in) + n - 1) / n
	parts := make([][]int, n)
	for i := range parts {
		start := i * size
		if start > len(in) {
			start = len(in)
		}
		end := start + size
		if end > len(in) {
			end = len(in)
		}
		parts[i] = in[start:end:end]
	}
	return parts
}
