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
	"errors"
	"fmt"
)

var (
	// ErrThreads is returned by parallel routines
	// when they are given fewer than one thread.
	ErrThreads = errors.New("sorting: thread count must be at least 1")

	// ErrWorkerPanic is wrapped by the error returned
	// from a ThreadPool task that panicked.
	ErrWorkerPanic = errors.New("sorting: worker panicked")
)

// SerialFunc returns a sorted copy of its input.
type SerialFunc func(in []int) []int

// ParallelFunc returns a sorted copy of its input
// using at most the given worker budget.
type ParallelFunc func(in []int, threads int) ([]int, error)

type implementation struct {
	serial   SerialFunc
	parallel ParallelFunc
}

var implementations = [numAlgorithms]implementation{
	AlgBubble:    {serial: BubbleSort, parallel: ParallelBubbleSort},
	AlgQuick:     {serial: QuickSort, parallel: ParallelQuickSort},
	AlgMerge:     {serial: MergeSort, parallel: ParallelMergeSort},
	AlgInsertion: {serial: InsertionSort, parallel: ParallelInsertionSort},
}

// Sort runs the given algorithm and version on in.
// The threads argument is ignored by serial versions.
func Sort(a Algorithm, v Version, in []int, threads int) ([]int, error) {
	if !a.valid() {
		return nil, fmt.Errorf("sorting: unknown algorithm %d", a)
	}
	impl := &implementations[a]
	switch v {
	case Serial:
		return impl.serial(in), nil
	case Parallel:
		return impl.parallel(in, threads)
	}
	return nil, fmt.Errorf("sorting: unknown version %d", v)
}
