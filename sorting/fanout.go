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

// fanout holds the parameters of the recursive
// fan-out strategy used by quicksort and merge sort.
type fanout struct {
	threshold int
	// visit, if non-nil, is called at every recursion
	// level with the input length and the worker budget.
	// It may be called from several goroutines at once.
	visit func(n, budget int)
}

var defaultFanout = fanout{threshold: ParallelThreshold}

// ParallelQuickSort sorts in with quicksort, offloading the
// lower partition of every level to a worker until the budget
// given by threads is exhausted.
func ParallelQuickSort(in []int, threads int) ([]int, error) {
	if threads < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrThreads, threads)
	}
	return defaultFanout.quick(in, threads)
}

// ParallelMergeSort sorts in with merge sort, offloading the
// left half of every level to a worker until the budget given
// by threads is exhausted.
func ParallelMergeSort(in []int, threads int) ([]int, error) {
	if threads < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrThreads, threads)
	}
	return defaultFanout.merge(in, threads)
}

func (f *fanout) quick(in []int, budget int) ([]int, error) {
	if f.visit != nil {
		f.visit(len(in), budget)
	}
	if len(in) <= f.threshold || budget <= 1 {
		return QuickSort(in), nil
	}

	less, equal, greater := partition(in)
	half := budget / 2
	left, right, err := f.fork(less, greater, half, f.quick)
	if err != nil {
		return nil, err
	}
	return concat(left, equal, right), nil
}

func (f *fanout) merge(in []int, budget int) ([]int, error) {
	if f.visit != nil {
		f.visit(len(in), budget)
	}
	if len(in) <= f.threshold || budget <= 1 {
		return MergeSort(in), nil
	}

	mid := len(in) / 2
	half := budget / 2
	left, right, err := f.fork(in[:mid:mid], in[mid:], half, f.merge)
	if err != nil {
		return nil, err
	}
	return Merge(left, right), nil
}

// fork sorts lo on a fresh two-worker pool and hi
// inline, both with the given budget, and returns
// both results once the offloaded half is done.
func (f *fanout) fork(lo, hi []int, budget int, sort func([]int, int) ([]int, error)) ([]int, []int, error) {
	pool := NewThreadPool(2)
	defer pool.Close()

	task := pool.Enqueue(func() ([]int, error) {
		return sort(lo, budget)
	})
	right, rerr := sort(hi, budget)
	left, lerr := task.Wait()
	if lerr != nil {
		return nil, nil, lerr
	}
	if rerr != nil {
		return nil, nil, rerr
	}
	return left, right, nil
}
