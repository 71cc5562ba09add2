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

/*
Package sorting implements the serial and parallel integer sorting
routines exercised by the benchmark harness.


Overview

There are four algorithms: bubble sort, quicksort, merge sort and
insertion sort. Every routine is non-destructive: it receives a
read-only view of the input and returns a newly allocated slice
holding the same values in ascending order.

Each algorithm has a serial and a parallel version. The pair is
selected with an Algorithm and a Version and dispatched through Sort.


Parallel strategies

Inputs of ParallelThreshold elements or fewer are always sorted with
the serial routine.

Bubble and insertion sort use chunk partitioning. The input is cut
into `threads` contiguous chunks of ceil(n/threads) elements; the
chunks are sorted on a ThreadPool of `threads` workers and the sorted
chunks are folded left to right with Merge:

    merge(merge(merge(chunk0, chunk1), chunk2), chunk3)

Quicksort and merge sort use recursive fan-out. At every level the
worker budget is halved; one half of the input is offloaded to a
fresh two-worker ThreadPool while the other half is sorted inline by
the calling goroutine with the same halved budget. A level whose
budget is 1 or less falls back to the serial routine, so the budget
limits the depth of fan-out rather than the total number of
goroutines alive at once.

The result of every parallel routine is identical to the result of
its serial counterpart, independently of scheduling.


Failures

A panic inside a task running on a ThreadPool is converted into an
error wrapping ErrWorkerPanic and returned to the goroutine waiting on
that task. Nothing is retried.
*/
package sorting
