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

package bench

import (
	"math"
	"time"

	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"
)

// FailedTime is the ExecutionTime of a failed trial.
var FailedTime = math.Inf(1)

// TrialRecord is the outcome of one timed sort invocation.
//
// If Error is set, ExecutionTime is FailedTime and IsSorted is false.
type TrialRecord struct {
	Algorithm   sorting.Algorithm
	Version     sorting.Version
	DatasetSize int
	DatasetType dataset.Shape
	NumThreads  int
	// ExecutionTime is the wall-clock duration
	// of the invocation in seconds.
	ExecutionTime float64
	IsSorted      bool
	// Timestamp is the time the record was
	// created, in seconds since the Unix epoch.
	Timestamp float64
	Error     string
}

// Failed reports whether the trial failed.
func (r *TrialRecord) Failed() bool {
	return math.IsInf(r.ExecutionTime, 1)
}

// Outcome is the result of one sort invocation:
// either Output and Elapsed, or Err.
type Outcome struct {
	Output  []int
	Elapsed time.Duration
	Err     error
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
