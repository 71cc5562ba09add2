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

	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SummaryRecord aggregates the valid trials sharing
// an algorithm, version, dataset size, dataset type
// and thread count.
type SummaryRecord struct {
	Algorithm   sorting.Algorithm
	Version     sorting.Version
	DatasetSize int
	DatasetType dataset.Shape
	NumThreads  int

	TimeMean float64
	// TimeStd is the sample standard deviation;
	// it is zero for groups with a single trial.
	TimeStd   float64
	TimeMin   float64
	TimeMax   float64
	AllSorted bool
}

type groupKey struct {
	algorithm sorting.Algorithm
	version   sorting.Version
	size      int
	shape     dataset.Shape
	threads   int
}

func (k *groupKey) less(o *groupKey) bool {
	if k.algorithm != o.algorithm {
		return k.algorithm.String() < o.algorithm.String()
	}
	if k.version != o.version {
		return k.version.String() < o.version.String()
	}
	if k.size != o.size {
		return k.size < o.size
	}
	if k.shape != o.shape {
		return k.shape.String() < o.shape.String()
	}
	return k.threads < o.threads
}

type group struct {
	times  []float64
	sorted bool
}

// Summarize groups the valid trials and computes timing
// statistics per group. Failed trials are ignored, so groups
// in which every trial failed do not appear in the result.
//
// Summaries are ordered by algorithm, version, size, dataset
// type (names compared alphabetically) and thread count.
// Statistics are rounded to microseconds.
func Summarize(trials []TrialRecord) []SummaryRecord {
	groups := make(map[groupKey]*group)
	for i := range trials {
		t := &trials[i]
		if t.Failed() {
			continue
		}
		k := groupKey{
			algorithm: t.Algorithm,
			version:   t.Version,
			size:      t.DatasetSize,
			shape:     t.DatasetType,
			threads:   t.NumThreads,
		}
		g := groups[k]
		if g == nil {
			g = &group{sorted: true}
			groups[k] = g
		}
		g.times = append(g.times, t.ExecutionTime)
		g.sorted = g.sorted && t.IsSorted
	}
	if len(groups) == 0 {
		return nil
	}

	keys := maps.Keys(groups)
	slices.SortFunc(keys, func(a, b groupKey) bool { return a.less(&b) })

	out := make([]SummaryRecord, len(keys))
	for i := range keys {
		k := &keys[i]
		g := groups[*k]
		mean, std, min, max := stats(g.times)
		out[i] = SummaryRecord{
			Algorithm:   k.algorithm,
			Version:     k.version,
			DatasetSize: k.size,
			DatasetType: k.shape,
			NumThreads:  k.threads,
			TimeMean:    round6(mean),
			TimeStd:     round6(std),
			TimeMin:     round6(min),
			TimeMax:     round6(max),
			AllSorted:   g.sorted,
		}
	}
	return out
}

// stats returns the mean, sample standard deviation,
// minimum and maximum of a non-empty slice.
func stats(x []float64) (mean, std, min, max float64) {
	min, max = x[0], x[0]
	sum := 0.0
	for _, v := range x {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean = sum / float64(len(x))
	if len(x) > 1 {
		ss := 0.0
		for _, v := range x {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(len(x)-1))
	}
	return mean, std, min, max
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
