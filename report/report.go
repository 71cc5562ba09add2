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

// Package report prints console analyses of benchmark trials:
// serial against parallel times, parallel speedup,
// scaling with the thread count and the effect of
// the dataset shape. Failed trials are ignored.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/SnellerInc/sortbench/bench"
	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// BarWidth is the length of the bar drawn for the largest value of a series.
const BarWidth = 40

type number interface {
	constraints.Integer | constraints.Float
}

func mean[T number](v []T) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += float64(x)
	}
	return sum / float64(len(v))
}

func ratio[T number](a, b T) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	k := maps.Keys(m)
	slices.Sort(k)
	return k
}

func bar(v, peak float64) string {
	if v <= 0 || peak <= 0 {
		return ""
	}
	n := int(math.Round(ratio(v, peak) * BarWidth))
	if n < 1 {
		n = 1
	} else if n > BarWidth {
		n = BarWidth
	}
	return strings.Repeat("#", n)
}

// times groups the execution times of valid
// trials by key; trials for which key reports
// false are left out.
func times[K comparable](trials []bench.TrialRecord, key func(t *bench.TrialRecord) (K, bool)) map[K][]float64 {
	out := make(map[K][]float64)
	for i := range trials {
		t := &trials[i]
		if t.Failed() {
			continue
		}
		if k, ok := key(t); ok {
			out[k] = append(out[k], t.ExecutionTime)
		}
	}
	return out
}

func algorithms(trials []bench.TrialRecord) []sorting.Algorithm {
	set := times(trials, func(t *bench.TrialRecord) (sorting.Algorithm, bool) {
		return t.Algorithm, true
	})
	return sortedKeys(set)
}

// row is one labeled line of a series.
type row struct {
	label string
	value float64
	extra string
}

func peak(rows []row) float64 {
	var p float64
	for i := range rows {
		if rows[i].value > p {
			p = rows[i].value
		}
	}
	return p
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

func section(w io.Writer, a sorting.Algorithm) {
	fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(a.String()))
}

// series prints rows with bars scaled to the largest value.
func series(w io.Writer, indent, format string, rows []row) {
	p := peak(rows)
	for i := range rows {
		r := &rows[i]
		fmt.Fprintf(w, "%s%-18s "+format+" %s%s\n", indent, r.label+":", r.value, r.extra, bar(r.value, p))
	}
}

func empty(w io.Writer, trials []bench.TrialRecord) bool {
	for i := range trials {
		if !trials[i].Failed() {
			return false
		}
	}
	fmt.Fprintln(w, "no valid trials")
	return true
}

// SerialVsParallel prints the mean time of every
// algorithm and version for each dataset size.
func SerialVsParallel(dst io.Writer, trials []bench.TrialRecord) error {
	w := bufio.NewWriter(dst)
	heading(w, "Serial vs parallel")
	if empty(w, trials) {
		return w.Flush()
	}
	for _, a := range algorithms(trials) {
		section(w, a)
		for _, v := range sorting.Versions() {
			bySize := times(trials, func(t *bench.TrialRecord) (int, bool) {
				return t.DatasetSize, t.Algorithm == a && t.Version == v
			})
			if len(bySize) == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s:\n", v)
			var rows []row
			for _, size := range sortedKeys(bySize) {
				rows = append(rows, row{
					label: fmt.Sprintf("size %d", size),
					value: mean(bySize[size]),
				})
			}
			series(w, "    ", "%10.6f s ", rows)
		}
	}
	return w.Flush()
}

// Speedup prints, for every algorithm and dataset size,
// the serial mean time divided by the parallel mean time
// taken over all thread counts.
func Speedup(dst io.Writer, trials []bench.TrialRecord) error {
	w := bufio.NewWriter(dst)
	heading(w, "Speedup (serial/parallel)")
	if empty(w, trials) {
		return w.Flush()
	}
	for _, a := range algorithms(trials) {
		serial := times(trials, func(t *bench.TrialRecord) (int, bool) {
			return t.DatasetSize, t.Algorithm == a && t.Version == sorting.Serial
		})
		parallel := times(trials, func(t *bench.TrialRecord) (int, bool) {
			return t.DatasetSize, t.Algorithm == a && t.Version == sorting.Parallel
		})
		var rows []row
		for _, size := range sortedKeys(serial) {
			pt, ok := parallel[size]
			if !ok {
				continue
			}
			s, p := mean(serial[size]), mean(pt)
			rows = append(rows, row{
				label: fmt.Sprintf("size %d", size),
				value: ratio(s, p),
				extra: fmt.Sprintf("(serial %.6fs, parallel %.6fs) ", s, p),
			})
		}
		if len(rows) == 0 {
			continue
		}
		section(w, a)
		series(w, "  ", "%8.3fx ", rows)
	}
	return w.Flush()
}

// ThreadScaling prints the mean parallel time of every
// algorithm per thread count, after the serial baseline.
func ThreadScaling(dst io.Writer, trials []bench.TrialRecord) error {
	w := bufio.NewWriter(dst)
	heading(w, "Scaling by thread count")
	if empty(w, trials) {
		return w.Flush()
	}
	for _, a := range algorithms(trials) {
		byThreads := times(trials, func(t *bench.TrialRecord) (int, bool) {
			return t.NumThreads, t.Algorithm == a && t.Version == sorting.Parallel
		})
		if len(byThreads) == 0 {
			continue
		}
		var rows []row
		serial := times(trials, func(t *bench.TrialRecord) (sorting.Version, bool) {
			return t.Version, t.Algorithm == a && t.Version == sorting.Serial
		})
		if st, ok := serial[sorting.Serial]; ok {
			rows = append(rows, row{label: "serial", value: mean(st)})
		}
		for _, n := range sortedKeys(byThreads) {
			rows = append(rows, row{
				label: fmt.Sprintf("%d threads", n),
				value: mean(byThreads[n]),
			})
		}
		section(w, a)
		series(w, "  ", "%10.6f s ", rows)
	}
	return w.Flush()
}

// DatasetTypes prints the mean time of every
// algorithm per dataset shape, over both versions.
func DatasetTypes(dst io.Writer, trials []bench.TrialRecord) error {
	w := bufio.NewWriter(dst)
	heading(w, "Performance by dataset type")
	if empty(w, trials) {
		return w.Flush()
	}
	for _, a := range algorithms(trials) {
		byShape := times(trials, func(t *bench.TrialRecord) (dataset.Shape, bool) {
			return t.DatasetType, t.Algorithm == a
		})
		var rows []row
		for _, s := range sortedKeys(byShape) {
			rows = append(rows, row{label: s.String(), value: mean(byShape[s])})
		}
		section(w, a)
		series(w, "  ", "%10.6f s ", rows)
	}
	return w.Flush()
}

// All prints every analysis in turn.
func All(w io.Writer, trials []bench.TrialRecord) error {
	for _, fn := range []func(io.Writer, []bench.TrialRecord) error{
		SerialVsParallel,
		Speedup,
		ThreadScaling,
		DatasetTypes,
	} {
		if err := fn(w, trials); err != nil {
			return err
		}
	}
	return nil
}
