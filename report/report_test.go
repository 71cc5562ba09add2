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

package report

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/SnellerInc/sortbench/bench"
	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"
)

func trial(a sorting.Algorithm, v sorting.Version, size int, shape dataset.Shape, threads int, secs float64) bench.TrialRecord {
	return bench.TrialRecord{
		Algorithm:     a,
		Version:       v,
		DatasetSize:   size,
		DatasetType:   shape,
		NumThreads:    threads,
		ExecutionTime: secs,
		IsSorted:      true,
	}
}

func testTrials() []bench.TrialRecord {
	return []bench.TrialRecord{
		trial(sorting.AlgMerge, sorting.Serial, 1000, dataset.Random, 1, 2),
		trial(sorting.AlgMerge, sorting.Serial, 1000, dataset.Sorted, 1, 2),
		trial(sorting.AlgMerge, sorting.Parallel, 1000, dataset.Random, 2, 1),
		trial(sorting.AlgMerge, sorting.Parallel, 1000, dataset.Random, 4, 0.5),
		trial(sorting.AlgMerge, sorting.Parallel, 1000, dataset.Sorted, 4, bench.FailedTime),
		trial(sorting.AlgBubble, sorting.Serial, 100, dataset.Random, 1, 0.25),
	}
}

func render(t *testing.T, fn func(w io.Writer, trials []bench.TrialRecord) error, trials []bench.TrialRecord) string {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf, trials); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func lineWith(out, prefix string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return line
		}
	}
	return ""
}

func TestSerialVsParallel(t *testing.T) {
	out := render(t, SerialVsParallel, testTrials())
	// bubble sorts before merge
	if strings.Index(out, "BUBBLE:") > strings.Index(out, "MERGE:") {
		t.Errorf("algorithms out of order:\n%s", out)
	}
	if !strings.Contains(out, "  serial:\n    size 1000:") {
		t.Errorf("missing serial series:\n%s", out)
	}
	// the failed trial is ignored: (1+0.5)/2
	if !strings.Contains(out, "0.750000 s") {
		t.Errorf("missing parallel mean:\n%s", out)
	}
}

func TestSpeedup(t *testing.T) {
	out := render(t, Speedup, testTrials())
	line := lineWith(out, "size 1000:")
	if !strings.Contains(line, "2.667x") || !strings.Contains(line, "serial 2.000000s, parallel 0.750000s") {
		t.Errorf("unexpected speedup line %q", line)
	}
	if !strings.HasSuffix(line, strings.Repeat("#", BarWidth)) {
		t.Errorf("largest value should get a full bar: %q", line)
	}
	// bubble has no parallel trials
	if strings.Contains(out, "BUBBLE") {
		t.Errorf("unexpected bubble section:\n%s", out)
	}
}

func TestThreadScaling(t *testing.T) {
	out := render(t, ThreadScaling, testTrials())
	for _, want := range []string{"serial:", "2 threads:", "4 threads:"} {
		if lineWith(out, want) == "" {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if !strings.Contains(lineWith(out, "4 threads:"), "0.500000 s") {
		t.Errorf("4 threads:\n%s", out)
	}
}

func TestDatasetTypes(t *testing.T) {
	out := render(t, DatasetTypes, testTrials())
	out = out[strings.Index(out, "MERGE:"):]
	// random: (2+1+0.5)/3
	if !strings.Contains(lineWith(out, "random:"), "1.166667 s") {
		t.Errorf("random:\n%s", out)
	}
	// the sorted failure is dropped, leaving the serial trial
	if !strings.Contains(lineWith(out, "sorted:"), "2.000000 s") {
		t.Errorf("sorted:\n%s", out)
	}
}

func TestEmpty(t *testing.T) {
	failed := []bench.TrialRecord{
		trial(sorting.AlgQuick, sorting.Serial, 10, dataset.Random, 1, bench.FailedTime),
	}
	var buf bytes.Buffer
	if err := All(&buf, failed); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "no valid trials"); n != 4 {
		t.Errorf("got %d empty notices:\n%s", n, buf.String())
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteError(t *testing.T) {
	if err := All(failWriter{}, testTrials()); !errors.Is(err, errWrite) {
		t.Fatalf("got %v", err)
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		v, peak float64
		want    int
	}{
		{1, 1, BarWidth},
		{0.5, 1, BarWidth / 2},
		{0.0001, 1, 1},
		{0, 1, 0},
		{1, 0, 0},
	}
	for _, c := range cases {
		if got := len(bar(c.v, c.peak)); got != c.want {
			t.Errorf("bar(%g, %g) has length %d, want %d", c.v, c.peak, got, c.want)
		}
	}
}

func TestMeanRatio(t *testing.T) {
	if m := mean([]int{1, 2, 3, 4}); m != 2.5 {
		t.Errorf("mean = %g", m)
	}
	if m := mean([]float64(nil)); m != 0 {
		t.Errorf("mean of nothing = %g", m)
	}
	if r := ratio(3, 0); r != 0 {
		t.Errorf("ratio by zero = %g", r)
	}
}
