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
	"errors"
	"strings"
	"testing"

	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"

	"golang.org/x/exp/slices"
)

func TestDecodeConfig(t *testing.T) {
	src := `
sizes: [10, 2000]
types: [reverse_sorted, duplicates]
algorithms: [quick, merge]
samples: 2
max_threads: 8
thread_counts: [2, 4, 8, 16]
`
	c, err := DecodeConfig(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(c.Sizes, []int{10, 2000}) {
		t.Errorf("sizes = %v", c.Sizes)
	}
	if !slices.Equal(c.Types, []dataset.Shape{dataset.ReverseSorted, dataset.Duplicates}) {
		t.Errorf("types = %v", c.Types)
	}
	if !slices.Equal(c.Algorithms, []sorting.Algorithm{sorting.AlgQuick, sorting.AlgMerge}) {
		t.Errorf("algorithms = %v", c.Algorithms)
	}
	if c.Seed != dataset.DefaultSeed {
		t.Errorf("seed = %d, want default", c.Seed)
	}
	if got := c.Threads(); !slices.Equal(got, []int{2, 4, 8}) {
		t.Errorf("Threads() = %v", got)
	}
	// 2 sizes * 2 types * 2 samples * 2 algorithms, serial + 3 thread counts
	if got := c.PlannedTrials(); got != 16*4 {
		t.Errorf("PlannedTrials() = %d, want 64", got)
	}
}

func TestDecodeConfigJSON(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader(`{"sizes": [5], "samples": 1, "seed": 9}`))
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if !slices.Equal(c.Types, def.Types) || c.MaxThreads != def.MaxThreads {
		t.Errorf("missing fields should keep defaults: %+v", c)
	}
	if c.Seed != 9 || c.Samples != 1 {
		t.Errorf("decoded %+v", c)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	testcases := []struct {
		src  string
		want error
	}{
		{"types: [random, zigzag]\n", dataset.ErrUnknownShape},
		{"samples: 0\n", ErrConfig},
		{"sizes: []\n", ErrConfig},
		{"sizes: [-4]\n", ErrConfig},
		{"max_threads: 0\n", ErrConfig},
		{"thread_counts: [0]\n", ErrConfig},
		{"samplez: 3\n", nil},
		{"algorithms: [shell]\n", nil},
	}
	for _, tc := range testcases {
		_, err := DecodeConfig(strings.NewReader(tc.src))
		if err == nil {
			t.Errorf("%q: expected an error", tc.src)
			continue
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%q: got %v, want %v", tc.src, err, tc.want)
		}
	}
}

func TestPlannedTrials(t *testing.T) {
	testcases := []struct {
		max  int
		want int
	}{
		// 3 sizes * 2 types * 3 samples * 4 algorithms = 72 serial
		{1, 72},
		{2, 72 * 2},
		{3, 72 * 2},
		{4, 72 * 3},
		{64, 72 * 3},
	}
	for _, tc := range testcases {
		c := DefaultConfig()
		c.MaxThreads = tc.max
		if got := c.PlannedTrials(); got != tc.want {
			t.Errorf("max_threads %d: PlannedTrials() = %d, want %d", tc.max, got, tc.want)
		}
	}

	c := Config{Sizes: []int{1}, Types: []dataset.Shape{dataset.Sorted}, Samples: 1, MaxThreads: 4}
	if got := c.PlannedTrials(); got != 4*3 {
		t.Errorf("zero-value thread counts: PlannedTrials() = %d, want 12", got)
	}
}
