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

// Package bench runs sorting benchmark experiments
// and summarizes their results.
package bench

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"

	"sigs.k8s.io/yaml"
)

// ErrConfig is wrapped by configuration validation errors.
var ErrConfig = errors.New("bench: invalid configuration")

// Config describes an experiment matrix.
type Config struct {
	// Sizes are the dataset lengths to benchmark.
	Sizes []int `json:"sizes"`
	// Types are the dataset shapes to benchmark.
	Types []dataset.Shape `json:"types"`
	// Algorithms restricts the benchmarked algorithms;
	// all of them are used if it is empty.
	Algorithms []sorting.Algorithm `json:"algorithms,omitempty"`
	// Samples is the number of datasets
	// generated per size and type.
	Samples int `json:"samples"`
	// MaxThreads caps ThreadCounts.
	MaxThreads int `json:"max_threads"`
	// ThreadCounts are the thread counts the parallel
	// versions run with; defaults to 2 and 4.
	ThreadCounts []int `json:"thread_counts,omitempty"`
	// Seed seeds the dataset generator.
	Seed int64 `json:"seed"`
}

var defaultThreadCounts = []int{2, 4}

// DefaultConfig returns a small demonstration configuration.
func DefaultConfig() Config {
	return Config{
		Sizes:        []int{100, 500, 1000},
		Types:        []dataset.Shape{dataset.Random, dataset.Sorted},
		Algorithms:   sorting.Algorithms(),
		Samples:      3,
		MaxThreads:   4,
		ThreadCounts: append([]int(nil), defaultThreadCounts...),
		Seed:         dataset.DefaultSeed,
	}
}

// DecodeConfig reads a YAML or JSON configuration.
// Fields missing from the input keep their DefaultConfig values;
// unknown fields are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	js, err := yaml.YAMLToJSON(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	c := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that c describes a runnable experiment.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no dataset sizes", ErrConfig)
	}
	for _, s := range c.Sizes {
		if s < 0 {
			return fmt.Errorf("%w: negative dataset size %d", ErrConfig, s)
		}
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("%w: no dataset types", ErrConfig)
	}
	for _, t := range c.Types {
		if _, err := t.MarshalText(); err != nil {
			return err
		}
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrConfig, c.Samples)
	}
	if c.MaxThreads < 1 {
		return fmt.Errorf("%w: max_threads must be at least 1, got %d", ErrConfig, c.MaxThreads)
	}
	for _, n := range c.ThreadCounts {
		if n < 1 {
			return fmt.Errorf("%w: thread count %d", ErrConfig, n)
		}
	}
	for _, a := range c.Algorithms {
		if _, err := a.MarshalText(); err != nil {
			return fmt.Errorf("%w: %s", ErrConfig, err)
		}
	}
	return nil
}

func (c *Config) algorithms() []sorting.Algorithm {
	if len(c.Algorithms) == 0 {
		return sorting.Algorithms()
	}
	return c.Algorithms
}

// Threads returns the thread counts the parallel
// versions run with, i.e. ThreadCounts capped by MaxThreads.
func (c *Config) Threads() []int {
	counts := c.ThreadCounts
	if len(counts) == 0 {
		counts = defaultThreadCounts
	}
	var out []int
	for _, n := range counts {
		if n <= c.MaxThreads {
			out = append(out, n)
		}
	}
	return out
}

// PlannedTrials returns the number of trials a run of c performs.
func (c *Config) PlannedTrials() int {
	serial := len(c.Sizes) * len(c.Types) * c.Samples * len(c.algorithms())
	return serial + serial*len(c.Threads())
}
