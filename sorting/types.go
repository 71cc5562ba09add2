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

// Algorithm identifies one of the benchmarked sorting algorithms.
type Algorithm int

const (
	AlgBubble Algorithm = iota
	AlgQuick
	AlgMerge
	AlgInsertion

	numAlgorithms
)

var algorithmNames = [numAlgorithms]string{
	AlgBubble:    "bubble",
	AlgQuick:     "quick",
	AlgMerge:     "merge",
	AlgInsertion: "insertion",
}

// Algorithms returns all known algorithms
// in their canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgBubble, AlgQuick, AlgMerge, AlgInsertion}
}

func (a Algorithm) valid() bool { return a >= 0 && a < numAlgorithms }

func (a Algorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm returns the Algorithm named by s.
func ParseAlgorithm(s string) (Algorithm, error) {
	for i := range algorithmNames {
		if algorithmNames[i] == s {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("sorting: unknown algorithm %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("sorting: cannot marshal %s", a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Version selects the serial or the parallel form of an algorithm.
type Version int

const (
	Serial Version = iota
	Parallel
)

// Versions returns Serial followed by Parallel.
func Versions() []Version { return []Version{Serial, Parallel} }

func (v Version) String() string {
	switch v {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// ParseVersion returns the Version named by s.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "serial":
		return Serial, nil
	case "parallel":
		return Parallel, nil
	}
	return 0, fmt.Errorf("sorting: unknown version %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (v Version) MarshalText() ([]byte, error) {
	if v != Serial && v != Parallel {
		return nil, fmt.Errorf("sorting: cannot marshal %s", v)
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Version) UnmarshalText(text []byte) error {
	p, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
