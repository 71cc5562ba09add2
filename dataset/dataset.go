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

// Package dataset produces the integer inputs
// fed to the sorting benchmarks.
package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/dchest/siphash"
)

// ErrUnknownShape is returned when a dataset
// shape is not one of the known shapes.
var ErrUnknownShape = errors.New("dataset: unknown shape")

// Shape describes how the values of a dataset are arranged.
type Shape int

const (
	Random          Shape = iota // uniform values in [1, size*10]
	Sorted                       // 0, 1, ..., size-1
	ReverseSorted                // size, size-1, ..., 1
	PartiallySorted              // Sorted with reversed 10-element blocks
	Duplicates                   // uniform values in [1, size/10]

	numShapes
)

var shapeNames = [numShapes]string{
	Random:          "random",
	Sorted:          "sorted",
	ReverseSorted:   "reverse_sorted",
	PartiallySorted: "partially_sorted",
	Duplicates:      "duplicates",
}

// Shapes returns every known shape.
func Shapes() []Shape {
	return []Shape{Random, Sorted, ReverseSorted, PartiallySorted, Duplicates}
}

func (s Shape) valid() bool { return s >= 0 && s < numShapes }

func (s Shape) String() string {
	if !s.valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape returns the shape with the given name.
func ParseShape(name string) (Shape, error) {
	for i := range shapeNames {
		if shapeNames[i] == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownShape, name)
}

// MarshalText implements encoding.TextMarshaler
func (s Shape) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownShape, int(s))
	}
	return []byte(shapeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DefaultSeed is the seed used when none is configured.
const DefaultSeed = 42

// blockLen is the length of the blocks
// reversed in PartiallySorted datasets.
const blockLen = 10

// Generator produces datasets deterministically:
// every call with the same size and shape returns
// the same values for a given seed.
type Generator struct {
	Seed int64
}

// Generate returns a new dataset of the given size and shape.
func (g *Generator) Generate(size int, shape Shape) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("dataset: negative size %d", size)
	}
	rng := rand.New(rand.NewSource(g.Seed))
	out := make([]int, size)
	switch shape {
	case Random:
		fill(rng, out, size*10)
	case Sorted:
		for i := range out {
			out[i] = i
		}
	case ReverseSorted:
		for i := range out {
			out[i] = size - i
		}
	case PartiallySorted:
		for i := range out {
			out[i] = i
		}
		step := size / 10
		if step < 1 {
			// no block fits in fewer than blockLen+1 elements
			break
		}
		for i := 0; i < size; i += step {
			if i+blockLen < size {
				reverse(out[i : i+blockLen])
			}
		}
	case Duplicates:
		fill(rng, out, size/10)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownShape, int(shape))
	}
	return out, nil
}

// fill sets every element of out to a value in [1, hi].
func fill(rng *rand.Rand, out []int, hi int) {
	if hi < 1 {
		hi = 1
	}
	for i := range out {
		out[i] = 1 + rng.Intn(hi)
	}
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// fingerprint keys
const (
	k0 = 0x736f727462656e63
	k1 = 0x6461746173657473
)

// Fingerprint returns a 64-bit SipHash of the
// values of data, in order.
func Fingerprint(data []int) uint64 {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[:8], k0)
	binary.LittleEndian.PutUint64(key[8:], k1)
	h := siphash.New(key[:])

	var buf [8 * 512]byte
	for len(data) > 0 {
		n := len(data)
		if n > 512 {
			n = 512
		}
		for i, v := range data[:n] {
			binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
		}
		h.Write(buf[:n*8])
		data = data[n:]
	}
	return h.Sum64()
}
