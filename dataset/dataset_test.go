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

package dataset

import (
	"errors"
	"testing"

	"golang.org/x/exp/slices"
)

func TestShapeNames(t *testing.T) {
	for _, s := range Shapes() {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Shape
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != s {
			t.Errorf("%s: round trip gave %s", s, back)
		}
	}

	_, err := ParseShape("zigzag")
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("ParseShape(zigzag): got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := Generator{Seed: DefaultSeed}
	for _, s := range Shapes() {
		a, err := g.Generate(1000, s)
		if err != nil {
			t.Fatal(err)
		}
		b, err := g.Generate(1000, s)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(a, b) {
			t.Errorf("%s: repeated calls differ", s)
		}
		if Fingerprint(a) != Fingerprint(b) {
			t.Errorf("%s: fingerprints differ", s)
		}
	}

	other := Generator{Seed: 7}
	a, _ := g.Generate(1000, Random)
	b, _ := other.Generate(1000, Random)
	if slices.Equal(a, b) {
		t.Error("different seeds produced the same random dataset")
	}
}

func TestGenerateShapes(t *testing.T) {
	g := Generator{Seed: DefaultSeed}
	const size = 200

	random, _ := g.Generate(size, Random)
	for _, v := range random {
		if v < 1 || v > size*10 {
			t.Fatalf("random value %d out of range", v)
		}
	}

	dups, _ := g.Generate(size, Duplicates)
	seen := make(map[int]bool)
	for _, v := range dups {
		if v < 1 || v > size/10 {
			t.Fatalf("duplicates value %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) > size/10 {
		t.Fatalf("%d distinct values in duplicates dataset", len(seen))
	}

	sorted, _ := g.Generate(size, Sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("sorted[%d] = %d", i, v)
		}
	}

	rev, _ := g.Generate(size, ReverseSorted)
	if rev[0] != size || rev[size-1] != 1 {
		t.Fatalf("reverse sorted bounds %d..%d", rev[0], rev[size-1])
	}

	part, _ := g.Generate(size, PartiallySorted)
	// blocks start every size/10 = 20 elements
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 10, 11}
	if !slices.Equal(part[:12], want) {
		t.Fatalf("partially sorted prefix = %v", part[:12])
	}
	if part[20] != 29 || part[29] != 20 {
		t.Fatalf("second block not reversed: %v", part[20:30])
	}
	// the last block starts at 180
	if part[190] != 190 || part[199] != 199 {
		t.Fatalf("tail block should be intact: %v", part[190:])
	}
}

func TestGenerateEdgeSizes(t *testing.T) {
	g := Generator{Seed: DefaultSeed}
	for _, s := range Shapes() {
		for _, size := range []int{0, 1, 5, 9} {
			out, err := g.Generate(size, s)
			if err != nil {
				t.Fatalf("%s/%d: %s", s, size, err)
			}
			if len(out) != size {
				t.Fatalf("%s/%d: got %d values", s, size, len(out))
			}
		}
	}
	if _, err := g.Generate(-1, Sorted); err == nil {
		t.Error("negative size accepted")
	}
	if _, err := g.Generate(10, Shape(200)); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("unknown shape: got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := make([]int, 2000)
	for i := range a {
		a[i] = i
	}
	fa := Fingerprint(a)
	b := slices.Clone(a)
	b[1500] = -1
	if Fingerprint(b) == fa {
		t.Error("changing a value past the first block did not change the fingerprint")
	}
	b[1500] = 1500
	if Fingerprint(b) != fa {
		t.Error("fingerprint is not stable")
	}
	if Fingerprint(nil) != Fingerprint([]int{}) {
		t.Error("nil and empty datasets should have the same fingerprint")
	}
}
