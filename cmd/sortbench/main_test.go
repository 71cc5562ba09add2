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

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"

	"golang.org/x/exp/slices"
)

func TestListFlags(t *testing.T) {
	var sizes intList
	if err := sizes.Set("100, 2000,30"); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(sizes, intList{100, 2000, 30}) || sizes.String() != "100,2000,30" {
		t.Errorf("sizes = %v", sizes)
	}
	if err := sizes.Set("1,x"); err == nil {
		t.Error("expected an error for a bad size")
	}

	var shapes shapeList
	if err := shapes.Set("sorted,partially_sorted"); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(shapes, shapeList{dataset.Sorted, dataset.PartiallySorted}) {
		t.Errorf("shapes = %v", shapes)
	}
	if err := shapes.Set("zigzag"); !errors.Is(err, dataset.ErrUnknownShape) {
		t.Errorf("got %v", err)
	}

	var algs algorithmList
	if err := algs.Set("merge,bubble"); err != nil {
		t.Fatal(err)
	}
	if algs.String() != "merge,bubble" || algs[0] != sorting.AlgMerge {
		t.Errorf("algorithms = %v", algs)
	}
}

func TestConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	err := os.WriteFile(path, []byte("sizes: [10, 20]\ntypes: [duplicates]\nsamples: 5\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		dashc, dashsizes, dashsamples, dashseed = "", nil, 0, 0
	}()
	dashc = path
	dashsizes = intList{7}
	dashseed = 99

	conf := config()
	if !slices.Equal(conf.Sizes, []int{7}) {
		t.Errorf("sizes = %v", conf.Sizes)
	}
	if !slices.Equal(conf.Types, []dataset.Shape{dataset.Duplicates}) {
		t.Errorf("types = %v", conf.Types)
	}
	if conf.Samples != 5 || conf.Seed != 99 || conf.MaxThreads != 4 {
		t.Errorf("config %+v", conf)
	}
}
