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
	"golang.org/x/exp/slices"
)

// BubbleSort returns a sorted copy of in.
//
// Only a strictly greater left neighbour triggers a swap,
// so equal values keep their relative order.
func BubbleSort(in []int) []int {
	out := slices.Clone(in)
	n := len(out)
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			if out[j] > out[j+1] {
				out[j], out[j+1] = out[j+1], out[j]
			}
		}
	}
	return out
}

// InsertionSort returns a sorted copy of in.
// It runs in linear time on nearly sorted input.
func InsertionSort(in []int) []int {
	out := slices.Clone(in)
	for i := 1; i < len(out); i++ {
		key := out[i]
		j := i - 1
		for j >= 0 && out[j] > key {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = key
	}
	return out
}

// QuickSort returns a sorted copy of in.
//
// The pivot is the element at the middle index; the input
// is split into values less than, equal to and greater than
// the pivot and the outer two parts are sorted recursively.
func QuickSort(in []int) []int {
	if len(in) <= 1 {
		return slices.Clone(in)
	}
	less, equal, greater := partition(in)
	return concat(QuickSort(less), equal, QuickSort(greater))
}

// partition splits in around in[len(in)/2].
// The input must not be empty.
func partition(in []int) (less, equal, greater []int) {
	pivot := in[len(in)/2]
	for _, v := range in {
		switch {
		case v < pivot:
			less = append(less, v)
		case v == pivot:
			equal = append(equal, v)
		default:
			greater = append(greater, v)
		}
	}
	return less, equal, greater
}

func concat(parts ...[]int) []int {
	n := 0
	for i := range parts {
		n += len(parts[i])
	}
	out := make([]int, 0, n)
	for i := range parts {
		out = append(out, parts[i]...)
	}
	return out
}

// MergeSort returns a sorted copy of in.
func MergeSort(in []int) []int {
	if len(in) <= 1 {
		return slices.Clone(in)
	}
	mid := len(in) / 2
	return Merge(MergeSort(in[:mid]), MergeSort(in[mid:]))
}
