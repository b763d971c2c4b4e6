// Copyright 2025 ksort Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package refsort

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/pkg/errors"

	"github.com/SimonLee0316/ksort/ks"
)

// TestSortEmpty tests sorting empty and single element buffers
func TestSortEmpty(t *testing.T) {
	var empty []int32
	if _, err := Sort(ks.FromSlice(empty), ks.Int32Ascending); err != nil {
		t.Errorf("Sort(empty) = %v", err)
	}

	one := []int32{42}
	if _, err := Sort(ks.FromSlice(one), ks.Int32Ascending); err != nil || one[0] != 42 {
		t.Errorf("Sort([42]) = %v, %v; want [42]", one, err)
	}
}

func TestSortScenario(t *testing.T) {
	data := []int32{5, 3, 3, 1, 4, 1, 5, 9, 2, 6}
	if _, err := Sort(ks.FromSlice(data), ks.Int32Ascending); err != nil {
		t.Fatal(err)
	}
	want := []int32{1, 1, 2, 3, 3, 4, 5, 5, 6, 9}
	if !slices.Equal(data, want) {
		t.Errorf("Sort = %v, want %v", data, want)
	}
}

// TestSortRandom tests sorting various sizes against slices.Sort
func TestSortRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{2, 3, 7, 16, 100, 1000, 10000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			data := make([]int64, n)
			for i := range data {
				data[i] = rng.Int63n(1000) - 500
			}
			want := slices.Clone(data)
			slices.Sort(want)

			if _, err := Sort(ks.FromSlice(data), ks.Signed[int64]()); err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(data, want) {
				t.Errorf("Sort(n=%d) produced wrong result", n)
			}
		})
	}
}

func TestSortDescending(t *testing.T) {
	data := []int16{3, -1, 4, -1, 5, -9, 2, 6}
	if _, err := Sort(ks.FromSlice(data), ks.Reverse(ks.Signed[int16]())); err != nil {
		t.Fatal(err)
	}
	want := []int16{6, 5, 4, 3, 2, -1, -1, -9}
	if !slices.Equal(data, want) {
		t.Errorf("Sort = %v, want %v", data, want)
	}
}

func TestSortErrors(t *testing.T) {
	if _, err := Sort(ks.FromSlice([]int32{1}), nil); !errors.Is(err, ks.ErrNullComparator) {
		t.Errorf("nil comparator: err = %v", err)
	}
	if _, err := Sort(nil, ks.Int32Ascending); !errors.Is(err, ks.ErrBufferSize) {
		t.Errorf("nil buffer: err = %v", err)
	}
}

func BenchmarkSort(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	src := make([]int32, 10000)
	for i := range src {
		src[i] = rng.Int31()
	}
	data := make([]int32, len(src))

	for b.Loop() {
		copy(data, src)
		if _, err := Sort(ks.FromSlice(data), ks.Int32Ascending); err != nil {
			b.Fatal(err)
		}
	}
}
