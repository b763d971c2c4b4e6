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

// Package refsort is the single-threaded baseline: an in-place heapsort over
// ks.Buffer records. It is not stable.
package refsort

import (
	"time"

	"github.com/pkg/errors"

	"github.com/SimonLee0316/ksort/ks"
)

// Sort heapsorts buf in the calling goroutine and reports how long it took.
func Sort(buf *ks.Buffer, cmp ks.CompareFunc) (time.Duration, error) {
	if cmp == nil {
		return 0, ks.ErrNullComparator
	}
	if buf == nil {
		return 0, errors.Wrap(ks.ErrBufferSize, "nil buffer")
	}

	start := time.Now()
	heapSort(buf, cmp)
	return time.Since(start), nil
}

func heapSort(buf *ks.Buffer, cmp ks.CompareFunc) {
	n := buf.Len()
	if n <= 1 {
		return
	}

	// Build max-heap
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(buf, cmp, i, n)
	}

	// Extract elements
	for i := n - 1; i > 0; i-- {
		buf.Swap(0, i)
		siftDown(buf, cmp, 0, i)
	}
}

func siftDown(buf *ks.Buffer, cmp ks.CompareFunc, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && buf.Compare(cmp, left, largest) > 0 {
			largest = left
		}
		if right < n && buf.Compare(cmp, right, largest) > 0 {
			largest = right
		}

		if largest == i {
			break
		}

		buf.Swap(i, largest)
		i = largest
	}
}
