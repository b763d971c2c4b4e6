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

package ks

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// CompareFunc compares two records and returns a negative value when a sorts
// before b, zero when they are equal and a positive value otherwise.
// It must define a total order.
type CompareFunc func(a, b []byte) int

// Int32Ascending orders native-endian int32 records ascending.
var Int32Ascending = Signed[int32]()

// Signed returns the ascending comparator for native-endian records of the
// signed integer type T.
func Signed[T constraints.Signed]() CompareFunc {
	var zero T
	switch size := unsafe.Sizeof(zero); size {
	case 1:
		return func(a, b []byte) int {
			return cmp.Compare(int8(a[0]), int8(b[0]))
		}
	case 2:
		return func(a, b []byte) int {
			return cmp.Compare(int16(binary.NativeEndian.Uint16(a)), int16(binary.NativeEndian.Uint16(b)))
		}
	case 4:
		return func(a, b []byte) int {
			return cmp.Compare(int32(binary.NativeEndian.Uint32(a)), int32(binary.NativeEndian.Uint32(b)))
		}
	case 8:
		return func(a, b []byte) int {
			return cmp.Compare(int64(binary.NativeEndian.Uint64(a)), int64(binary.NativeEndian.Uint64(b)))
		}
	default:
		panic(fmt.Sprintf("ks: unsupported signed integer size %d", size))
	}
}

// Reverse returns a comparator that orders records in the opposite direction.
func Reverse(c CompareFunc) CompareFunc {
	if c == nil {
		return nil
	}
	return func(a, b []byte) int { return c(b, a) }
}

// Counter tallies comparator invocations. The zero value is ready to use and
// may be shared by comparators running on many goroutines.
type Counter struct {
	n atomic.Uint64
}

// Load returns the number of comparisons counted so far.
func (c *Counter) Load() uint64 { return c.n.Load() }

// Reset sets the count back to zero.
func (c *Counter) Reset() { c.n.Store(0) }

// Counting wraps c so that every call increments counter first.
// A nil counter returns c unchanged, and a nil c stays nil.
func Counting(c CompareFunc, counter *Counter) CompareFunc {
	if c == nil || counter == nil {
		return c
	}
	return func(a, b []byte) int {
		counter.n.Add(1)
		return c(a, b)
	}
}
