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
	"bytes"
	"container/list"

	"github.com/pkg/errors"
)

// Buffer is a view over count fixed-size records stored contiguously.
// It is safe for concurrent use as long as callers touch disjoint records.
type Buffer struct {
	data []byte
	n    int
	es   int
	swap SwapStrategy
}

// NewBuffer returns a view over the first count*elemSize bytes of data.
func NewBuffer(data []byte, count, elemSize int) (*Buffer, error) {
	if count < 0 || elemSize <= 0 {
		return nil, errors.Wrapf(ErrBufferSize, "count=%d elemSize=%d", count, elemSize)
	}
	size := count * elemSize
	if len(data) < size {
		return nil, errors.Wrapf(ErrBufferSize, "need %d bytes for %d records of %d bytes, have %d",
			size, count, elemSize, len(data))
	}
	return &Buffer{
		data: data[:size:size],
		n:    count,
		es:   elemSize,
		swap: chooseSwap(data, elemSize),
	}, nil
}

// Len returns the number of records.
func (b *Buffer) Len() int { return b.n }

// ElemSize returns the size of one record in bytes.
func (b *Buffer) ElemSize() int { return b.es }

// Strategy returns the swap strategy chosen for this buffer.
func (b *Buffer) Strategy() SwapStrategy { return b.swap }

// Bytes returns the underlying records.
func (b *Buffer) Bytes() []byte { return b.data }

// Elem returns the bytes of record i. The slice aliases the buffer.
func (b *Buffer) Elem(i int) []byte {
	off := i * b.es
	return b.data[off : off+b.es : off+b.es]
}

// Compare applies cmp to records i and j.
func (b *Buffer) Compare(cmp CompareFunc, i, j int) int {
	return cmp(b.Elem(i), b.Elem(j))
}

// Swap exchanges records i and j.
func (b *Buffer) Swap(i, j int) {
	oi, oj := i*b.es, j*b.es
	switch b.swap {
	case SwapWord:
		swapWord(b.data[oi:], b.data[oj:])
	case SwapWords:
		swapWords(b.data[oi:oi+b.es], b.data[oj:oj+b.es])
	default:
		swapBytes(b.data[oi:oi+b.es], b.data[oj:oj+b.es])
	}
}

// VecSwap exchanges the n consecutive records starting at i with the n
// consecutive records starting at j. The two runs must not overlap.
func (b *Buffer) VecSwap(i, j, n int) {
	if n <= 0 {
		return
	}
	oi, oj, size := i*b.es, j*b.es, n*b.es
	if b.swap == SwapBytes {
		swapBytes(b.data[oi:oi+size], b.data[oj:oj+size])
		return
	}
	swapWords(b.data[oi:oi+size], b.data[oj:oj+size])
}

// IsSorted reports whether the records are in ascending order under cmp.
func (b *Buffer) IsSorted(cmp CompareFunc) bool {
	return b.IsSortedRange(cmp, 0, b.n)
}

// IsSortedRange reports whether every record in [lo, hi) is not less than its
// predecessor. Record lo is compared with lo-1 when lo > 0, so adjacent
// ranges together cover the whole buffer.
func (b *Buffer) IsSortedRange(cmp CompareFunc, lo, hi int) bool {
	for i := max(lo, 1); i < hi; i++ {
		if b.Compare(cmp, i-1, i) > 0 {
			return false
		}
	}
	return true
}

// ToList copies every record, in order, into a new doubly linked list whose
// element values are []byte.
func (b *Buffer) ToList() *list.List {
	l := list.New()
	for i := 0; i < b.n; i++ {
		l.PushBack(bytes.Clone(b.Elem(i)))
	}
	return l
}

// FromList writes the values of l back into the buffer in list order.
// The list must hold exactly Len records of ElemSize bytes.
func (b *Buffer) FromList(l *list.List) error {
	if l == nil {
		return ErrNullListHead
	}
	if l.Len() != b.n {
		return errors.Wrapf(ErrBufferSize, "list holds %d records, buffer %d", l.Len(), b.n)
	}
	i := 0
	for e := l.Front(); e != nil; e = e.Next() {
		v, ok := e.Value.([]byte)
		if !ok || len(v) != b.es {
			return errors.Wrapf(ErrBufferSize, "list element %d is not a %d-byte record", i, b.es)
		}
		copy(b.Elem(i), v)
		i++
	}
	return nil
}
