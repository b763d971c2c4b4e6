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
	"math/rand"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferErrors(t *testing.T) {
	_, err := NewBuffer(make([]byte, 8), 3, 4)
	require.True(t, errors.Is(err, ErrBufferSize), "short data: %v", err)

	_, err = NewBuffer(make([]byte, 8), -1, 4)
	require.True(t, errors.Is(err, ErrBufferSize), "negative count: %v", err)

	_, err = NewBuffer(make([]byte, 8), 1, 0)
	require.True(t, errors.Is(err, ErrBufferSize), "zero element size: %v", err)

	buf, err := NewBuffer(make([]byte, 16), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Len())
	assert.Equal(t, 4, buf.ElemSize())
	assert.Len(t, buf.Bytes(), 12, "extra bytes past count*elemSize are not part of the view")
}

func TestNewBufferEmpty(t *testing.T) {
	buf, err := NewBuffer(nil, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, buf.Len())
	assert.True(t, buf.IsSorted(Int32Ascending))
}

func TestSwapStrategySelection(t *testing.T) {
	// Go allocations of at least a word are word aligned.
	aligned := make([]byte, 8*WordSize+1)

	tests := []struct {
		name string
		data []byte
		es   int
		want SwapStrategy
	}{
		{"single word", aligned, WordSize, SwapWord},
		{"two words", aligned, 2 * WordSize, SwapWords},
		{"odd size", aligned, WordSize + 1, SwapBytes},
		{"half word", aligned, WordSize / 2, SwapBytes},
		{"unaligned base", aligned[1:], WordSize, SwapBytes},
		{"unaligned base, two words", aligned[1:], 2 * WordSize, SwapBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewBuffer(tt.data, 2, tt.es)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.Strategy(), "strategy %s", buf.Strategy())
		})
	}
}

func TestSwapIsBitExact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	backing := make([]byte, 16*WordSize+1)

	for _, tc := range []struct {
		name string
		data []byte
		es   int
	}{
		{"word", backing, WordSize},
		{"words", backing, 3 * WordSize},
		{"bytes", backing, 3},
		{"bytes unaligned", backing[1:], WordSize},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rng.Read(tc.data)
			n := len(tc.data) / tc.es
			buf, err := NewBuffer(tc.data, n, tc.es)
			require.NoError(t, err)

			first := bytes.Clone(buf.Elem(0))
			last := bytes.Clone(buf.Elem(n - 1))
			buf.Swap(0, n-1)
			assert.Equal(t, last, buf.Elem(0))
			assert.Equal(t, first, buf.Elem(n-1))

			// Swapping a record with itself is a no-op.
			before := bytes.Clone(buf.Bytes())
			buf.Swap(1, 1)
			assert.Equal(t, before, buf.Bytes())
		})
	}
}

func TestVecSwap(t *testing.T) {
	for _, es := range []int{1, 3, 4, WordSize, 2 * WordSize} {
		data := make([]byte, 6*es)
		for i := range data {
			data[i] = byte(i / es)
		}
		buf, err := NewBuffer(data, 6, es)
		require.NoError(t, err)

		buf.VecSwap(0, 4, 2)
		got := make([]byte, 6)
		for i := range got {
			got[i] = buf.Elem(i)[0]
		}
		assert.Equal(t, []byte{4, 5, 2, 3, 0, 1}, got, "es=%d", es)

		buf.VecSwap(0, 3, 0)
		assert.Equal(t, byte(4), buf.Elem(0)[0], "zero-length VecSwap must not move records")
	}
}

func TestIsSortedRange(t *testing.T) {
	buf := FromSlice([]int32{1, 2, 2, 5, 3, 4})
	assert.False(t, buf.IsSorted(Int32Ascending))
	assert.True(t, buf.IsSortedRange(Int32Ascending, 0, 4))
	assert.False(t, buf.IsSortedRange(Int32Ascending, 4, 6), "record 4 is compared with record 3")
	assert.True(t, buf.IsSortedRange(Int32Ascending, 5, 6))
}

func TestListRoundTrip(t *testing.T) {
	values := []int32{5, -3, 3, 1, 4}
	buf := FromSlice(values)

	l := buf.ToList()
	require.Equal(t, len(values), l.Len())

	// Reverse the list by re-linking, then write it back.
	for e := l.Back(); e != nil; {
		prev := e.Prev()
		l.MoveToBack(e)
		e = prev
	}
	require.NoError(t, buf.FromList(l))
	assert.Equal(t, []int32{4, 1, 3, -3, 5}, values)
}

func TestFromListErrors(t *testing.T) {
	buf := FromSlice([]int32{1, 2})

	err := buf.FromList(nil)
	assert.True(t, errors.Is(err, ErrNullListHead), "got %v", err)

	short := list.New()
	short.PushBack([]byte{0, 0, 0, 0})
	err = buf.FromList(short)
	assert.True(t, errors.Is(err, ErrBufferSize), "got %v", err)

	wrong := list.New()
	wrong.PushBack([]byte{0, 0, 0, 0})
	wrong.PushBack("not a record")
	err = buf.FromList(wrong)
	assert.True(t, errors.Is(err, ErrBufferSize), "got %v", err)
}

func TestSignedComparators(t *testing.T) {
	check := func(name string, c CompareFunc, lo, hi *Buffer) {
		t.Helper()
		assert.Negative(t, c(lo.Elem(0), hi.Elem(0)), name)
		assert.Positive(t, c(hi.Elem(0), lo.Elem(0)), name)
		assert.Zero(t, c(lo.Elem(0), lo.Elem(0)), name)
	}
	check("int8", Signed[int8](), FromSlice([]int8{-100}), FromSlice([]int8{100}))
	check("int16", Signed[int16](), FromSlice([]int16{-30000}), FromSlice([]int16{2}))
	check("int32", Int32Ascending, FromSlice([]int32{-1}), FromSlice([]int32{1 << 30}))
	check("int64", Signed[int64](), FromSlice([]int64{-1 << 62}), FromSlice([]int64{0}))
	check("reverse", Reverse(Int32Ascending), FromSlice([]int32{9}), FromSlice([]int32{1}))
	assert.Nil(t, Reverse(nil))
}

func TestCountingIsExactUnderConcurrency(t *testing.T) {
	var counter Counter
	c := Counting(Int32Ascending, &counter)
	buf := FromSlice([]int32{1, 2})

	const goroutines, calls = 8, 1000
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range calls {
				buf.Compare(c, 0, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(goroutines*calls), counter.Load())

	counter.Reset()
	assert.Zero(t, counter.Load())

	assert.Nil(t, Counting(nil, &counter))
	assert.NotNil(t, Counting(Int32Ascending, nil))
}

func TestView(t *testing.T) {
	values := []int64{3, 1, 2}
	buf := FromSlice(values)

	view, err := View[int64](buf)
	require.NoError(t, err)
	view[0] = 42
	assert.Equal(t, int64(42), values[0])

	_, err = View[int32](buf)
	assert.True(t, errors.Is(err, ErrBufferSize))

	empty, err := View[int64](FromSlice([]int64{}))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
