package xoro

import (
	"encoding/binary"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ rand.Source64 = (*Source)(nil)
	_ io.Reader     = (*Source)(nil)
)

func TestDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		require.Equal(t, a.Uint64(), b.Uint64())
	}

	c := New(43)
	same := 0
	for range 100 {
		if a.Uint64() == c.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 2)
}

func TestSeedResets(t *testing.T) {
	src := New(7)
	first := []uint64{src.Uint64(), src.Uint64(), src.Uint64()}

	src.Seed(7)
	assert.Equal(t, first, []uint64{src.Uint64(), src.Uint64(), src.Uint64()})
}

func TestZeroSeed(t *testing.T) {
	src := New(0)
	var nonzero bool
	for range 10 {
		if src.Uint64() != 0 {
			nonzero = true
		}
	}
	assert.True(t, nonzero)
}

func TestInt63NonNegative(t *testing.T) {
	src := New(1)
	for range 1000 {
		require.GreaterOrEqual(t, src.Int63(), int64(0))
	}
}

func TestReadMatchesUint64(t *testing.T) {
	words := New(9)
	bytesSrc := New(9)

	buf := make([]byte, 24)
	n, err := bytesSrc.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 24, n)

	for i := range 3 {
		assert.Equal(t, words.Uint64(), binary.LittleEndian.Uint64(buf[8*i:]))
	}
}

// TestReadOddSizes checks that short reads consume one word byte by byte.
func TestReadOddSizes(t *testing.T) {
	words := New(3)
	src := New(3)

	w := words.Uint64()
	var got uint64
	var off int
	for _, size := range []int{1, 2, 5} {
		p := make([]byte, size)
		_, _ = src.Read(p)
		for _, b := range p {
			got |= uint64(b) << (8 * off)
			off++
		}
	}
	assert.Equal(t, w, got)
}

func TestFill(t *testing.T) {
	src := New(5)
	dst := make([]int32, 1000)
	Fill(src, dst, 1000)
	for i, v := range dst {
		require.True(t, v >= 0 && v < 1000, "dst[%d] = %d", i, v)
	}

	src2 := New(5)
	raw := make([]int64, 4)
	Fill(src2, raw, 0)
	check := New(5)
	for i := range raw {
		assert.Equal(t, int64(check.Uint64()), raw[i])
	}
}
