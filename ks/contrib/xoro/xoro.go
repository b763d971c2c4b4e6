// Package xoro implements the xoroshiro128+ pseudo-random generator used to
// build benchmark inputs. It is fast and reproducible, not cryptographic.
package xoro

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Source is a xoroshiro128+ generator. It implements math/rand.Source64 and
// io.Reader. A Source is not safe for concurrent use.
type Source struct {
	s0, s1 uint64

	// Bytes of the last word not yet handed out by Read.
	rem  uint64
	nrem int
}

// New returns a Source whose state is expanded from seed with splitmix64.
func New(seed uint64) *Source {
	src := &Source{}
	src.reset(seed)
	return src
}

func (x *Source) reset(seed uint64) {
	x.s0 = splitmix64(&seed)
	x.s1 = splitmix64(&seed)
	if x.s0 == 0 && x.s1 == 0 {
		// The all-zero state is a fixed point.
		x.s1 = 1
	}
	x.rem, x.nrem = 0, 0
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Uint64 returns the next 64 pseudo-random bits.
func (x *Source) Uint64() uint64 {
	s0, s1 := x.s0, x.s1
	result := s0 + s1

	s1 ^= s0
	x.s0 = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.s1 = bits.RotateLeft64(s1, 37)

	return result
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
func (x *Source) Int63() int64 {
	return int64(x.Uint64() >> 1)
}

// Seed resets the generator as New(uint64(seed)) would.
func (x *Source) Seed(seed int64) {
	x.reset(uint64(seed))
}

// Read fills p with pseudo-random bytes, taking each word little-endian
// first. It always returns len(p), nil.
func (x *Source) Read(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		if x.nrem == 0 {
			if len(p) >= 8 {
				binary.LittleEndian.PutUint64(p, x.Uint64())
				p = p[8:]
				continue
			}
			x.rem, x.nrem = x.Uint64(), 8
		}
		p[0] = byte(x.rem)
		x.rem >>= 8
		x.nrem--
		p = p[1:]
	}
	return n, nil
}

// Fill sets every element of dst to the next value modulo mod. A mod of 0
// keeps the raw value truncated to T.
func Fill[T constraints.Signed](src *Source, dst []T, mod uint64) {
	for i := range dst {
		v := src.Uint64()
		if mod != 0 {
			v %= mod
		}
		dst[i] = T(v)
	}
}
