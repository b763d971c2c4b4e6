package ks

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// FromSlice returns a Buffer that aliases the elements of s.
// Sorting the buffer sorts s in place.
func FromSlice[T constraints.Integer](s []T) *Buffer {
	var zero T
	es := int(unsafe.Sizeof(zero))
	data := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*es)
	return &Buffer{
		data: data,
		n:    len(s),
		es:   es,
		swap: chooseSwap(data, es),
	}
}

// View returns the records of b as a []T aliasing the buffer.
// The record size must equal the size of T and the base must be aligned for T.
func View[T constraints.Integer](b *Buffer) ([]T, error) {
	var zero T
	es := int(unsafe.Sizeof(zero))
	if b.es != es {
		return nil, errors.Wrapf(ErrBufferSize, "record size %d, element size %d", b.es, es)
	}
	if b.n == 0 {
		return nil, nil
	}
	if uintptr(unsafe.Pointer(&b.data[0]))%unsafe.Alignof(zero) != 0 {
		return nil, errors.Wrap(ErrBufferSize, "buffer base is not aligned for the element type")
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[0])), b.n), nil
}
