package ks

import "unsafe"

// WordSize is the size in bytes of a machine word.
const WordSize = int(unsafe.Sizeof(uintptr(0)))

// SwapStrategy is the granularity used to exchange two records.
type SwapStrategy int

const (
	// SwapWord exchanges a single machine word per record.
	SwapWord SwapStrategy = iota

	// SwapWords exchanges records word by word.
	SwapWords

	// SwapBytes exchanges records byte by byte.
	SwapBytes
)

// String returns a human-readable name for the strategy.
func (s SwapStrategy) String() string {
	switch s {
	case SwapWord:
		return "word"
	case SwapWords:
		return "words"
	case SwapBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// chooseSwap picks word swaps only when every record starts on a word
// boundary, which holds when the base is aligned and the record size is a
// multiple of the word size.
func chooseSwap(data []byte, es int) SwapStrategy {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	switch {
	case base%uintptr(WordSize) != 0 || es%WordSize != 0:
		return SwapBytes
	case es == WordSize:
		return SwapWord
	default:
		return SwapWords
	}
}

func swapWord(x, y []byte) {
	px := (*uintptr)(unsafe.Pointer(&x[0]))
	py := (*uintptr)(unsafe.Pointer(&y[0]))
	*px, *py = *py, *px
}

// swapWords requires len(x) == len(y), a multiple of WordSize, and both
// slices word aligned.
func swapWords(x, y []byte) {
	n := len(x) / WordSize
	wx := unsafe.Slice((*uintptr)(unsafe.Pointer(&x[0])), n)
	wy := unsafe.Slice((*uintptr)(unsafe.Pointer(&y[0])), n)
	for i := range wx {
		wx[i], wy[i] = wy[i], wx[i]
	}
}

func swapBytes(x, y []byte) {
	for i := range x {
		x[i], y[i] = y[i], x[i]
	}
}
