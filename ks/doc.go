// Package ks holds the pieces every sorting method in this module shares: the
// comparator contract, the record buffer view with its swap primitive, the
// conversion between a buffer and a linked sequence, and the error taxonomy.
//
// A Buffer is a window over count fixed-size records stored back to back in a
// byte slice. Methods address records by position and never resize the
// buffer:
//
//	buf, err := ks.NewBuffer(data, len(data)/4, 4)
//	if err != nil {
//	    return err
//	}
//	cmp := ks.Int32Ascending
//	if buf.Compare(cmp, 0, 1) > 0 {
//	    buf.Swap(0, 1)
//	}
//
// # Swap strategy
//
// NewBuffer picks how records are exchanged once, from the base address and
// the record size:
//   - SwapWord: each record is exactly one machine word
//   - SwapWords: records are a whole number of words and the base is aligned
//   - SwapBytes: anything else
//
// The strategy never changes the result, only how many loads and stores a
// swap costs.
//
// # Comparators
//
// A CompareFunc receives the byte windows of two records and returns a
// negative, zero or positive value. Signed builds the ascending comparator for
// native-endian fixed-width signed integers; Counting wraps any comparator so
// that every call is tallied in a Counter.
package ks
