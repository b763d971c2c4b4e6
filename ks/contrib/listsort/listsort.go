// Package listsort sorts linked lists with a stable bottom-up merge sort
// and adapts it to ks.Buffer records.
package listsort

import (
	"container/list"
	"time"

	"github.com/pkg/errors"

	"github.com/SimonLee0316/ksort/ks"
)

// LessFunc must report true iff a sorts strictly before b.
type LessFunc func(a, b *list.Element) bool

// List sorts l in place by re-linking its elements. Element values are never
// copied. Elements that compare equal keep their relative order.
//
// Each pass merges neighbouring runs of width w into runs of width 2w,
// starting from w = 1, until a pass performs a single merge.
func List(l *list.List, less LessFunc) error {
	if l == nil {
		return ks.ErrNullListHead
	}
	if less == nil {
		return ks.ErrNullComparator
	}
	if l.Len() < 2 {
		return nil
	}

	for width := 1; ; width *= 2 {
		merges := 0
		// tail is the last element of the merged prefix of this pass.
		var tail *list.Element
		left := l.Front()

		for left != nil {
			merges++

			right := left
			nl := 0
			for right != nil && nl < width {
				nl++
				right = right.Next()
			}
			nr := width

			for nl > 0 || (nr > 0 && right != nil) {
				var next *list.Element
				switch {
				case nl == 0:
					next, right = right, right.Next()
					nr--
				case nr == 0 || right == nil:
					next, left = left, left.Next()
					nl--
				case less(right, left):
					next, right = right, right.Next()
					nr--
				default:
					// Ties take the left run.
					next, left = left, left.Next()
					nl--
				}

				if tail == nil {
					l.MoveToFront(next)
				} else {
					l.MoveAfter(next, tail)
				}
				tail = next
			}
			left = right
		}

		if merges <= 1 {
			return nil
		}
	}
}

// ByRecord adapts cmp to list elements whose values are []byte records, as
// produced by ks.Buffer.ToList.
func ByRecord(cmp ks.CompareFunc) LessFunc {
	if cmp == nil {
		return nil
	}
	return func(a, b *list.Element) bool {
		return cmp(a.Value.([]byte), b.Value.([]byte)) < 0
	}
}

// Sort copies the records of buf into a list, sorts the list and writes the
// records back in order. The returned duration covers the list sort only.
func Sort(buf *ks.Buffer, cmp ks.CompareFunc) (time.Duration, error) {
	if cmp == nil {
		return 0, ks.ErrNullComparator
	}
	if buf == nil {
		return 0, errors.Wrap(ks.ErrBufferSize, "nil buffer")
	}

	l := buf.ToList()

	start := time.Now()
	if err := List(l, ByRecord(cmp)); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	if err := buf.FromList(l); err != nil {
		return elapsed, errors.WithMessage(err, "write sorted list back")
	}
	return elapsed, nil
}
