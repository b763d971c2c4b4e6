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

package qsort

// sort orders the segment [a, a+n). The right side of every partition is
// handled by the loop, the left side by recursion or by a pool task.
func (r *run) sort(a, n int) {
	buf, cmp := r.buf, r.cmp

	for !r.failed.Load() {
		if n < smallThreshold {
			r.insertionSort(a, n)
			return
		}

		buf.Swap(a, r.pivot(a, n))

		// Invariant while scanning:
		//   [a, pa)      == pivot
		//   [pa, pb)     <  pivot
		//   (pc, pd]     >  pivot
		//   (pd, a+n)    == pivot
		pa, pb := a+1, a+1
		pc, pd := a+n-1, a+n-1
		swapped := false
		for {
			for pb <= pc {
				c := buf.Compare(cmp, pb, a)
				if c > 0 {
					break
				}
				if c == 0 {
					swapped = true
					buf.Swap(pa, pb)
					pa++
				}
				pb++
			}
			for pb <= pc {
				c := buf.Compare(cmp, pc, a)
				if c < 0 {
					break
				}
				if c == 0 {
					swapped = true
					buf.Swap(pc, pd)
					pd--
				}
				pc--
			}
			if pb > pc {
				break
			}
			buf.Swap(pb, pc)
			swapped = true
			pb++
			pc--
		}

		// Move the parked equal runs next to each other in the middle.
		end := a + n
		m := min(pa-a, pb-pa)
		buf.VecSwap(a, pb-m, m)
		m = min(pd-pc, end-pd-1)
		buf.VecSwap(pb, end-m, m)

		if !swapped && r.insertionSortBounded(a, n, 1+n/4) {
			return
		}

		nl, nr := pb-pa, pd-pc
		switch {
		case nl > r.split && nr > r.split:
			if !r.spawn(a, nl) {
				return
			}
		case nl > 0:
			r.sort(a, nl)
		}

		if nr == 0 {
			return
		}
		a, n = end-nr, nr
	}
}

// pivot returns the index of the pivot candidate for [a, a+n), n >= 7.
func (r *run) pivot(a, n int) int {
	pm := a + n/2
	if n == smallThreshold {
		return pm
	}

	pl, pn := a, a+n-1
	if n > nintherThreshold {
		d := n / 8
		pl = r.med3(pl, pl+d, pl+2*d)
		pm = r.med3(pm-d, pm, pm+d)
		pn = r.med3(pn-2*d, pn-d, pn)
	}
	return r.med3(pl, pm, pn)
}

// med3 returns the index of the median of records x, y and z.
func (r *run) med3(x, y, z int) int {
	buf, cmp := r.buf, r.cmp
	if buf.Compare(cmp, x, y) < 0 {
		if buf.Compare(cmp, y, z) < 0 {
			return y
		}
		if buf.Compare(cmp, x, z) < 0 {
			return z
		}
		return x
	}
	if buf.Compare(cmp, y, z) > 0 {
		return y
	}
	if buf.Compare(cmp, x, z) < 0 {
		return x
	}
	return z
}

// insertionSort sorts [a, a+n) by adjacent swaps.
func (r *run) insertionSort(a, n int) {
	buf, cmp := r.buf, r.cmp
	for i := a + 1; i < a+n; i++ {
		for j := i; j > a && buf.Compare(cmp, j-1, j) > 0; j-- {
			buf.Swap(j, j-1)
		}
	}
}

// insertionSortBounded runs insertion sort over [a, a+n) but gives up after
// limit swaps. It reports whether the segment ended up sorted. Giving up
// keeps the three-way partition intact because adjacent swaps only reorder
// records inside the same zone.
func (r *run) insertionSortBounded(a, n, limit int) bool {
	buf, cmp := r.buf, r.cmp
	swaps := 0
	for i := a + 1; i < a+n; i++ {
		for j := i; j > a && buf.Compare(cmp, j-1, j) > 0; j-- {
			buf.Swap(j, j-1)
			swaps++
			if swaps > limit {
				return false
			}
		}
	}
	return true
}
