// Package qsort provides a parallel in-place quicksort over ks.Buffer
// records.
//
// # Algorithm
//
// The engine follows Bentley and McIlroy's "Engineering a Sort Function":
//   - Insertion sort for segments of fewer than 7 records
//   - Median-of-three pivot, or a pseudo-median of nine above 40 records
//   - Three-way partition that parks records equal to the pivot at both ends
//     and swaps them back to the middle, so runs of duplicates cost O(n)
//   - A bounded insertion pass when partitioning moved nothing, which
//     finishes already-sorted and nearly-sorted segments in linear time
//
// # Parallelism
//
// When both sides of a partition hold more than the split threshold (100
// records by default), the left side becomes a new task on the worker pool
// and the current task keeps going with the right side. Otherwise the left
// side is sorted by direct recursion and the right side by looping, so small
// or skewed partitions never reach the pool. Concurrent tasks always own
// disjoint segments, and the buffer is never locked.
//
// # Example Usage
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	s := qsort.New(pool)
//	stats, err := s.Sort(ks.FromSlice(data), ks.Int32Ascending)
package qsort
