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

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/SimonLee0316/ksort/internal/metrics"
	"github.com/SimonLee0316/ksort/ks"
	"github.com/SimonLee0316/ksort/ks/contrib/workerpool"
)

// Thresholds for different sorting strategies.
const (
	// smallThreshold: insertion sort segments shorter than this.
	smallThreshold = 7

	// nintherThreshold: above this size, each pivot candidate is itself a
	// median of three.
	nintherThreshold = 40

	// DefaultSplitThreshold: both sides of a partition must be larger than
	// this for the left side to become a pool task.
	DefaultSplitThreshold = 100
)

// Option configures a Sorter.
type Option func(*Sorter)

// WithSplitThreshold overrides DefaultSplitThreshold. Values below 1 are
// ignored.
func WithSplitThreshold(n int) Option {
	return func(s *Sorter) {
		if n > 0 {
			s.split = n
		}
	}
}

// Sorter runs the quicksort engine on a worker pool.
// A Sorter is safe for concurrent use; each Sort call is independent.
type Sorter struct {
	pool  *workerpool.Pool
	split int
}

// New returns a Sorter that offloads large partitions to pool. With a nil
// pool every segment is sorted in the calling goroutine.
func New(pool *workerpool.Pool, opts ...Option) *Sorter {
	s := &Sorter{pool: pool, split: DefaultSplitThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats describes one completed Sort call.
type Stats struct {
	// Spawned is the number of partitions handed to the pool.
	Spawned int64

	// Elapsed covers submission of the first task until the last one
	// finished.
	Elapsed time.Duration
}

// Sort sorts buf in place and returns once every record is in order.
//
// When the pool refuses a task the sort stops early and the error wraps
// ks.ErrResourceExhausted; buf then holds an unspecified permutation of its
// original records.
func (s *Sorter) Sort(buf *ks.Buffer, cmp ks.CompareFunc) (Stats, error) {
	if cmp == nil {
		return Stats{}, ks.ErrNullComparator
	}
	if buf == nil {
		return Stats{}, errors.Wrap(ks.ErrBufferSize, "nil buffer")
	}

	r := &run{buf: buf, cmp: cmp, split: s.split}
	start := time.Now()

	if s.pool == nil {
		r.sort(0, buf.Len())
		return Stats{Elapsed: time.Since(start)}, nil
	}

	r.group = s.pool.NewGroup()
	if err := r.group.Go(func() { r.sort(0, buf.Len()) }); err != nil {
		return Stats{}, errors.Wrapf(ks.ErrResourceExhausted, "submit initial task: %v", err)
	}
	waitErr := r.group.Wait()

	stats := Stats{Spawned: r.spawned.Load(), Elapsed: time.Since(start)}
	if err := r.err(); err != nil {
		return stats, err
	}
	return stats, waitErr
}

// Slice sorts s ascending using pool.
func Slice[T constraints.Signed](pool *workerpool.Pool, s []T) error {
	_, err := New(pool).Sort(ks.FromSlice(s), ks.Signed[T]())
	return err
}

// run holds the parameters shared by every task of one Sort call. Only the
// failure latch and the spawn counter change after creation.
type run struct {
	buf   *ks.Buffer
	cmp   ks.CompareFunc
	split int
	group *workerpool.Group

	spawned atomic.Int64
	failed  atomic.Bool

	failOnce sync.Once
	failErr  error
}

func (r *run) fail(err error) {
	r.failOnce.Do(func() {
		r.failErr = err
		r.failed.Store(true)
	})
}

func (r *run) err() error {
	if !r.failed.Load() {
		return nil
	}
	return r.failErr
}

// spawn hands [a, a+n) to the pool. It reports false when the pool refused
// the task, in which case the whole sort has failed.
func (r *run) spawn(a, n int) bool {
	if r.group == nil {
		r.sort(a, n)
		return true
	}
	if err := r.group.Go(func() { r.sort(a, n) }); err != nil {
		r.fail(errors.Wrapf(ks.ErrResourceExhausted, "submit partition [%d,%d): %v", a, a+n, err))
		return false
	}
	r.spawned.Add(1)
	metrics.QsortTasksSpawned.Inc()
	return true
}
