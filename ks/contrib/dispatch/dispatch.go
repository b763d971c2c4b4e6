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

// Package dispatch routes a sort request to the quicksort engine or one of
// the single-threaded adapters and blocks until the buffer is sorted.
package dispatch

import (
	"time"

	"github.com/pkg/errors"
	"github.com/toolkits/pkg/logger"

	"github.com/SimonLee0316/ksort/internal/metrics"
	"github.com/SimonLee0316/ksort/ks"
	"github.com/SimonLee0316/ksort/ks/contrib/listsort"
	"github.com/SimonLee0316/ksort/ks/contrib/qsort"
	"github.com/SimonLee0316/ksort/ks/contrib/refsort"
	"github.com/SimonLee0316/ksort/ks/contrib/workerpool"
)

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	qsort []qsort.Option
}

// WithQSortOptions passes opts to the quicksort engine.
func WithQSortOptions(opts ...qsort.Option) Option {
	return func(o *options) {
		o.qsort = append(o.qsort, opts...)
	}
}

// Result describes one completed dispatch.
type Result struct {
	Method Method

	// Elapsed is the duration of the sort phase only.
	Elapsed time.Duration

	// Comparisons counts comparator calls made by the sort.
	Comparisons uint64

	// Spawned is the number of pool tasks the quicksort engine created.
	Spawned int64
}

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	engine *qsort.Sorter
}

// NewDispatcher returns a Dispatcher whose quicksort engine runs on pool.
func NewDispatcher(pool *workerpool.Pool, opts ...Option) *Dispatcher {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{engine: qsort.New(pool, o.qsort...)}
}

// Run sorts count records of elemSize bytes stored at the front of data
// with method, and returns how long the sort phase took.
func (d *Dispatcher) Run(data []byte, count, elemSize int, method Method, cmp ks.CompareFunc) (time.Duration, error) {
	if !method.Valid() {
		return 0, d.invalid(method)
	}
	buf, err := ks.NewBuffer(data, count, elemSize)
	if err != nil {
		return 0, err
	}
	res, err := d.Sort(buf, method, cmp)
	return res.Elapsed, err
}

// Sort sorts buf in place with method. It returns only after every record is
// in place, or after the sort has failed.
//
// An unknown method fails with ks.ErrInvalidMethod and leaves buf unchanged.
// PDQSort succeeds without touching buf.
func (d *Dispatcher) Sort(buf *ks.Buffer, method Method, cmp ks.CompareFunc) (Result, error) {
	res := Result{Method: method}
	if !method.Valid() {
		return res, d.invalid(method)
	}
	if buf == nil {
		return res, errors.Wrap(ks.ErrBufferSize, "nil buffer")
	}
	if method == PDQSort {
		logger.Debugf("dispatch: %s is not implemented, leaving %d records as they are", method, buf.Len())
		return res, nil
	}
	if cmp == nil {
		logger.Warningf("dispatch: %s called without a comparator", method)
		metrics.SortErrors.WithLabelValues(method.label()).Inc()
		return res, ks.ErrNullComparator
	}

	var counter ks.Counter
	counted := ks.Counting(cmp, &counter)

	var err error
	switch method {
	case ListSort:
		res.Elapsed, err = listsort.Sort(buf, counted)
	case ReferenceSort:
		res.Elapsed, err = refsort.Sort(buf, counted)
	case QSort:
		var stats qsort.Stats
		stats, err = d.engine.Sort(buf, counted)
		res.Elapsed, res.Spawned = stats.Elapsed, stats.Spawned
	}
	res.Comparisons = counter.Load()

	label := method.label()
	metrics.SortComparisons.WithLabelValues(label).Add(float64(res.Comparisons))
	if err != nil {
		metrics.SortErrors.WithLabelValues(label).Inc()
		logger.Errorf("dispatch: %s of %d records failed: %v", method, buf.Len(), err)
		return res, err
	}
	metrics.SortDuration.WithLabelValues(label).Observe(res.Elapsed.Seconds())
	return res, nil
}

func (d *Dispatcher) invalid(method Method) error {
	metrics.SortErrors.WithLabelValues(method.label()).Inc()
	logger.Warningf("dispatch: invalid method %d", int32(method))
	return errors.Wrapf(ks.ErrInvalidMethod, "method %d", int32(method))
}
