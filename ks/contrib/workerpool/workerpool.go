// Copyright 2025 The ksort Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for sort
// tasks. Workers are spawned once and pull closures from a shared unbounded
// queue, so a running task can submit more work without ever blocking on a
// full channel.
//
// Two barriers are offered. Drain waits for the whole pool to go idle,
// including tasks submitted by other tasks. A Group tracks only the tasks
// submitted through it, so several sorts can share one pool and each wait for
// its own work:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	g := pool.NewGroup()
//	_ = g.Go(func() { sortSegment(g, 0, n) })
//	if err := g.Wait(); err != nil {
//	    return err
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/toolkits/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"

	"github.com/SimonLee0316/ksort/internal/metrics"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("workerpool: closed")

	// ErrQueueFull is returned by Submit when the pending limit is reached.
	ErrQueueFull = errors.New("workerpool: pending task limit reached")

	// ErrNilTask is returned by Submit for a nil function.
	ErrNilTask = errors.New("workerpool: nil task")

	// ErrTaskPanicked is reported by Group.Wait when one of its tasks panicked.
	ErrTaskPanicked = errors.New("workerpool: task panicked")
)

// Option configures a Pool.
type Option func(*Pool)

// WithMaxPending bounds the number of queued plus running tasks. Submit fails
// with ErrQueueFull once the bound is reached. Zero means unbounded.
func WithMaxPending(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.maxPending = n
		}
	}
}

// Pool is a persistent worker pool that can be reused across many sorts.
type Pool struct {
	numWorkers int
	maxPending int

	mu      sync.Mutex
	work    *sync.Cond // queue gained a task or the pool closed
	idle    *sync.Cond // pending dropped to zero
	queue   []func()
	pending int
	closed  bool

	_         cpu.CacheLinePad
	submitted atomic.Uint64
	_         cpu.CacheLinePad
	completed atomic.Uint64
	_         cpu.CacheLinePad

	workers   errgroup.Group
	closeOnce sync.Once
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int, opts ...Option) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{numWorkers: numWorkers}
	for _, opt := range opts {
		opt(p)
	}
	p.work = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	for range numWorkers {
		p.workers.Go(func() error {
			p.worker()
			return nil
		})
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for {
		fn, ok := p.next()
		if !ok {
			return
		}
		p.run(fn)
		p.finish()
	}
}

// next pops the oldest task. It reports false once the pool is closed and
// the queue is empty.
func (p *Pool) next() (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 {
		if p.closed {
			return nil, false
		}
		p.work.Wait()
	}
	fn := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return fn, true
}

func (p *Pool) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("workerpool: task panicked: %v", r)
		}
	}()
	fn()
}

func (p *Pool) finish() {
	p.completed.Add(1)
	metrics.PoolTasksCompleted.Inc()
	metrics.PoolPending.Dec()

	p.mu.Lock()
	p.pending--
	if p.pending == 0 {
		p.idle.Broadcast()
	}
	p.mu.Unlock()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Pending returns the number of tasks queued or running.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Stats returns how many tasks were accepted and how many have finished.
func (p *Pool) Stats() (submitted, completed uint64) {
	return p.submitted.Load(), p.completed.Load()
}

// Submit enqueues fn and returns immediately. Tasks run in FIFO order of
// submission on whichever worker is free; order across workers is
// unspecified.
func (p *Pool) Submit(fn func()) error {
	if fn == nil {
		return ErrNilTask
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		metrics.PoolTasksRejected.WithLabelValues("closed").Inc()
		return ErrClosed
	}
	if p.maxPending > 0 && p.pending >= p.maxPending {
		p.mu.Unlock()
		metrics.PoolTasksRejected.WithLabelValues("full").Inc()
		return errors.Wrapf(ErrQueueFull, "limit %d", p.maxPending)
	}
	p.pending++
	p.queue = append(p.queue, fn)
	p.mu.Unlock()
	p.work.Signal()

	p.submitted.Add(1)
	metrics.PoolTasksSubmitted.Inc()
	metrics.PoolPending.Inc()
	return nil
}

// Drain blocks until the queue is empty and every running task, including
// tasks submitted while draining, has finished. It must not be called from a
// task running on the same pool.
func (p *Pool) Drain() {
	p.mu.Lock()
	for p.pending > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Close shuts down the worker pool. All pending work will complete before
// Close returns. Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.work.Broadcast()
		_ = p.workers.Wait()
	})
}

// closedOrNil reports whether tasks can no longer be handed to workers.
func (p *Pool) closedOrNil() bool {
	if p == nil {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Group tracks a set of tasks submitted through one pool. Tasks of a group
// may add more tasks to the same group with Go.
type Group struct {
	pool *Pool
	wg   sync.WaitGroup

	errOnce sync.Once
	err     error
}

// NewGroup returns an empty group bound to p.
func (p *Pool) NewGroup() *Group {
	return &Group{pool: p}
}

// Go submits fn to the pool as part of the group. A panic in fn is recovered
// and reported by Wait as ErrTaskPanicked.
func (g *Group) Go(fn func()) error {
	if fn == nil {
		return ErrNilTask
	}
	g.wg.Add(1)
	err := g.pool.Submit(func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("workerpool: group task panicked: %v", r)
				g.fail(errors.Wrapf(ErrTaskPanicked, "%v", r))
			}
		}()
		fn()
	})
	if err != nil {
		g.wg.Done()
		return err
	}
	return nil
}

func (g *Group) fail(err error) {
	g.errOnce.Do(func() { g.err = err })
}

// Wait blocks until every task of the group has finished and returns the
// first task failure, if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	return g.err
}

// dispatch runs fn on the pool and marks wg done afterwards, or runs it in
// the caller when the pool refuses the task.
func (p *Pool) dispatch(wg *sync.WaitGroup, fn func()) {
	err := p.Submit(func() {
		defer wg.Done()
		fn()
	})
	if err != nil {
		fn()
		wg.Done()
	}
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. batchSize controls how many items are grabbed per atomic
// operation.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	if p.closedOrNil() {
		fn(0, n)
		return
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 {
		fn(0, n)
		return
	}

	var nextBatch atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.dispatch(&wg, func() {
			for {
				batch := int(nextBatch.Add(1)) - 1
				start := batch * batchSize
				if start >= n {
					return
				}
				fn(start, min(start+batchSize, n))
			}
		})
	}

	wg.Wait()
}
