// Package metrics holds the Prometheus collectors shared by the worker pool,
// the sort engines and the CLI.
package metrics

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "ksort"

var (
	PoolTasksSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "tasks_submitted_total",
		Help:      "Number of tasks accepted by worker pools.",
	})

	PoolTasksCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "tasks_completed_total",
		Help:      "Number of tasks that finished running, including ones that panicked.",
	})

	PoolTasksRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "tasks_rejected_total",
		Help:      "Number of tasks refused by worker pools.",
	}, []string{"reason"})

	PoolPending = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "pending_tasks",
		Help:      "Tasks queued or running.",
	})

	SortDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sort",
			Name:      "duration_seconds",
			Help:      "Time spent in the sort phase of a dispatch.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"method"},
	)

	SortComparisons = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sort",
		Name:      "comparisons_total",
		Help:      "Comparator invocations made by dispatched sorts.",
	}, []string{"method"})

	SortErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sort",
		Name:      "errors_total",
		Help:      "Dispatched sorts that returned an error.",
	}, []string{"method"})

	QsortTasksSpawned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "qsort",
		Name:      "tasks_spawned_total",
		Help:      "Partitions handed to the worker pool by the quicksort engine.",
	})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		PoolTasksSubmitted,
		PoolTasksCompleted,
		PoolTasksRejected,
		PoolPending,
		SortDuration,
		SortComparisons,
		SortErrors,
		QsortTasksSpawned,
	}
}

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			return errors.WithMessage(err, "register collector")
		}
	}
	return nil
}

// WriteText gathers g and writes it in the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.WithMessage(err, "gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.WithMessage(err, "encode metric family")
		}
	}
	return nil
}
