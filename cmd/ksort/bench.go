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

package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/toolkits/pkg/logger"

	"github.com/SimonLee0316/ksort/internal/metrics"
	"github.com/SimonLee0316/ksort/ks"
	"github.com/SimonLee0316/ksort/ks/contrib/dispatch"
	"github.com/SimonLee0316/ksort/ks/contrib/workerpool"
	"github.com/SimonLee0316/ksort/ks/contrib/xoro"
)

// verifyBatch is the number of records each pool task checks for order.
const verifyBatch = 4096

type benchConfig struct {
	start, end, step int
	seed             uint64
	methods          []string
	verify           bool
	metrics          bool
}

// benchRow is one sort of one input size.
type benchRow struct {
	n       int
	method  dispatch.Method
	caller  time.Duration
	result  dispatch.Result
	checked bool
	sorted  bool
}

func makeBenchCommand(e *env) *cobra.Command {
	var config benchConfig
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		fs := cmd.Flags()
		b := e.cfg.Bench
		if !fs.Changed("start") {
			config.start = b.Start
		}
		if !fs.Changed("end") {
			config.end = b.End
		}
		if !fs.Changed("step") {
			config.step = b.Step
		}
		if !fs.Changed("seed") {
			config.seed = uint64(b.Seed)
		}
		if !fs.Changed("verify") {
			config.verify = b.Verify
		}
		return runBench(e, config, cmd.OutOrStdout())
	}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Sort pseudo-random inputs of growing size with every method and compare timings",
		Long: `Sort pseudo-random inputs of growing size with every method and compare timings.

For each size n in [start, end] the same xoroshiro128+ input, with values in
[0, n), is sorted once per method through the device protocol. The table shows
the time seen by the caller, the time of the sort phase alone, the number of
comparisons and the number of pool tasks the quicksort engine created.`,
		Args: cobra.NoArgs,
		RunE: runCmdFunc,
	}
	cmd.Flags().IntVar(&config.start, "start", 1000, "smallest input size")
	cmd.Flags().IntVar(&config.end, "end", 20000, "largest input size")
	cmd.Flags().IntVar(&config.step, "step", 500, "input size increment")
	cmd.Flags().Uint64Var(&config.seed, "seed", 1, "xoroshiro128+ seed")
	cmd.Flags().StringSliceVar(&config.methods, "method", []string{"listsort", "refsort", "qsort"}, "methods to run, in order")
	cmd.Flags().BoolVar(&config.verify, "verify", true, "check that every output is sorted")
	cmd.Flags().BoolVar(&config.metrics, "metrics", false, "print Prometheus metrics after the run")
	return cmd
}

func runBench(e *env, config benchConfig, out io.Writer) error {
	if config.step < 1 || config.start < 0 || config.start > config.end {
		return errors.Errorf("invalid size range start=%d end=%d step=%d", config.start, config.end, config.step)
	}
	methods := make([]dispatch.Method, 0, len(config.methods))
	for _, s := range config.methods {
		m, err := dispatch.ParseMethod(s)
		if err != nil {
			return err
		}
		methods = append(methods, m)
	}
	sizes := lo.RangeWithSteps(config.start, config.end+1, config.step)

	pool, dev := e.newDevice()
	defer pool.Close()

	logger.Infof("bench: %d sizes x %d methods on %d workers, seed %d",
		len(sizes), len(methods), pool.NumWorkers(), config.seed)

	src := xoro.New(config.seed)
	selector := make([]byte, dispatch.SelectorSize)
	var rows []benchRow
	for _, n := range sizes {
		input := make([]int32, n)
		xoro.Fill(src, input, uint64(n))

		for _, m := range methods {
			work := slices.Clone(input)
			binary.NativeEndian.PutUint32(selector, uint32(m))
			if _, err := dev.Write(selector); err != nil {
				return err
			}

			start := time.Now()
			if _, err := dev.Sort(ks.FromSlice(work).Bytes()); err != nil {
				return errors.WithMessagef(err, "%s n=%d", m, n)
			}
			row := benchRow{n: n, method: m, caller: time.Since(start), result: dev.LastResult()}

			if config.verify && m != dispatch.PDQSort {
				row.checked = true
				row.sorted = verifySorted(pool, work)
				if !row.sorted {
					logger.Errorf("bench: %s n=%d produced unsorted output", m, n)
				}
			}
			rows = append(rows, row)
		}
	}

	renderBench(out, rows)

	if config.metrics {
		reg := prometheus.NewRegistry()
		if err := metrics.Register(reg); err != nil {
			return err
		}
		fmt.Fprintln(out)
		if err := metrics.WriteText(out, reg); err != nil {
			return err
		}
	}

	failed := lo.CountBy(rows, func(r benchRow) bool { return r.checked && !r.sorted })
	if failed > 0 {
		return errors.Errorf("%d of %d sorts produced unsorted output", failed, len(rows))
	}
	return nil
}

// verifySorted checks data in batches on the pool. Each batch also compares
// its first record with the last record of the previous batch.
func verifySorted(pool *workerpool.Pool, data []int32) bool {
	buf := ks.FromSlice(data)
	var bad atomic.Bool
	pool.ParallelForAtomicBatched(len(data), verifyBatch, func(start, end int) {
		if !buf.IsSortedRange(ks.Int32Ascending, start, end) {
			bad.Store(true)
		}
	})
	return !bad.Load()
}

func renderBench(w io.Writer, rows []benchRow) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"N", "Method", "Caller", "Sort", "Comparisons", "Tasks", "Sorted"})
	for _, r := range rows {
		sorted := "-"
		if r.checked {
			sorted = strconv.FormatBool(r.sorted)
		}
		table.Append([]string{
			humanize.Comma(int64(r.n)),
			r.method.String(),
			r.caller.String(),
			r.result.Elapsed.String(),
			humanize.Comma(int64(r.result.Comparisons)),
			humanize.Comma(r.result.Spawned),
			sorted,
		})
	}
	table.Render()
}
