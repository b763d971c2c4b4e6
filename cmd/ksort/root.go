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
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toolkits/pkg/logger"

	"github.com/SimonLee0316/ksort/internal/config"
	"github.com/SimonLee0316/ksort/internal/logx"
	"github.com/SimonLee0316/ksort/ks/contrib/dispatch"
	"github.com/SimonLee0316/ksort/ks/contrib/qsort"
	"github.com/SimonLee0316/ksort/ks/contrib/workerpool"
)

// env is the state shared by all subcommands of one invocation.
type env struct {
	configPath string
	workers    int
	logLevel   string

	cfg      *config.Config
	closeLog func()
}

func (e *env) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&e.configPath, "config", "", "TOML or JSON configuration file")
	fs.IntVar(&e.workers, "workers", 0, "worker pool size (0 means GOMAXPROCS)")
	fs.StringVar(&e.logLevel, "log-level", "", "log level: DEBUG, INFO, WARNING or ERROR")
}

// load reads the configuration and applies flags given on the command line.
func (e *env) load(cmd *cobra.Command) error {
	var paths []string
	if e.configPath != "" {
		paths = append(paths, e.configPath)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("workers") {
		cfg.Pool.Workers = e.workers
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = e.logLevel
	}

	closeLog, err := logx.Init(cfg.Log)
	if err != nil {
		return err
	}
	e.cfg, e.closeLog = cfg, closeLog
	return nil
}

// close flushes the logger opened by load. It is safe to call more than
// once and when load never ran.
func (e *env) close() {
	if e.closeLog != nil {
		e.closeLog()
		e.closeLog = nil
	}
}

// newDevice builds a pool and a Device on top of it. The caller closes the
// pool.
func (e *env) newDevice() (*workerpool.Pool, *dispatch.Device) {
	var opts []workerpool.Option
	if e.cfg.Pool.MaxPending > 0 {
		opts = append(opts, workerpool.WithMaxPending(e.cfg.Pool.MaxPending))
	}
	pool := workerpool.New(e.cfg.Pool.Workers, opts...)
	logger.Debugf("ksort: pool with %d workers", pool.NumWorkers())

	d := dispatch.NewDispatcher(pool,
		dispatch.WithQSortOptions(qsort.WithSplitThreshold(e.cfg.Engine.SplitThreshold)))
	return pool, dispatch.NewDevice(d)
}

func makeKsortCommand() (*cobra.Command, *env) {
	e := &env{}
	command := &cobra.Command{
		Use:   "ksort [command] (flags)",
		Short: "ksort sorts fixed-width integer records with a parallel quicksort and two baselines.",
		Long: `ksort sorts fixed-width integer records with a parallel quicksort, a stable
list merge sort and a single-threaded heapsort. Use it to:

- sort integers given on the command line with a chosen method.
- sweep input sizes and compare the methods' caller-side and sort-phase times.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
	}
	e.addFlags(command.PersistentFlags())

	// Add subcommands.
	command.AddCommand(makeSortCommand(e))
	command.AddCommand(makeBenchCommand(e))
	command.AddCommand(makeConfigCommand(e))

	return command, e
}

// execute runs command and closes the log afterwards, including when a
// subcommand failed.
func execute(command *cobra.Command, e *env) error {
	defer e.close()
	return command.Execute()
}
