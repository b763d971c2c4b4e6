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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/SimonLee0316/ksort/ks"
	"github.com/SimonLee0316/ksort/ks/contrib/dispatch"
)

func makeSortCommand(e *env) *cobra.Command {
	var method string
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("method") {
			method = e.cfg.Engine.Method
		}
		m, err := dispatch.ParseMethod(method)
		if err != nil {
			return err
		}

		buf, err := ks.NewBuffer(make([]byte, 4*len(args)), len(args), 4)
		if err != nil {
			return err
		}
		vals, err := ks.View[int32](buf)
		if err != nil {
			return err
		}
		for i, arg := range args {
			v, err := strconv.ParseInt(arg, 10, 32)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i+1)
			}
			vals[i] = int32(v)
		}

		pool, dev := e.newDevice()
		defer pool.Close()

		dev.SetMethod(m)
		if _, err := dev.Sort(buf.Bytes()); err != nil {
			return err
		}

		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = strconv.FormatInt(int64(v), 10)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, strings.Join(strs, " "))
		fmt.Fprintf(out, "%s: %s\n", m, dev.Elapsed())
		return nil
	}

	cmd := &cobra.Command{
		Use:   "sort <int32>...",
		Short: "Sort the integers given as arguments and print them in ascending order",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCmdFunc,
	}
	cmd.Flags().StringVar(&method, "method", "qsort", "sort method: listsort (timsort), refsort (linuxsort), qsort or pdqsort")
	return cmd
}
