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

// Command ksort sorts integers and benchmarks the sort methods against each
// other.
//
// Usage:
//
//	ksort sort --method qsort 5 3 3 1 4 1 5 9 2 6
//	ksort bench --start 1000 --end 20000 --step 500 --metrics
//	ksort bench --method qsort,listsort --seed 7
//	ksort config --config ksort.toml
//
// Every setting can also come from a TOML file (--config) or from KSORT_*
// environment variables such as KSORT_POOL_WORKERS.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := execute(makeKsortCommand()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
