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

package dispatch

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/SimonLee0316/ksort/ks"
)

//go:generate go tool stringer -type=Method

// Method selects a sort implementation. The numeric values are part of the
// device protocol and must not change.
type Method int32

const (
	// ListSort is the stable merge sort over a linked list.
	ListSort Method = 0
	// ReferenceSort is the single-threaded heapsort baseline.
	ReferenceSort Method = 1
	// QSort is the parallel quicksort engine.
	QSort Method = 2
	// PDQSort is accepted but not implemented; selecting it sorts nothing.
	PDQSort Method = 3
)

// Methods lists every selector in protocol order.
var Methods = []Method{ListSort, ReferenceSort, QSort, PDQSort}

// Valid reports whether m is a known selector.
func (m Method) Valid() bool {
	return m >= ListSort && m <= PDQSort
}

// label is the metric label value for m.
func (m Method) label() string {
	if !m.Valid() {
		return "invalid"
	}
	return strings.ToLower(m.String())
}

var methodNames = map[string]Method{
	"listsort":      ListSort,
	"list":          ListSort,
	"timsort":       ListSort,
	"referencesort": ReferenceSort,
	"refsort":       ReferenceSort,
	"heapsort":      ReferenceSort,
	"linuxsort":     ReferenceSort,
	"qsort":         QSort,
	"quicksort":     QSort,
	"pdqsort":       PDQSort,
}

// ParseMethod accepts a method name, one of its historical aliases
// (timsort, linuxsort), or the numeric selector.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if m, ok := methodNames[key]; ok {
		return m, nil
	}
	if n, err := strconv.ParseInt(key, 10, 32); err == nil {
		if m := Method(n); m.Valid() {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ks.ErrInvalidMethod, "%q", s)
}
