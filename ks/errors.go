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

package ks

import "github.com/pkg/errors"

var (
	// ErrResourceExhausted reports that a sort could not obtain the task it
	// needed to continue. The buffer is left in an unspecified permutation.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidMethod reports an unrecognized method selector. The buffer is
	// left unchanged.
	ErrInvalidMethod = errors.New("invalid sort method")

	// ErrNullComparator is returned before any record is touched when a sort
	// is started without a comparator.
	ErrNullComparator = errors.New("nil comparator")

	// ErrNullListHead is returned when a linked sequence is required but nil.
	ErrNullListHead = errors.New("nil list head")

	// ErrBufferSize reports a byte slice that does not hold count records of
	// the requested size.
	ErrBufferSize = errors.New("buffer size mismatch")
)
