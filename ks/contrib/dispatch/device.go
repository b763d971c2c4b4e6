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
	"encoding/binary"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/SimonLee0316/ksort/ks"
)

// SelectorSize is the size of a method selector written to a Device.
const SelectorSize = 4

// Device exposes the select / sort / query protocol over native-endian
// int32 records:
//
//	dev.Write(selector)  // 4-byte Method
//	dev.Sort(records)    // sorts in place, blocks until done
//	dev.Elapsed()        // sort phase duration of the last sort
type Device struct {
	d *Dispatcher

	mu     sync.Mutex
	method Method
	last   Result
}

// NewDevice returns a Device backed by d with QSort selected.
func NewDevice(d *Dispatcher) *Device {
	return &Device{d: d, method: QSort}
}

// SetMethod selects the method for following Sort calls. Unknown values are
// stored as given and rejected by Sort.
func (v *Device) SetMethod(m Method) {
	v.mu.Lock()
	v.method = m
	v.mu.Unlock()
}

// Method returns the selected method.
func (v *Device) Method() Method {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.method
}

// Write reads a native-endian int32 selector from p.
func (v *Device) Write(p []byte) (int, error) {
	if len(p) != SelectorSize {
		return 0, errors.Errorf("dispatch: selector is %d bytes, got %d", SelectorSize, len(p))
	}
	v.SetMethod(Method(int32(binary.NativeEndian.Uint32(p))))
	return len(p), nil
}

// Sort sorts the int32 records in p ascending with the selected method and
// returns len(p) once they are in order.
func (v *Device) Sort(p []byte) (int, error) {
	if len(p)%4 != 0 {
		return 0, errors.Wrapf(ks.ErrBufferSize, "%d bytes is not a whole number of int32 records", len(p))
	}
	buf, err := ks.NewBuffer(p, len(p)/4, 4)
	if err != nil {
		return 0, err
	}

	res, err := v.d.Sort(buf, v.Method(), ks.Int32Ascending)
	if err != nil {
		return 0, err
	}

	v.mu.Lock()
	v.last = res
	v.mu.Unlock()
	return len(p), nil
}

// Elapsed returns the sort phase duration of the last successful Sort.
func (v *Device) Elapsed() time.Duration {
	return v.LastResult().Elapsed
}

// LastResult returns the full result of the last successful Sort.
func (v *Device) LastResult() Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last
}
