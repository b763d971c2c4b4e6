// Copyright 2025 The ksort Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"os"
	"testing"

	"github.com/SimonLee0316/ksort/internal/logx"
)

func TestMain(m *testing.M) {
	logx.MustStderr("ERROR")
	os.Exit(m.Run())
}
