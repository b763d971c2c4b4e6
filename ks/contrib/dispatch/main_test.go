package dispatch

import (
	"os"
	"testing"

	"github.com/SimonLee0316/ksort/internal/logx"
)

func TestMain(m *testing.M) {
	logx.MustStderr("ERROR")
	os.Exit(m.Run())
}
