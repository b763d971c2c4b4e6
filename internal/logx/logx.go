// Package logx configures the process-wide logger.
package logx

import (
	"github.com/pkg/errors"
	"github.com/toolkits/pkg/logger"
)

type Config struct {
	Dir        string
	Level      string `default:"INFO"`
	Output     string `default:"stderr"`
	KeepHours  int
	RotateNum  int
	RotateSize int64
}

// Init applies c and returns a function that flushes and closes the logger.
func Init(c Config) (func(), error) {
	switch c.Output {
	case "", "stderr":
		logger.LogToStderr()
	case "file":
		lb, err := logger.NewFileBackend(c.Dir)
		if err != nil {
			return nil, errors.WithMessage(err, "NewFileBackend failed")
		}

		if c.KeepHours != 0 {
			lb.SetRotateByHour(true)
			lb.SetKeepHours(uint(c.KeepHours))
		} else if c.RotateNum != 0 {
			lb.Rotate(c.RotateNum, uint64(c.RotateSize)*1024*1024)
		} else {
			return nil, errors.New("KeepHours and RotateNum both are 0")
		}

		logger.SetLogging(c.Level, lb)
	default:
		return nil, errors.Errorf("unknown log output %q, valid outputs: stderr, file", c.Output)
	}

	if c.Level != "" {
		logger.SetSeverity(c.Level)
	}

	return func() {
		logger.Close()
	}, nil
}

// MustStderr routes logs to stderr at level and panics on failure. Tests use
// it from TestMain.
func MustStderr(level string) {
	if _, err := Init(Config{Output: "stderr", Level: level}); err != nil {
		panic(err)
	}
}
