// Package config loads ksort settings from struct tag defaults, optional
// TOML or JSON files and KSORT_* environment variables, in that order.
package config

import (
	"strings"

	"github.com/koding/multiconfig"
	"github.com/pkg/errors"

	"github.com/SimonLee0316/ksort/internal/logx"
)

// EnvPrefix prefixes every environment override, e.g. KSORT_POOL_WORKERS.
const EnvPrefix = "KSORT"

type Config struct {
	Log    logx.Config
	Pool   Pool
	Engine Engine
	Bench  Bench
}

type Pool struct {
	// Workers is the number of pool goroutines; 0 means GOMAXPROCS.
	Workers int
	// MaxPending bounds queued tasks; 0 means unbounded.
	MaxPending int
}

type Engine struct {
	SplitThreshold int    `default:"100"`
	Method         string `default:"qsort"`
}

type Bench struct {
	Start  int    `default:"1000"`
	End    int    `default:"20000"`
	Step   int    `default:"500"`
	Seed   int64  `default:"1"`
	Verify bool   `default:"true"`
}

// Load builds a Config. Later sources override earlier ones.
func Load(fpaths ...string) (*Config, error) {
	loaders := []multiconfig.Loader{
		&multiconfig.TagLoader{},
	}

	for _, fpath := range fpaths {
		switch {
		case strings.HasSuffix(fpath, "toml"), strings.HasSuffix(fpath, "conf"):
			loaders = append(loaders, &multiconfig.TOMLLoader{Path: fpath})
		case strings.HasSuffix(fpath, "json"):
			loaders = append(loaders, &multiconfig.JSONLoader{Path: fpath})
		default:
			return nil, errors.Errorf("config file %s invalid, valid file exts: .conf,.toml,.json", fpath)
		}
	}

	loaders = append(loaders, &multiconfig.EnvironmentLoader{Prefix: EnvPrefix, CamelCase: true})

	m := multiconfig.DefaultLoader{
		Loader:    multiconfig.MultiLoader(loaders...),
		Validator: multiconfig.MultiValidator(&multiconfig.RequiredValidator{}),
	}

	c := new(Config)
	if err := m.Load(c); err != nil {
		return nil, errors.WithMessage(err, "load config")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Pool.Workers < 0 {
		return errors.Errorf("Pool.Workers must be >= 0, got %d", c.Pool.Workers)
	}
	if c.Pool.MaxPending < 0 {
		return errors.Errorf("Pool.MaxPending must be >= 0, got %d", c.Pool.MaxPending)
	}
	if c.Engine.SplitThreshold < 1 {
		return errors.Errorf("Engine.SplitThreshold must be >= 1, got %d", c.Engine.SplitThreshold)
	}
	if c.Bench.Step < 1 {
		return errors.Errorf("Bench.Step must be >= 1, got %d", c.Bench.Step)
	}
	if c.Bench.Start < 0 || c.Bench.Start > c.Bench.End {
		return errors.Errorf("Bench range [%d, %d] invalid", c.Bench.Start, c.Bench.End)
	}
	return nil
}
