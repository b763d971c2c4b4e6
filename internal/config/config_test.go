package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "INFO", c.Log.Level)
	assert.Equal(t, "stderr", c.Log.Output)
	assert.Equal(t, 0, c.Pool.Workers)
	assert.Equal(t, 100, c.Engine.SplitThreshold)
	assert.Equal(t, "qsort", c.Engine.Method)
	assert.Equal(t, Bench{Start: 1000, End: 20000, Step: 500, Seed: 1, Verify: true}, c.Bench)
}

func TestLoadTOML(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "ksort.toml")
	err := os.WriteFile(fpath, []byte(`
[Pool]
Workers = 6
MaxPending = 64

[Engine]
Method = "listsort"

[Bench]
Start = 10
End = 50
Step = 10
Seed = 7
`), 0o644)
	require.NoError(t, err)

	c, err := Load(fpath)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Pool.Workers)
	assert.Equal(t, 64, c.Pool.MaxPending)
	assert.Equal(t, "listsort", c.Engine.Method)
	assert.Equal(t, 100, c.Engine.SplitThreshold)
	assert.Equal(t, 10, c.Bench.Start)
	assert.Equal(t, 50, c.Bench.End)
	assert.Equal(t, int64(7), c.Bench.Seed)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "ksort.toml")
	require.NoError(t, os.WriteFile(fpath, []byte("[Pool]\nWorkers = 6\n"), 0o644))

	t.Setenv("KSORT_POOL_WORKERS", "3")
	t.Setenv("KSORT_ENGINE_SPLIT_THRESHOLD", "250")

	c, err := Load(fpath)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Pool.Workers)
	assert.Equal(t, 250, c.Engine.SplitThreshold)
}

func TestLoadEnvNumericKinds(t *testing.T) {
	t.Setenv("KSORT_BENCH_SEED", "42")
	t.Setenv("KSORT_LOG_KEEP_HOURS", "6")
	t.Setenv("KSORT_LOG_ROTATE_SIZE", "128")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.Bench.Seed)
	assert.Equal(t, 6, c.Log.KeepHours)
	assert.Equal(t, int64(128), c.Log.RotateSize)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("ksort.yaml")
	assert.ErrorContains(t, err, "valid file exts")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	t.Setenv("KSORT_BENCH_STEP", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "Bench.Step")
}
