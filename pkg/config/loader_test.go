package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/poolkit/pkg/poolerrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poolbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load("", cfg))

	def := Default()
	assert.Equal(t, def.Workload, cfg.Workload)
	assert.Equal(t, def.Pool.Capacity, cfg.Pool.Capacity)
	assert.Equal(t, def.Log.Level, cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
workload: cow
pool:
  capacity: 512
  prewarm: false
run:
  goroutines: 2
  ops: 1000
  timeout: 30s
output:
  path: report.json
`)

	cfg := &Config{}
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, "cow", cfg.Workload)
	assert.Equal(t, 512, cfg.Pool.Capacity)
	assert.False(t, cfg.Pool.Prewarm)
	assert.Equal(t, 2, cfg.Run.Goroutines)
	assert.Equal(t, 1000, cfg.Run.Ops)
	assert.Equal(t, 30*time.Second, cfg.Run.Timeout)
	assert.Equal(t, "report.json", cfg.Output.Path)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, Default().Run.LiveSet, cfg.Run.LiveSet)
	assert.Equal(t, Default().Log.Level, cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &Config{})
	require.Error(t, err)
	assert.True(t, poolerrors.IsType(err, poolerrors.ErrorTypeConfig))
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "workload: [unterminated")
	err := Load(path, &Config{})
	require.Error(t, err)
	assert.True(t, poolerrors.IsType(err, poolerrors.ErrorTypeConfig))
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("POOLBENCH_TEST_REPORT", "/tmp/out.json")

	path := writeConfig(t, `
output:
  path: ${POOLBENCH_TEST_REPORT}
`)

	cfg := &Config{}
	require.NoError(t, Load(path, cfg))
	assert.Equal(t, "/tmp/out.json", cfg.Output.Path)
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("POOLBENCH_WORKLOAD", "fanout")
	t.Setenv("POOLBENCH_POOL_CAPACITY", "9999")

	cfg := &Config{}
	require.NoError(t, Load("", cfg))

	assert.Equal(t, "fanout", cfg.Workload)
	assert.Equal(t, 9999, cfg.Pool.Capacity)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := Default()
	cfg.Workload = "fanout"
	cfg.Pool.Capacity = 64
	require.NoError(t, Save(path, cfg))

	loaded := &Config{}
	require.NoError(t, Load(path, loaded))
	assert.Equal(t, "fanout", loaded.Workload)
	assert.Equal(t, 64, loaded.Pool.Capacity)
}
