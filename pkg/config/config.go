// Package config provides configuration loading for the poolbench tool.
//
// Configuration comes from a YAML file with ${ENV_VAR} substitution,
// overlaid by environment variables under the POOLBENCH_ prefix via viper.
package config

import (
	"runtime"
	"time"

	"github.com/ajitpratap0/poolkit/pkg/poolerrors"
)

// Config is the root configuration for a benchmark run.
type Config struct {
	// Workload selects the scenario: churn, cow or fanout.
	Workload string `yaml:"workload" mapstructure:"workload"`

	Pool    PoolConfig    `yaml:"pool" mapstructure:"pool"`
	Run     RunConfig     `yaml:"run" mapstructure:"run"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// PoolConfig describes the pool under measurement.
type PoolConfig struct {
	// Capacity is the pool's maximum size. Zero measures the null pool.
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
	// Prewarm fills the pool before the measured phase.
	Prewarm bool `yaml:"prewarm" mapstructure:"prewarm"`
	// Fake substitutes the pass-through fakepool implementation.
	Fake bool `yaml:"fake" mapstructure:"fake"`
}

// RunConfig describes how hard to drive the pool.
type RunConfig struct {
	// Goroutines is the number of concurrent workers. Values above one
	// require the shared pool backend and are forced onto it.
	Goroutines int `yaml:"goroutines" mapstructure:"goroutines"`
	// Ops is the number of operations per worker.
	Ops int `yaml:"ops" mapstructure:"ops"`
	// LiveSet is how many handles each worker keeps alive at once.
	LiveSet int `yaml:"live_set" mapstructure:"live_set"`
	// Timeout bounds the whole run. Zero means no bound.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig controls report emission.
type OutputConfig struct {
	// Path receives the JSON report. Empty writes to stdout.
	Path string `yaml:"path" mapstructure:"path"`
	// Pretty indents the JSON report.
	Pretty bool `yaml:"pretty" mapstructure:"pretty"`
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Encoding    string `yaml:"encoding" mapstructure:"encoding"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Default returns a runnable configuration: the churn workload on a warm
// shared pool, one worker per CPU.
func Default() *Config {
	return &Config{
		Workload: "churn",
		Pool: PoolConfig{
			Capacity: 4096,
			Prewarm:  true,
		},
		Run: RunConfig{
			Goroutines: runtime.NumCPU(),
			Ops:        1_000_000,
			LiveSet:    64,
		},
		Output: OutputConfig{
			Pretty: true,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Validate checks the configuration for values the workload engine cannot
// run with.
func (c *Config) Validate() error {
	switch c.Workload {
	case "churn", "cow", "fanout":
	default:
		return poolerrors.Newf(poolerrors.ErrorTypeValidation,
			"unknown workload %q (want churn, cow or fanout)", c.Workload)
	}
	if c.Pool.Capacity < 0 {
		return poolerrors.New(poolerrors.ErrorTypeValidation, "pool capacity must not be negative")
	}
	if c.Run.Goroutines < 1 {
		return poolerrors.New(poolerrors.ErrorTypeValidation, "run needs at least one goroutine")
	}
	if c.Run.Ops < 1 {
		return poolerrors.New(poolerrors.ErrorTypeValidation, "run needs at least one operation per worker")
	}
	if c.Run.LiveSet < 1 {
		return poolerrors.New(poolerrors.ErrorTypeValidation, "live set must hold at least one handle")
	}
	return nil
}
