package workload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/poolkit/pkg/config"
	"github.com/ajitpratap0/poolkit/pkg/metrics"
	"github.com/ajitpratap0/poolkit/pkg/poolerrors"
)

func testConfig(workload string, goroutines int) *config.Config {
	cfg := config.Default()
	cfg.Workload = workload
	cfg.Pool.Capacity = 64
	cfg.Run.Goroutines = goroutines
	cfg.Run.Ops = 2000
	cfg.Run.LiveSet = 8
	return cfg
}

func TestRunnerWorkloads(t *testing.T) {
	tests := []struct {
		workload   string
		goroutines int
		fake       bool
		wantOps    int64
	}{
		{workload: "churn", goroutines: 1, wantOps: 2000},
		{workload: "churn", goroutines: 4, wantOps: 8000},
		{workload: "churn", goroutines: 2, fake: true, wantOps: 4000},
		{workload: "cow", goroutines: 1, wantOps: 2000},
		{workload: "cow", goroutines: 4, wantOps: 8000},
		{workload: "fanout", goroutines: 1, wantOps: 2000},
		// With four workers, two produce and two consume.
		{workload: "fanout", goroutines: 4, wantOps: 4000},
		{workload: "fanout", goroutines: 4, fake: true, wantOps: 4000},
	}

	for _, tt := range tests {
		name := tt.workload
		if tt.fake {
			name += "/fake"
		}
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(tt.workload, tt.goroutines)
			cfg.Pool.Fake = tt.fake
			require.NoError(t, cfg.Validate())

			runner := NewRunner(cfg, zaptest.NewLogger(t))
			report, err := runner.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.workload, report.Workload)
			assert.Equal(t, tt.fake, report.Fake)
			assert.Equal(t, tt.goroutines, report.Goroutines)
			assert.Equal(t, tt.wantOps, report.Ops)
			assert.Greater(t, report.OpsPerSecond, float64(0))
			assert.Equal(t, 64, report.PoolCapacity)

			if tt.fake {
				assert.Equal(t, 0, report.PoolSize)
				assert.Zero(t, report.PoolStats)
			} else {
				assert.Positive(t, report.PoolStats.Reused+report.PoolStats.Fresh)
			}
		})
	}
}

func TestRunnerChurnRecycles(t *testing.T) {
	cfg := testConfig("churn", 1)
	cfg.Pool.Prewarm = false

	runner := NewRunner(cfg, zaptest.NewLogger(t))
	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	// A bounded live set over a large op count means almost every
	// construction after warm-up is served from the free-list.
	assert.Greater(t, report.PoolStats.Reused, report.PoolStats.Fresh)
	assert.LessOrEqual(t, report.PoolSize, cfg.Pool.Capacity)
}

func TestRunnerNullPool(t *testing.T) {
	cfg := testConfig("churn", 2)
	cfg.Pool.Capacity = 0
	cfg.Pool.Prewarm = false

	runner := NewRunner(cfg, zaptest.NewLogger(t))
	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.PoolSize)
	assert.Zero(t, report.PoolStats.Reused)
	assert.Equal(t, report.Ops, report.PoolStats.Fresh)
}

func TestRunnerUnknownWorkload(t *testing.T) {
	cfg := testConfig("churn", 1)
	cfg.Workload = "scan"

	runner := NewRunner(cfg, zaptest.NewLogger(t))
	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.True(t, poolerrors.IsType(err, poolerrors.ErrorTypeWorkload))
}

func TestRunnerHonoursCancellation(t *testing.T) {
	cfg := testConfig("churn", 2)
	cfg.Run.Ops = 1 << 30

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(cfg, zaptest.NewLogger(t))
	_, err := runner.Run(ctx)
	require.Error(t, err)
	assert.True(t, poolerrors.IsType(err, poolerrors.ErrorTypeWorkload))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerTimeout(t *testing.T) {
	cfg := testConfig("cow", 2)
	cfg.Run.Ops = 1 << 30
	cfg.Run.Timeout = 50 * time.Millisecond

	runner := NewRunner(cfg, zaptest.NewLogger(t))
	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunnerRegistersMetrics(t *testing.T) {
	cfg := testConfig("churn", 1)

	pm := metrics.NewPoolMetrics()
	runner := NewRunner(cfg, zaptest.NewLogger(t))
	runner.SetMetrics(pm)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
}

func TestRunnerReportsMemory(t *testing.T) {
	cfg := testConfig("churn", 1)

	runner := NewRunner(cfg, zaptest.NewLogger(t))
	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Positive(t, report.Memory.HeapAlloc)
	assert.Positive(t, report.Memory.TotalAlloc)
}
