package workload

import (
	"context"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/poolkit/pkg/config"
	"github.com/ajitpratap0/poolkit/pkg/fakepool"
	"github.com/ajitpratap0/poolkit/pkg/metrics"
	"github.com/ajitpratap0/poolkit/pkg/poolerrors"
	"github.com/ajitpratap0/poolkit/pkg/refpool"
)

// Report is the outcome of one workload run.
type Report struct {
	Workload     string        `json:"workload"`
	Fake         bool          `json:"fake"`
	Goroutines   int           `json:"goroutines"`
	Ops          int64         `json:"ops"`
	Duration     time.Duration `json:"duration_ns"`
	OpsPerSecond float64       `json:"ops_per_second"`

	PoolCapacity int           `json:"pool_capacity"`
	PoolSize     int           `json:"pool_size"`
	PoolStats    refpool.Stats `json:"pool_stats"`

	Memory MemoryReport `json:"memory"`
}

// MemoryReport captures process and runtime memory around the run.
type MemoryReport struct {
	RSSBytes   uint64 `json:"rss_bytes"`
	HeapAlloc  uint64 `json:"heap_alloc_bytes"`
	TotalAlloc uint64 `json:"total_alloc_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

// Runner executes the workload described by a validated configuration.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
	pm  *metrics.PoolMetrics
}

// NewRunner builds a runner. The configuration must have passed Validate.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// SetMetrics attaches a collector; the workload pool is registered under
// the workload name for the duration of the run.
func (r *Runner) SetMetrics(pm *metrics.PoolMetrics) {
	r.pm = pm
}

// Run executes the configured workload and returns its report. The context
// bounds the run; cancellation stops workers at their next checkpoint and
// surfaces as an error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.cfg.Run.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Run.Timeout)
		defer cancel()
	}

	r.log.Info("starting workload",
		zap.String("workload", r.cfg.Workload),
		zap.Bool("fake", r.cfg.Pool.Fake),
		zap.Int("goroutines", r.cfg.Run.Goroutines),
		zap.Int("ops", r.cfg.Run.Ops),
		zap.Int("pool_capacity", r.cfg.Pool.Capacity),
	)

	var (
		report *Report
		err    error
	)
	if r.cfg.Pool.Fake {
		d := &fakeDriver{pool: fakepool.NewSharedPool[Node](r.cfg.Pool.Capacity)}
		r.register(d.pool)
		report, err = run[fakepool.Ref[Node]](ctx, r.cfg, d)
	} else {
		d := &poolDriver{pool: r.newPool()}
		r.register(d.pool)
		report, err = run[refpool.Ref[Node]](ctx, r.cfg, d)
	}
	if err != nil {
		return nil, err
	}

	r.log.Info("workload finished",
		zap.Int64("ops", report.Ops),
		zap.Duration("duration", report.Duration),
		zap.Float64("ops_per_second", report.OpsPerSecond),
		zap.Int64("reused", report.PoolStats.Reused),
		zap.Int64("fresh", report.PoolStats.Fresh),
	)
	return report, nil
}

func (r *Runner) register(src metrics.Source) {
	if r.pm != nil {
		r.pm.Register(r.cfg.Workload, src)
	}
}

// newPool picks the backend from the worker count: a single worker can use
// the unsynchronised pool, anything more requires the shared one.
func (r *Runner) newPool() *refpool.Pool[Node] {
	var pool *refpool.Pool[Node]
	if r.cfg.Run.Goroutines > 1 {
		pool = refpool.NewSharedPool[Node](r.cfg.Pool.Capacity)
	} else {
		pool = refpool.NewPool[Node](r.cfg.Pool.Capacity)
	}
	if r.cfg.Pool.Prewarm {
		pool.Fill()
	}
	return pool
}

func run[H any](ctx context.Context, cfg *config.Config, d driver[H]) (*Report, error) {
	var ops atomic.Int64
	start := time.Now()

	var err error
	switch cfg.Workload {
	case "churn":
		err = runChurn(ctx, cfg, d, &ops)
	case "cow":
		err = runCOW(ctx, cfg, d, &ops)
	case "fanout":
		err = runFanout(ctx, cfg, d, &ops)
	default:
		return nil, poolerrors.Newf(poolerrors.ErrorTypeWorkload, "unknown workload %q", cfg.Workload)
	}
	if err != nil {
		return nil, poolerrors.Wrap(err, poolerrors.ErrorTypeWorkload, "workload aborted")
	}

	elapsed := time.Since(start)
	report := &Report{
		Workload:     cfg.Workload,
		Fake:         cfg.Pool.Fake,
		Goroutines:   cfg.Run.Goroutines,
		Ops:          ops.Load(),
		Duration:     elapsed,
		OpsPerSecond: float64(ops.Load()) / elapsed.Seconds(),
		PoolCapacity: cfg.Pool.Capacity,
		PoolSize:     d.Len(),
		PoolStats:    d.Stats(),
	}
	report.Memory = readMemory()
	return report, nil
}

// checkpointMask controls how often workers poll for cancellation.
const checkpointMask = 0x3FF

func cancelled(ctx context.Context, i int) error {
	if i&checkpointMask != 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// runChurn keeps a bounded live set per worker and turns over its oldest
// handle on every iteration, the allocate-release pattern pooling exists
// to accelerate.
func runChurn[H any](ctx context.Context, cfg *config.Config, d driver[H], ops *atomic.Int64) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Run.Goroutines; w++ {
		w := w
		g.Go(func() error {
			live := make([]H, 0, cfg.Run.LiveSet)
			for i := 0; i < cfg.Run.Ops; i++ {
				if err := cancelled(ctx, i); err != nil {
					return err
				}
				h := d.Construct(uint64(w)<<32 | uint64(i))
				if len(live) == cap(live) {
					d.Release(live[0])
					copy(live, live[1:])
					live[len(live)-1] = h
				} else {
					live = append(live, h)
				}
				ops.Add(1)
			}
			for _, h := range live {
				d.Release(h)
			}
			return nil
		})
	}
	return g.Wait()
}

// runCOW clones a base handle and mutates the clone, exercising the
// copy-on-write detach on every iteration.
func runCOW[H any](ctx context.Context, cfg *config.Config, d driver[H], ops *atomic.Int64) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Run.Goroutines; w++ {
		w := w
		g.Go(func() error {
			base := d.Construct(uint64(w))
			for i := 0; i < cfg.Run.Ops; i++ {
				if err := cancelled(ctx, i); err != nil {
					d.Release(base)
					return err
				}
				c := d.Clone(base)
				d.Mutate(&c)
				d.Release(c)
				ops.Add(1)
			}
			d.Release(base)
			return nil
		})
	}
	return g.Wait()
}

// runFanout passes handles between goroutines through a channel: producers
// construct and send, consumers clone, read and release. With one worker it
// degenerates into a local clone-read-release loop.
func runFanout[H any](ctx context.Context, cfg *config.Config, d driver[H], ops *atomic.Int64) error {
	if cfg.Run.Goroutines == 1 {
		for i := 0; i < cfg.Run.Ops; i++ {
			if err := cancelled(ctx, i); err != nil {
				return err
			}
			h := d.Construct(uint64(i))
			c := d.Clone(h)
			_ = d.Read(c)
			d.Release(c)
			d.Release(h)
			ops.Add(1)
		}
		return nil
	}

	producers := cfg.Run.Goroutines / 2
	consumers := cfg.Run.Goroutines - producers
	ch := make(chan H, 4*cfg.Run.Goroutines)

	prod, pctx := errgroup.WithContext(ctx)
	for w := 0; w < producers; w++ {
		w := w
		prod.Go(func() error {
			for i := 0; i < cfg.Run.Ops; i++ {
				if err := cancelled(pctx, i); err != nil {
					return err
				}
				h := d.Construct(uint64(w)<<32 | uint64(i))
				select {
				case ch <- h:
				case <-pctx.Done():
					d.Release(h)
					return pctx.Err()
				}
			}
			return nil
		})
	}

	cons, cctx := errgroup.WithContext(ctx)
	for w := 0; w < consumers; w++ {
		cons.Go(func() error {
			i := 0
			for h := range ch {
				if err := cancelled(cctx, i); err != nil {
					d.Release(h)
					// Drain so producers are not left blocked on send.
					for h := range ch {
						d.Release(h)
					}
					return err
				}
				i++
				c := d.Clone(h)
				_ = d.Read(c)
				d.Release(c)
				d.Release(h)
				ops.Add(1)
			}
			return nil
		})
	}

	perr := prod.Wait()
	close(ch)
	cerr := cons.Wait()
	if perr != nil {
		return perr
	}
	return cerr
}

// readMemory snapshots process RSS and runtime allocator counters.
func readMemory() MemoryReport {
	var m MemoryReport

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.HeapAlloc = ms.HeapAlloc
	m.TotalAlloc = ms.TotalAlloc
	m.NumGC = ms.NumGC

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			m.RSSBytes = mi.RSS
		}
	}
	return m
}
