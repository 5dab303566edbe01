// Command poolbench runs allocation workloads against poolkit pools and
// reports throughput, recycle ratios and memory behaviour.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/poolkit/internal/workload"
	"github.com/ajitpratap0/poolkit/pkg/config"
	"github.com/ajitpratap0/poolkit/pkg/logger"
	"github.com/ajitpratap0/poolkit/pkg/metrics"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "poolbench",
		Short: "poolbench - allocation workload driver for poolkit",
		Long: `poolbench drives allocation workloads (churn, cow, fanout) against a
poolkit pool or the fakepool pass-through shim and reports throughput,
recycle ratios and process memory, so the cost and benefit of pooling can
be measured under a controlled load.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("poolbench v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var (
		configFile string
		workloadN  string
		capacity   int
		goroutines int
		ops        int
		fake       bool
		prewarm    bool
		outputPath string
		logLevel   string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workload and emit a JSON report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := config.Load(configFile, cfg); err != nil {
				return err
			}

			// Flags set explicitly override file and environment.
			if cmd.Flags().Changed("workload") {
				cfg.Workload = workloadN
			}
			if cmd.Flags().Changed("capacity") {
				cfg.Pool.Capacity = capacity
			}
			if cmd.Flags().Changed("goroutines") {
				cfg.Run.Goroutines = goroutines
			}
			if cmd.Flags().Changed("ops") {
				cfg.Run.Ops = ops
			}
			if cmd.Flags().Changed("fake") {
				cfg.Pool.Fake = fake
			}
			if cmd.Flags().Changed("prewarm") {
				cfg.Pool.Prewarm = prewarm
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = outputPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.Log.Level,
				Development: cfg.Log.Development,
				Encoding:    cfg.Log.Encoding,
			}); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return runWorkload(cmd.Context(), cfg)
		},
	}
	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration")
	runCmd.Flags().StringVarP(&workloadN, "workload", "w", "churn", "Workload to run (churn, cow, fanout)")
	runCmd.Flags().IntVar(&capacity, "capacity", 4096, "Pool capacity (0 for the null pool)")
	runCmd.Flags().IntVar(&goroutines, "goroutines", runtime.NumCPU(), "Concurrent workers")
	runCmd.Flags().IntVar(&ops, "ops", 1_000_000, "Operations per worker")
	runCmd.Flags().BoolVar(&fake, "fake", false, "Use the fakepool pass-through shim")
	runCmd.Flags().BoolVar(&prewarm, "prewarm", true, "Fill the pool before the measured phase")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file (default stdout)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")
	root.AddCommand(runCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWorkload(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	runner := workload.NewRunner(cfg, log)

	if cfg.Metrics.Addr != "" {
		pm := metrics.NewPoolMetrics()
		runner.SetMetrics(pm)
		shutdown := serveMetrics(cfg.Metrics.Addr, pm, log)
		defer shutdown()
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	return writeReport(cfg, report)
}

// serveMetrics starts the Prometheus endpoint for long runs and returns its
// shutdown function.
func serveMetrics(addr string, pm *metrics.PoolMetrics, log *zap.Logger) func() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(pm, collectors.NewGoCollector())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func writeReport(cfg *config.Config, report *workload.Report) error {
	var (
		data []byte
		err  error
	)
	if cfg.Output.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if cfg.Output.Path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cfg.Output.Path, data, 0o644) //nolint:gosec
}
