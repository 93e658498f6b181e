package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pagepulse/pagepulse/internal/adapters/report"
	"github.com/pagepulse/pagepulse/internal/adapters/repository"
	"github.com/pagepulse/pagepulse/internal/adapters/scorer"
	service "github.com/pagepulse/pagepulse/internal/app"
	"github.com/pagepulse/pagepulse/internal/config"
	"github.com/pagepulse/pagepulse/internal/domain/sampler"
	"github.com/pagepulse/pagepulse/internal/domain/scoring"
	"github.com/pagepulse/pagepulse/pkg/logger"
)

// HTTP server timeout constants for the metrics listener.
const (
	metricsReadTimeout       = 10 * time.Second
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baselineMode = flag.Bool("baseline", false, "Write snapshots to the baseline slot instead of latest (no reports)")
		urlOverride  = flag.String("url", "", "Process exactly this URL instead of the configured set")
		configPath   = flag.String("config", "", "Path to the YAML config file (default: $PAGEPULSE_CONFIG)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	urls := cfg.URLs
	if *urlOverride != "" {
		urls = []string{*urlOverride}
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Error(ctx, "failed to open snapshot store", logger.Error(err))
		return 1
	}
	defer func() { _ = store.Close() }()

	scr := newScorer(cfg)
	repo := repository.New(store, repository.WithLogger(log))
	smp := sampler.New(scr,
		sampler.WithRunCount(cfg.RunCount),
		sampler.WithPause(time.Duration(cfg.PauseMS)*time.Millisecond),
		sampler.WithLogger(log),
	)

	svc := service.New(smp, repo,
		service.WithURLs(urls),
		service.WithBaselineMode(*baselineMode),
		service.WithKeepRaw(cfg.KeepRaw),
		service.WithRenderer(report.NewHTMLRenderer(cfg.ReportDir, report.WithHTMLLogger(log))),
		service.WithLogger(log),
	)

	// Optional Prometheus endpoint for long-lived/scheduled deployments.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	summary, err := svc.Run(ctx)
	if err != nil {
		if errors.Is(err, service.ErrAllURLsFailed) {
			log.Error(ctx, "no url produced a snapshot", logger.Error(err))
		} else {
			log.Error(ctx, "pipeline run aborted", logger.Error(err))
		}
		return 1
	}

	log.Info(ctx, "run complete",
		logger.String("runID", summary.RunID),
		logger.Int("succeeded", len(summary.Succeeded)),
		logger.Int("failed", len(summary.Failed)),
	)
	return 0
}

// newStore builds the configured snapshot store backend.
func newStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = cfg.DataDir + "/pagepulse.db"
		}
		return repository.NewSQLiteStore(path)
	default:
		return repository.NewFileStore(cfg.DataDir), nil
	}
}

// newScorer builds the configured scorer implementation.
func newScorer(cfg *config.Config) scoring.Scorer {
	switch cfg.Scorer {
	case config.ScorerCLI:
		return scorer.NewCLIScorer(cfg.LighthouseBin)
	case config.ScorerStatic:
		return scoring.NewStaticScorer()
	default:
		return scorer.NewPSIScorer(cfg.PSIBaseURL,
			scorer.WithAPIKey(cfg.PSIAPIKey),
			scorer.WithTimeout(time.Duration(cfg.PSITimeoutMS)*time.Millisecond),
		)
	}
}

// serveMetrics exposes /metrics until the context is cancelled.
func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       metricsReadTimeout,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "metrics listener starting", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "metrics listener failed: %v\n", err)
	}
}
