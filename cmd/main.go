package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/disasterdash/internal/adapters/geo"
	"github.com/okian/disasterdash/internal/adapters/http/api"
	"github.com/okian/disasterdash/internal/adapters/http/site"
	"github.com/okian/disasterdash/internal/adapters/http/swagger"
	"github.com/okian/disasterdash/internal/adapters/repository"
	app "github.com/okian/disasterdash/internal/app"
	"github.com/okian/disasterdash/internal/config"
	"github.com/okian/disasterdash/pkg/logger"
	"github.com/okian/disasterdash/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "dashboard stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc, err := loadService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	mux, err := newMux(ctx, cfg, svc, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutMS)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info(ctx, "server stopped")
	return nil
}

// loadService reads the table and boundaries and starts the controller.
// Any load failure is fatal: the dashboard cannot render without both.
func loadService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	start := time.Now()
	table, err := repository.LoadCSV(ctx, cfg.DataPath, repository.WithDelimiter(cfg.Delimiter()))
	if err != nil {
		return nil, err
	}
	boundaries, err := geo.Load(ctx, cfg.BoundariesPath)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(float64(elapsed.Microseconds()) / 1000)
	log.Info(ctx, "dataset loaded",
		logger.String("data_path", cfg.DataPath),
		logger.Int("rows", table.Len()),
		logger.Int("polygons", boundaries.Len()),
		logger.Duration("elapsed", elapsed),
	)

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(table),
		app.WithBoundaries(boundaries),
		app.WithPredictionYear(cfg.PredictionYear),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("start service: %w", err)
	}
	return svc, nil
}

// newMux registers the page, docs and API routes.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	page, err := site.NewHandler(svc,
		site.WithTitle(cfg.Title, cfg.Subtitle),
		site.WithLogger(log.Named("site")),
	)
	if err != nil {
		return nil, err
	}
	site.Register(ctx, mux, page)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, log.Named("api")).Register(ctx, mux)
	return mux, nil
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
