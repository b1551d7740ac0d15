package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/okian/disasterdash/internal/probe"
	"github.com/okian/disasterdash/pkg/logger"
)

const (
	defaultTimeout      = 30 * time.Second
	workerCPUMultiplier = 2
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		data    = flag.String("data", "my_data/merged.csv", "Merged disaster CSV the service was started with")
		delim   = flag.String("delimiter", ",", "CSV field delimiter")
		workers = flag.Int("workers", runtime.NumCPU()*workerCPUMultiplier, "Number of concurrent workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file for probe output (default: probe_log_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Log every passing check")
		help    = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	closer, err := probe.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comma, size := utf8.DecodeRuneInString(*delim)
	if size == 0 || size != len(*delim) {
		logger.Get().Error(ctx, "delimiter must be a single character", logger.String("delimiter", *delim))
		_ = closer.Close()
		os.Exit(1)
	}

	cfg := &probe.Config{
		BaseURL:  *baseURL,
		DataPath: *data,
		Comma:    comma,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}
	if _, err := probe.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		_ = closer.Close()
		os.Exit(1)
	}
}
