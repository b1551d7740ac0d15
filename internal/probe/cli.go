package probe

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/disasterdash/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging routes the global logger to both stdout and a file.
// If logFile is empty, a timestamped filename is generated. The returned
// closer releases the file.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		logFile = "probe_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file, nil
}

// ShowHelp prints usage information for the probe.
func ShowHelp() {
	os.Stdout.WriteString(`disasterdash consistency probe
==============================

Fetches every year (and every risk tier of the prediction year) from a
running dashboard and compares it with the CSV the dashboard was started with.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -data string
        Merged disaster CSV (default "my_data/merged.csv")
  -delimiter string
        CSV field delimiter (default ",")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for probe output (default: probe_log_TIMESTAMP.log)
  -verbose
        Log every passing check
  -help
        Show this help message

Examples:
  go run ./cmd/probe
  go run ./cmd/probe -url http://localhost:8080 -workers 4 -verbose
`)
}
