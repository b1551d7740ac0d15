// Package probe checks a running dashboard against the CSV it was started
// with: every year (and every risk tier of the prediction year) is fetched
// over HTTP and compared with a local recomputation.
package probe

import (
	"errors"
	"time"
)

// Errors returned by Run.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("dashboard does not match data")
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	DataPath string        // CSV the service was started with
	Comma    rune          // CSV field delimiter, ',' when zero
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for probe output
	Verbose  bool          // Log every passing check
}

// Check is one request the probe issues.
type Check struct {
	Year int
	Risk string // empty for historical years
}

// Mismatch describes one difference between the server and the data.
type Mismatch struct {
	Check Check
	Field string
	Want  string
	Got   string
}

// Stats holds probe statistics.
type Stats struct {
	Checks     int
	Passed     int
	Failed     int
	Errors     int
	Mismatches []Mismatch
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
