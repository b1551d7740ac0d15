package probe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/disasterdash/internal/adapters/repository"
	"github.com/okian/disasterdash/internal/domain/model"
	"github.com/okian/disasterdash/pkg/logger"
)

const workerChannelMultiplier = 2

// Run executes a complete probe and returns ErrMismatch when the server
// disagrees with the data.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting disasterdash probe",
		logger.String("baseURL", config.BaseURL),
		logger.String("data", config.DataPath),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	table, err := repository.LoadCSV(ctx, config.DataPath, repository.WithDelimiter(config.Comma))
	if err != nil {
		return stats, err
	}

	client := newHTTPClient(config.BaseURL, config.Timeout)
	if _, err := client.Get(ctx, "/healthz", nil); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	controls, err := client.fetchOptions(ctx)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	stats.Mismatches = append(stats.Mismatches, verifyYears(table.Years(), controls.Years)...)

	checks := buildChecks(controls.Years, controls.PredictionYear)
	mismatches := runChecks(ctx, config, client, checks, controls.PredictionYear, table.Records(), stats)
	stats.Mismatches = append(stats.Mismatches, mismatches...)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if len(stats.Mismatches) > 0 || stats.Errors > 0 {
		return stats, fmt.Errorf("%w: %d mismatches, %d errors", ErrMismatch, len(stats.Mismatches), stats.Errors)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// runChecks fans checks out over config.Workers goroutines.
func runChecks(ctx context.Context, config *Config, client *HTTPClient, checks []Check, predictionYear int, rows []model.Record, stats *Stats) []Mismatch {
	log := logger.Get()
	workers := max(1, min(config.Workers, len(checks)))

	var (
		passed, failed, errs int64
		mu                   sync.Mutex
		out                  []Mismatch
		wg                   sync.WaitGroup
	)
	checkChan := make(chan Check, workers*workerChannelMultiplier)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for check := range checkChan {
				resp, err := client.fetchView(ctx, check)
				var found []Mismatch
				if err == nil {
					found, err = verifyView(check, predictionYear, rows, resp)
				}
				switch {
				case err != nil:
					atomic.AddInt64(&errs, 1)
					log.Error(ctx, "check failed", logger.Int("year", check.Year), logger.String("risk", check.Risk), logger.Error(err))
				case len(found) > 0:
					atomic.AddInt64(&failed, 1)
					mu.Lock()
					out = append(out, found...)
					mu.Unlock()
					for _, m := range found {
						log.Warn(ctx, "mismatch",
							logger.Int("year", m.Check.Year), logger.String("risk", m.Check.Risk),
							logger.String("field", m.Field), logger.String("want", m.Want), logger.String("got", m.Got))
					}
				default:
					atomic.AddInt64(&passed, 1)
					if config.Verbose {
						log.Info(ctx, "check passed", logger.Int("year", check.Year), logger.String("risk", check.Risk))
					}
				}
			}
		}()
	}

	go func() {
		defer close(checkChan)
		for _, c := range checks {
			select {
			case <-ctx.Done():
				return
			case checkChan <- c:
			}
		}
	}()
	wg.Wait()

	stats.Checks = len(checks)
	stats.Passed = int(atomic.LoadInt64(&passed))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Errors = int(atomic.LoadInt64(&errs))
	return out
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("checks", stats.Checks),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Int("errors", stats.Errors),
		logger.Int("mismatches", len(stats.Mismatches)),
		logger.Duration("duration", stats.Duration))
}
