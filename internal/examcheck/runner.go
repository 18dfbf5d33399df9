// Package examcheck replays every catalog sample against a running API
// and verifies each answer against the catalog's expected value.
package examcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/examprep/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Run executes the complete replay check. The returned report is non-nil
// whenever the service could be reached; the error wraps ErrMismatch when
// any sample failed or mismatched.
func Run(ctx context.Context, config *Config) (*Report, error) {
	report := &Report{
		StartTime: time.Now(),
	}

	workers := config.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger.Get().Info(ctx, "starting exam-prep sample check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", workers),
		logger.Duration("timeout", timeout),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.BaseURL, timeout)
	defer client.Close()

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Collect samples
	topics, err := client.fetchTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("topic listing failed: %w", err)
	}
	report.Topics = topics

	var pending []SampleResult
	var data []map[string]any
	for _, topic := range topics {
		content, err := client.fetchSamples(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("sample listing for %s failed: %w", topic, err)
		}
		for _, s := range content.Samples {
			pending = append(pending, SampleResult{Topic: topic, SampleID: s.ID, Expected: s.Expected})
			data = append(data, s.Data)
		}
	}

	// Step 3: Replay samples concurrently
	if err := replaySamples(ctx, client, workers, pending, data); err != nil {
		return nil, fmt.Errorf("sample replay failed: %w", err)
	}
	report.Results = pending

	// Step 4: Verify results
	verifyResults(ctx, report)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	displayFinalStats(ctx, report)

	if !report.OK() {
		return report, fmt.Errorf("%w: %d mismatched, %d failed", ErrMismatch, report.Mismatched, report.Failed)
	}
	logger.Get().Info(ctx, "check completed successfully")
	return report, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	var body struct {
		Status string `json:"status"`
	}
	if err := client.getJSON(ctx, "/health", &body); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, body.Status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// replaySamples solves every sample with at most workers requests in
// flight. Each goroutine writes only its own slot in results.
func replaySamples(ctx context.Context, client *HTTPClient, workers int, results []SampleResult, data []map[string]any) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := &results[i]
			sol, err := client.solve(gctx, r.Topic, data[i])
			if err != nil {
				r.Status = StatusFailed
				r.Err = err.Error()
				return nil
			}
			r.Got = formatResult(sol.Result)
			if answerMatches(r.Expected, sol.Result) {
				r.Status = StatusMatched
			} else {
				r.Status = StatusMismatch
			}
			logger.Get().Debug(gctx, "sample replayed",
				logger.String("topic", r.Topic),
				logger.String("sampleID", r.SampleID),
				logger.String("status", string(r.Status)),
				logger.Int("steps", len(sol.Steps)))
			return nil
		})
	}
	return g.Wait()
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(ctx context.Context, report *Report) {
	var matchRate float64
	if total := len(report.Results); total > 0 {
		matchRate = float64(report.Matched) / float64(total) * PercentageMultiplier
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("topics", len(report.Topics)),
		logger.Int("samples", len(report.Results)),
		logger.Int("matched", report.Matched),
		logger.Int("mismatched", report.Mismatched),
		logger.Int("failed", report.Failed),
		logger.Duration("duration", report.Duration),
		logger.Float64("matchRate", matchRate))
}
