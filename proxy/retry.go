package proxy

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faleproxy"
)

// Ensure RetryFetcher implements faleproxy.Fetcher at compile time.
var _ faleproxy.Fetcher = (*RetryFetcher)(nil)

// RetryDelays returns the first n delays of an exponential backoff starting at 1s.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// RetryFetcher retries failed fetches with a fixed backoff schedule.
// With no delays configured it makes a single attempt.
type RetryFetcher struct {
	next   faleproxy.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next so that each failed attempt is retried after
// the corresponding delay. The logger, if non-nil, records every retry.
func NewRetryFetcher(next faleproxy.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts the fetch up to len(delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if f.logger != nil {
			f.logger.Warn("retry fetch",
				"url", url,
				"attempt", attempt+2,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
