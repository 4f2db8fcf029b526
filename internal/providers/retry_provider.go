package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

type sleepFunc func(ctx context.Context, d time.Duration) error

// retryingSource wraps an EventSource with per-call retry/backoff and records every attempt.
type retryingSource struct {
	inner       EventSource
	logger      *slog.Logger
	metrics     *metrics.Recorder
	maxAttempts int
	newBackoff  func() backoff.BackOff
	sleep       sleepFunc
}

// NewRetryingSource wraps the given source with retries. If maxAttempts/initial backoff are <= 0, defaults are used.
// Only errors classified by IsRetryable are repeated.
func NewRetryingSource(inner EventSource, logger *slog.Logger, recorder *metrics.Recorder, maxAttempts int, initial time.Duration) EventSource {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		maxAttempts: maxAttempts,
		newBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
		sleep: sleepContext,
	}
}

func (r *retryingSource) FetchRoster(ctx context.Context, eventCode string) ([]string, error) {
	return withRetry(ctx, r, EndpointRoster, func(ctx context.Context, src EventSource) ([]string, error) {
		return src.FetchRoster(ctx, eventCode)
	})
}

func (r *retryingSource) FetchProfile(ctx context.Context, teamNumber string) (events.Profile, error) {
	return withRetry(ctx, r, EndpointProfile, func(ctx context.Context, src EventSource) (events.Profile, error) {
		return src.FetchProfile(ctx, teamNumber)
	})
}

func (r *retryingSource) FetchRating(ctx context.Context, teamNumber string) (events.Rating, error) {
	return withRetry(ctx, r, EndpointRating, func(ctx context.Context, src EventSource) (events.Rating, error) {
		return src.FetchRating(ctx, teamNumber)
	})
}

func withRetry[T any](ctx context.Context, r *retryingSource, endpoint string, op func(context.Context, EventSource) (T, error)) (T, error) {
	var zero T
	if r == nil || r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	b := r.newBackoff()
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		attempts = attempt
		start := time.Now()
		result, err := op(ctx, r.inner)
		r.metrics.RecordUpstreamAttempt(endpoint, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(endpoint, rlErr.RetryAfter)
		}

		if attempt == r.maxAttempts || !IsRetryable(err) {
			break
		}

		delay := computeDelay(err, b)
		logWithEndpoint(ctx, r.logger, slog.LevelWarn, endpoint, "upstream fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return zero, sleepErr
		}
	}

	if attempts > 1 {
		logWithEndpoint(ctx, r.logger, slog.LevelWarn, endpoint, "upstream fetch failed", "attempts", attempts, "err", lastErr)
	}
	return zero, lastErr
}

// computeDelay honors Retry-After on rate limits and otherwise takes the next jittered exponential interval.
func computeDelay(err error, b backoff.BackOff) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	next := b.NextBackOff()
	if next == backoff.Stop || next < 0 {
		return defaultBackoff
	}
	return next
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
