package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no upstream source is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNotFound marks a 404 from the upstream service.
	ErrNotFound = errors.New("upstream resource not found")
	// ErrMalformedResponse marks a payload that does not have the expected shape.
	ErrMalformedResponse = errors.New("invalid response format from API")
)

// StatusError captures a non-success HTTP status from the upstream service.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from the upstream service.
type RateLimitError struct {
	Endpoint   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsRetryable reports whether a failed upstream call may succeed if repeated.
// Transport failures, 5xx and 429 are transient; not-found, malformed payloads,
// other 4xx and context cancellation are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
