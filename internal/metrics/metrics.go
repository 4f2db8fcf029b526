package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type aggregationStats struct {
	calls         int
	errors        int
	degradedTeams int
	lastLatency   time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and aggregations.
// When built by Setup it also forwards every observation to OpenTelemetry instruments.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*endpointStats
	aggregation aggregationStats
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// RecordUpstreamAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordAggregation tracks one roster aggregation, its size and how many teams degraded.
func (r *Recorder) RecordAggregation(duration time.Duration, teams, degraded int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.aggregation.calls++
	r.aggregation.lastLatency = duration
	r.aggregation.degradedTeams += degraded
	if err != nil {
		r.aggregation.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAggregation(duration, teams, degraded, err)
	}
}

// UpstreamCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) UpstreamCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// UpstreamErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) UpstreamErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// RateLimitHits returns the number of rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	return r.Snapshot(endpoint).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an endpoint.
func (r *Recorder) LastRetryAfter(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an endpoint call.
func (r *Recorder) LastCallLatency(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastCallLatency
}

// Snapshot returns a copy of the current stats for the endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// AggregationSnapshot is a copy of the aggregation counters.
type AggregationSnapshot struct {
	Calls         int
	Errors        int
	DegradedTeams int
	LastLatency   time.Duration
}

// Aggregations returns a copy of the aggregation counters.
func (r *Recorder) Aggregations() AggregationSnapshot {
	if r == nil {
		return AggregationSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return AggregationSnapshot{
		Calls:         r.aggregation.calls,
		Errors:        r.aggregation.errors,
		DegradedTeams: r.aggregation.degradedTeams,
		LastLatency:   r.aggregation.lastLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(endpoint string) *endpointStats {
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}
