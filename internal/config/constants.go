package config

import "time"

const (
	envPort               = "PORT"
	envLogLevel           = "LOG_LEVEL"
	envLogFormat          = "LOG_FORMAT"
	envBaseURL            = "FTCSCOUT_BASE_URL"
	envUpstreamTimeout    = "UPSTREAM_TIMEOUT"
	envUpstreamAttempts   = "UPSTREAM_MAX_ATTEMPTS"
	envUpstreamBackoff    = "UPSTREAM_BACKOFF"
	envUpstreamConcurrent = "UPSTREAM_MAX_CONCURRENCY"
	envAggregateTimeout   = "AGGREGATE_TIMEOUT"
	envAllowEmptyRoster   = "ALLOW_EMPTY_ROSTER"
	envCORSOrigins        = "CORS_ALLOWED_ORIGINS"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"
	envViewerDebounce     = "VIEWER_DEBOUNCE"

	defaultPort        = "4000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultBaseURL     = "https://api.ftcscout.org/rest/v1"
	defaultServiceName = "ftc-event-service"
	defaultMetricsPort = "9090"

	defaultUpstreamTimeout = 10 * time.Second
	// One attempt keeps upstream traffic identical to a plain client; raise to enable retries.
	defaultUpstreamAttempts = 1
	defaultUpstreamBackoff  = 200 * time.Millisecond
	// Zero means one goroutine per roster entry.
	defaultUpstreamConcurrency = 0
	defaultAggregateTimeout    = 30 * time.Second
	defaultViewerDebounce      = 500 * time.Millisecond
)

var defaultCORSOrigins = []string{"*"}
