package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envPort, envLogLevel, envLogFormat, envBaseURL, envUpstreamTimeout, envUpstreamAttempts,
		envUpstreamBackoff, envUpstreamConcurrent, envAggregateTimeout, envAllowEmptyRoster,
		envCORSOrigins, envMetricsPort, envMetricsOn, envOtelEndpoint, envOtelService,
		envOtelInsecure, envViewerDebounce,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Upstream.BaseURL != defaultBaseURL {
		t.Fatalf("expected default base url %s, got %s", defaultBaseURL, cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Fatalf("expected 10s upstream timeout, got %s", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.MaxAttempts != 1 {
		t.Fatalf("expected a single attempt by default, got %d", cfg.Upstream.MaxAttempts)
	}
	if cfg.Upstream.MaxConcurrency != 0 {
		t.Fatalf("expected unbounded concurrency by default, got %d", cfg.Upstream.MaxConcurrency)
	}
	if cfg.Aggregate.Timeout != 30*time.Second || cfg.Aggregate.AllowEmptyRoster {
		t.Fatalf("unexpected aggregate defaults %+v", cfg.Aggregate)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors defaults %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != defaultMetricsPort || cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if cfg.Viewer.Debounce != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", cfg.Viewer.Debounce)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envPort, "5000")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envBaseURL, "http://example.com/api")
	t.Setenv(envUpstreamTimeout, "3s")
	t.Setenv(envUpstreamAttempts, "4")
	t.Setenv(envUpstreamBackoff, "50ms")
	t.Setenv(envUpstreamConcurrent, "8")
	t.Setenv(envAggregateTimeout, "1m")
	t.Setenv(envAllowEmptyRoster, "true")
	t.Setenv(envCORSOrigins, "https://a.example.com, https://b.example.com,")
	t.Setenv(envMetricsOn, "false")
	t.Setenv(envOtelService, "custom")
	t.Setenv(envViewerDebounce, "250ms")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log overrides %+v", cfg.Log)
	}
	want := UpstreamConfig{
		BaseURL:        "http://example.com/api",
		Timeout:        3 * time.Second,
		MaxAttempts:    4,
		Backoff:        50 * time.Millisecond,
		MaxConcurrency: 8,
	}
	if cfg.Upstream != want {
		t.Fatalf("expected upstream %+v, got %+v", want, cfg.Upstream)
	}
	if cfg.Aggregate.Timeout != time.Minute || !cfg.Aggregate.AllowEmptyRoster {
		t.Fatalf("unexpected aggregate overrides %+v", cfg.Aggregate)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.ServiceName != "custom" {
		t.Fatalf("unexpected metrics overrides %+v", cfg.Metrics)
	}
	if cfg.Viewer.Debounce != 250*time.Millisecond {
		t.Fatalf("expected 250ms debounce, got %s", cfg.Viewer.Debounce)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(envUpstreamTimeout, "not-a-duration")
	t.Setenv(envAggregateTimeout, "0s")
	t.Setenv(envUpstreamAttempts, "-2")
	t.Setenv(envCORSOrigins, " , ")

	cfg := Load()

	if cfg.Upstream.Timeout != defaultUpstreamTimeout {
		t.Fatalf("expected default timeout on invalid value, got %s", cfg.Upstream.Timeout)
	}
	if cfg.Aggregate.Timeout != defaultAggregateTimeout {
		t.Fatalf("expected default aggregate timeout on non-positive value, got %s", cfg.Aggregate.Timeout)
	}
	if cfg.Upstream.MaxAttempts != defaultUpstreamAttempts {
		t.Fatalf("expected default attempts on negative value, got %d", cfg.Upstream.MaxAttempts)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("expected default origins for blank list, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadDotEnvPopulatesUnsetKeys(t *testing.T) {
	const key = "FTC_DOTENV_TEST_KEY"
	_ = os.Unsetenv(key)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
