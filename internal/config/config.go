package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server and viewer.
type Config struct {
	Port      string
	Log       LogConfig
	Upstream  UpstreamConfig
	Aggregate AggregateConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
	Viewer    ViewerConfig
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// AggregateConfig controls event roster aggregation.
type AggregateConfig struct {
	Timeout          Duration
	AllowEmptyRoster bool
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// ViewerConfig controls the interactive viewer.
type ViewerConfig struct {
	Debounce Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Upstream: loadUpstream(),
		Aggregate: AggregateConfig{
			Timeout:          durationEnvOrDefault(envAggregateTimeout, defaultAggregateTimeout),
			AllowEmptyRoster: boolEnvOrDefault(envAllowEmptyRoster, false),
		},
		CORS: CORSConfig{
			AllowedOrigins: listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		},
		Metrics: loadMetrics(),
		Viewer: ViewerConfig{
			Debounce: durationEnvOrDefault(envViewerDebounce, defaultViewerDebounce),
		},
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are given)
// into the process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
