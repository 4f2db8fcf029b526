package server

import (
	"log/slog"
	"net/http"

	"ftc-event-service/internal/config"
	"ftc-event-service/internal/metrics"
	"ftc-event-service/internal/providers"
	"ftc-event-service/internal/providers/ftcscout"
)

// sourceFactory assembles the upstream source with shared wrappers (retry + metrics).
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, metrics *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: metrics}
}

func (f sourceFactory) build(cfg config.Config) providers.EventSource {
	client := ftcscout.NewClient(ftcscout.Config{
		BaseURL:    cfg.Upstream.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Upstream.Timeout},
	})
	return f.wrap(cfg, client)
}

func (f sourceFactory) wrap(cfg config.Config, source providers.EventSource) providers.EventSource {
	return providers.NewRetryingSource(source, f.logger, f.metrics, cfg.Upstream.MaxAttempts, cfg.Upstream.Backoff)
}
