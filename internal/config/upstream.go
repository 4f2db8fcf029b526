package config

// UpstreamConfig controls how we talk to the FTCScout API.
type UpstreamConfig struct {
	BaseURL        string
	Timeout        Duration
	MaxAttempts    int
	Backoff        Duration
	MaxConcurrency int
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		BaseURL:        envOrDefault(envBaseURL, defaultBaseURL),
		Timeout:        durationEnvOrDefault(envUpstreamTimeout, defaultUpstreamTimeout),
		MaxAttempts:    intEnvOrDefault(envUpstreamAttempts, defaultUpstreamAttempts),
		Backoff:        durationEnvOrDefault(envUpstreamBackoff, defaultUpstreamBackoff),
		MaxConcurrency: intEnvOrDefault(envUpstreamConcurrent, defaultUpstreamConcurrency),
	}
}
