package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
	// writeSlack leaves room to encode the response after a full-length aggregation.
	writeSlack = 5 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// writeTimeoutFor keeps the write deadline longer than the aggregation deadline.
func writeTimeoutFor(aggregate time.Duration) time.Duration {
	if aggregate+writeSlack > writeTimeout {
		return aggregate + writeSlack
	}
	return writeTimeout
}
