package ftcscout

import "time"

const (
	defaultBaseURL     = "https://api.ftcscout.org/rest/v1"
	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "ftc-event-service"
	maxBodyBytes       = 4 << 20
	maxErrorBodyBytes  = 512
)
