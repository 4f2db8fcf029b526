package ftcscout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/providers"
)

// Config controls how the FTCScout client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client fetches rosters, team profiles and quick stats from the FTCScout REST API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs an FTCScout client with the provided configuration.
func NewClient(cfg Config) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  userAgent,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchRoster lists the team numbers registered to eventCode.
func (c *Client) FetchRoster(ctx context.Context, eventCode string) ([]string, error) {
	body, err := c.get(ctx, providers.EndpointRoster, "/events/"+escapePath(eventCode)+"/teams")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("ftcscout %s: %w", providers.EndpointRoster, providers.ErrMalformedResponse)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("ftcscout %s: %w: %v", providers.EndpointRoster, providers.ErrMalformedResponse, err)
	}

	numbers := make([]string, 0, len(entries))
	for _, entry := range entries {
		numbers = append(numbers, teamNumber(entry))
	}
	return numbers, nil
}

// FetchProfile retrieves the descriptive record for a team.
func (c *Client) FetchProfile(ctx context.Context, teamNumber string) (events.Profile, error) {
	body, err := c.get(ctx, providers.EndpointProfile, "/teams/"+escapePath(teamNumber))
	if err != nil {
		return events.Profile{}, err
	}
	var payload *teamResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return events.Profile{}, fmt.Errorf("ftcscout %s %s: %w", providers.EndpointProfile, teamNumber, providers.ErrMalformedResponse)
	}
	return mapProfile(*payload), nil
}

// FetchRating retrieves the total OPR value and world rank for a team.
func (c *Client) FetchRating(ctx context.Context, teamNumber string) (events.Rating, error) {
	body, err := c.get(ctx, providers.EndpointRating, "/teams/"+escapePath(teamNumber)+"/quick-stats")
	if err != nil {
		return events.Rating{}, err
	}
	var payload *quickStatsResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return events.Rating{}, fmt.Errorf("ftcscout %s %s: %w", providers.EndpointRating, teamNumber, providers.ErrMalformedResponse)
	}
	return mapRating(*payload), nil
}

func (c *Client) get(ctx context.Context, endpoint, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ftcscout %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("ftcscout %s: %w", endpoint, &providers.StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("ftcscout %s: read body: %w", endpoint, err)
	}
	return body, nil
}
