package providers

import (
	"context"

	"ftc-event-service/internal/domain/events"
)

// Endpoint names used in logs and metrics.
const (
	EndpointRoster  = "roster"
	EndpointProfile = "profile"
	EndpointRating  = "quick-stats"
)

// RosterSource lists the team numbers registered to an event.
type RosterSource interface {
	FetchRoster(ctx context.Context, eventCode string) ([]string, error)
}

// ProfileSource fetches the descriptive record for a team.
type ProfileSource interface {
	FetchProfile(ctx context.Context, teamNumber string) (events.Profile, error)
}

// RatingSource fetches the rating summary for a team.
type RatingSource interface {
	FetchRating(ctx context.Context, teamNumber string) (events.Rating, error)
}

// EventSource combines all upstream capabilities needed to build an event roster.
type EventSource interface {
	RosterSource
	ProfileSource
	RatingSource
}
