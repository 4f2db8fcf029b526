package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"ftc-event-service/internal/domain/events"
)

// StubSource is a configurable providers.EventSource for tests.
// Missing profile or rating entries return zero values without error.
type StubSource struct {
	Roster      []string
	RosterErr   error
	Profiles    map[string]events.Profile
	ProfileErrs map[string]error
	Ratings     map[string]events.Rating
	RatingErrs  map[string]error

	// Block, when set, holds every enrichment call until it is closed or ctx ends.
	Block chan struct{}

	RosterCalls  atomic.Int32
	ProfileCalls atomic.Int32
	RatingCalls  atomic.Int32

	mu        sync.Mutex
	requested []string
}

// FetchRoster returns the configured roster or error.
func (s *StubSource) FetchRoster(ctx context.Context, eventCode string) ([]string, error) {
	_ = ctx
	s.RosterCalls.Add(1)
	s.mu.Lock()
	s.requested = append(s.requested, eventCode)
	s.mu.Unlock()
	if s.RosterErr != nil {
		return nil, s.RosterErr
	}
	out := make([]string, len(s.Roster))
	copy(out, s.Roster)
	return out, nil
}

// FetchProfile returns the configured profile for teamNumber.
func (s *StubSource) FetchProfile(ctx context.Context, teamNumber string) (events.Profile, error) {
	s.ProfileCalls.Add(1)
	if err := s.wait(ctx); err != nil {
		return events.Profile{}, err
	}
	if err := s.ProfileErrs[teamNumber]; err != nil {
		return events.Profile{}, err
	}
	return s.Profiles[teamNumber], nil
}

// FetchRating returns the configured rating for teamNumber.
func (s *StubSource) FetchRating(ctx context.Context, teamNumber string) (events.Rating, error) {
	s.RatingCalls.Add(1)
	if err := s.wait(ctx); err != nil {
		return events.Rating{}, err
	}
	if err := s.RatingErrs[teamNumber]; err != nil {
		return events.Rating{}, err
	}
	return s.Ratings[teamNumber], nil
}

// RequestedEvents lists the event codes passed to FetchRoster, in call order.
func (s *StubSource) RequestedEvents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requested))
	copy(out, s.requested)
	return out
}

func (s *StubSource) wait(ctx context.Context) error {
	if s.Block == nil {
		return nil
	}
	select {
	case <-s.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OPR builds a rating with the given total value and no rank.
func OPR(value float64) events.Rating {
	return events.Rating{Value: &value}
}
