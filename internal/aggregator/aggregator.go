package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"

	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/logging"
	"ftc-event-service/internal/metrics"
	"ftc-event-service/internal/providers"
)

const defaultTimeout = 30 * time.Second

var errNoTeamNumber = errors.New("roster entry has no team number")

// Config tunes aggregation behaviour.
type Config struct {
	// AllowEmptyRoster returns an empty Event instead of ErrNoTeams.
	AllowEmptyRoster bool
	// MaxConcurrency caps in-flight team enrichments. Zero enriches every team at once.
	MaxConcurrency int
	// Timeout bounds a whole aggregation. Zero uses the default; negative disables it.
	Timeout time.Duration
}

// Aggregator builds ranked event rosters from an upstream EventSource.
type Aggregator struct {
	source  providers.EventSource
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs an Aggregator. logger and recorder may be nil.
func New(source providers.EventSource, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Aggregator {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxConcurrency < 0 {
		cfg.MaxConcurrency = 0
	}
	return &Aggregator{
		source:  source,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
	}
}

type teamResult struct {
	team events.Team
	err  error
}

// FetchEventRoster fetches the roster for eventCode, enriches every team with its
// profile and quick stats, and returns the teams ordered by OPR descending.
// Per-team enrichment failures degrade that team to its default record; only
// roster failures and an empty roster fail the call.
func (a *Aggregator) FetchEventRoster(ctx context.Context, eventCode string) (events.Event, error) {
	if a == nil || a.source == nil {
		return events.Event{}, providers.ErrProviderUnavailable
	}
	eventCode = strings.TrimSpace(eventCode)
	if eventCode == "" {
		return events.Event{}, ErrEmptyEventCode
	}

	start := time.Now()
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	logger := logging.FromContext(ctx, a.logger)
	if logger != nil {
		logger = logger.With(logging.FieldEventCode, eventCode)
	}

	numbers, err := a.source.FetchRoster(ctx, eventCode)
	if err != nil {
		err = fmt.Errorf("fetch roster for %s: %w", eventCode, err)
		a.metrics.RecordAggregation(time.Since(start), 0, 0, err)
		logging.Warn(logger, "roster fetch failed", "kind", string(KindOf(err)), "err", err)
		return events.Event{}, err
	}

	if len(numbers) == 0 && !a.cfg.AllowEmptyRoster {
		err = fmt.Errorf("event %s: %w", eventCode, ErrNoTeams)
		a.metrics.RecordAggregation(time.Since(start), 0, 0, err)
		logging.Info(logger, "event roster is empty")
		return events.Event{}, err
	}

	results := a.enrichAll(ctx, numbers)

	teams := make([]events.Team, len(results))
	degraded := 0
	for i, res := range results {
		if res.err != nil {
			degraded++
			teams[i] = events.DegradedTeam(numbers[i])
			logging.Warn(logger, "team enrichment failed", logging.FieldTeamNumber, numbers[i], "err", res.err)
			continue
		}
		teams[i] = res.team
	}

	event := events.NewEvent(eventCode, teams)
	a.metrics.RecordAggregation(time.Since(start), len(teams), degraded, nil)
	logging.Info(logger, "event roster aggregated",
		logging.FieldCount, len(teams),
		logging.FieldDegraded, degraded,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return event, nil
}

// enrichAll enriches every roster entry concurrently; results keep roster order.
func (a *Aggregator) enrichAll(ctx context.Context, numbers []string) []teamResult {
	if len(numbers) == 0 {
		return nil
	}
	limit := a.cfg.MaxConcurrency
	if limit <= 0 || limit > len(numbers) {
		limit = len(numbers)
	}
	mapper := iter.Mapper[string, teamResult]{MaxGoroutines: limit}
	return mapper.Map(numbers, func(number *string) teamResult {
		team, err := a.enrichTeam(ctx, *number)
		return teamResult{team: team, err: err}
	})
}

// enrichTeam fetches profile and quick stats for one team concurrently and merges them.
func (a *Aggregator) enrichTeam(ctx context.Context, number string) (events.Team, error) {
	if number == events.UnknownTeamNumber {
		return events.Team{}, errNoTeamNumber
	}

	var (
		profile    events.Profile
		rating     events.Rating
		profileErr error
		ratingErr  error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		profile, profileErr = a.source.FetchProfile(ctx, number)
	})
	wg.Go(func() {
		rating, ratingErr = a.source.FetchRating(ctx, number)
	})
	wg.Wait()

	if err := errors.Join(profileErr, ratingErr); err != nil {
		return events.Team{}, err
	}
	return events.NewTeam(number, profile, rating), nil
}
