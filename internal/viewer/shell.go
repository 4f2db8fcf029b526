// Package viewer holds the presentation state for browsing an event roster:
// debounced event-code input, loading and error tracking, client-side sorting
// and team selection. Front ends render State and forward user input.
package viewer

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"ftc-event-service/internal/aggregator"
	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/logging"
)

const defaultDebounce = 500 * time.Millisecond

// IdleHint is shown when no event code has been entered.
const IdleHint = "Enter an event code to view teams"

// Fetcher builds the ranked roster for an event.
type Fetcher interface {
	FetchEventRoster(ctx context.Context, eventCode string) (events.Event, error)
}

// Options tunes a Shell. Zero values pick defaults.
type Options struct {
	Debounce time.Duration
	// Timeout bounds one fetch. Zero leaves it to the Fetcher.
	Timeout  time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
	OnChange func(State)
}

// State is a snapshot of what the front end should render.
type State struct {
	EventCode  string
	Loading    bool
	Err        error
	ErrMessage string
	Event      *events.Event
	SortField  events.SortField
	SortDir    events.SortDirection
	Selected   string
}

// Shell coordinates input, fetching and view state. It is safe for concurrent use.
type Shell struct {
	fetcher  Fetcher
	clock    clockwork.Clock
	debounce time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	onChange func(State)

	mu     sync.Mutex
	state  State
	seq    uint64
	timer  clockwork.Timer
	cancel context.CancelFunc
	closed bool
}

// New constructs a Shell sorted by OPR descending with nothing loaded.
func New(fetcher Fetcher, opts Options) *Shell {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Shell{
		fetcher:  fetcher,
		clock:    opts.Clock,
		debounce: opts.Debounce,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		onChange: opts.OnChange,
		state: State{
			SortField: events.SortByOPR,
			SortDir:   events.Descending,
		},
	}
}

// SetEventCode records new input. The fetch starts once input has been quiet
// for the debounce interval; any earlier pending or in-flight fetch is superseded.
// A blank code clears the loaded event without fetching.
func (s *Shell) SetEventCode(code string) {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	seq := s.supersedeLocked()
	s.state.EventCode = code
	if code == "" {
		s.state.Event = nil
		s.state.Err = nil
		s.state.ErrMessage = ""
		s.state.Loading = false
		s.state.Selected = ""
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return
	}
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		go s.start(seq, code)
	})
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Refresh re-fetches the current event code immediately.
func (s *Shell) Refresh() {
	s.mu.Lock()
	if s.closed || s.state.EventCode == "" {
		s.mu.Unlock()
		return
	}
	seq := s.supersedeLocked()
	code := s.state.EventCode
	s.mu.Unlock()
	s.start(seq, code)
}

// SortBy toggles the direction when field is already active; otherwise it
// switches to field, descending.
func (s *Shell) SortBy(field events.SortField) {
	s.mu.Lock()
	if s.state.SortField == field {
		s.state.SortDir = s.state.SortDir.Opposite()
	} else {
		s.state.SortField = field
		s.state.SortDir = events.Descending
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// ToggleSelection selects the team, or clears the selection if it is already selected.
func (s *Shell) ToggleSelection(number string) {
	s.mu.Lock()
	if s.state.Selected == number {
		s.state.Selected = ""
	} else {
		s.state.Selected = number
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SortedTeams returns the loaded teams ordered by the active sort.
func (s *Shell) SortedTeams() []events.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Event == nil {
		return nil
	}
	return events.SortedTeams(s.state.Event.Teams, s.state.SortField, s.state.SortDir)
}

// SelectedTeam returns the selected team when it is part of the loaded event.
func (s *Shell) SelectedTeam() (events.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Event == nil || s.state.Selected == "" {
		return events.Team{}, false
	}
	for _, team := range s.state.Event.Teams {
		if team.Number == s.state.Selected {
			return team, true
		}
	}
	return events.Team{}, false
}

// State returns a snapshot of the current view state.
func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels pending and in-flight work. Later input is ignored.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.closed = true
}

// supersedeLocked invalidates pending and in-flight fetches and returns the new sequence.
func (s *Shell) supersedeLocked() uint64 {
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.seq
}

func (s *Shell) start(seq uint64, code string) {
	s.mu.Lock()
	if seq != s.seq || s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	}
	s.cancel = cancel
	s.timer = nil
	s.state.Loading = true
	s.state.Err = nil
	s.state.ErrMessage = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	go s.fetch(ctx, cancel, seq, code)
}

func (s *Shell) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, code string) {
	defer cancel()
	event, err := s.fetcher.FetchEventRoster(ctx, code)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Debug("discarding superseded roster result", logging.FieldEventCode, code)
		}
		return
	}
	s.cancel = nil
	s.state.Loading = false
	if err != nil {
		s.state.Event = nil
		s.state.Err = err
		s.state.ErrMessage = aggregator.UserMessage(err)
		s.state.Selected = ""
		logging.Warn(s.logger, "roster fetch failed", logging.FieldEventCode, code, "err", err)
	} else {
		s.state.Event = &event
		if !containsTeam(event.Teams, s.state.Selected) {
			s.state.Selected = ""
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Shell) snapshotLocked() State {
	snap := s.state
	if s.state.Event != nil {
		event := *s.state.Event
		snap.Event = &event
	}
	return snap
}

func (s *Shell) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}

func containsTeam(teams []events.Team, number string) bool {
	if number == "" {
		return false
	}
	for _, team := range teams {
		if team.Number == number {
			return true
		}
	}
	return false
}
