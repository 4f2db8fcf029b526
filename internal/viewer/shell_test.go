package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"ftc-event-service/internal/aggregator"
	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/providers"
	"ftc-event-service/internal/testutil"
)

const testDebounce = 500 * time.Millisecond

type fetchResult struct {
	event events.Event
	err   error
}

type fetchCall struct {
	ctx   context.Context
	code  string
	reply chan fetchResult
}

type scriptedFetcher struct {
	calls chan fetchCall
}

func newScriptedFetcher() *scriptedFetcher {
	return &scriptedFetcher{calls: make(chan fetchCall, 8)}
}

func (f *scriptedFetcher) FetchEventRoster(ctx context.Context, code string) (events.Event, error) {
	call := fetchCall{ctx: ctx, code: code, reply: make(chan fetchResult, 1)}
	f.calls <- call
	res := <-call.reply
	return res.event, res.err
}

func (f *scriptedFetcher) next(t *testing.T) fetchCall {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a roster fetch")
		return fetchCall{}
	}
}

func (f *scriptedFetcher) expectNone(t *testing.T) {
	t.Helper()
	select {
	case call := <-f.calls:
		t.Fatalf("unexpected fetch for %q", call.code)
	case <-time.After(50 * time.Millisecond):
	}
}

type fakeClock interface {
	clockwork.Clock
	Advance(time.Duration)
	BlockUntilContext(context.Context, int) error
}

func newTestShell(t *testing.T, fetcher Fetcher) (*Shell, fakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	shell := New(fetcher, Options{Clock: clock, Debounce: testDebounce})
	t.Cleanup(shell.Close)
	return shell, clock
}

func waitForTimers(t *testing.T, clock fakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, n); err != nil {
		t.Fatalf("waiting for %d timers: %v", n, err)
	}
}

func eventually(t *testing.T, cond func(State) bool, shell *Shell) State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		st := shell.State()
		if cond(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met, last state %+v", st)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func loaded(st State) bool { return !st.Loading && (st.Event != nil || st.Err != nil) }

func TestNewDefaults(t *testing.T) {
	shell := New(newScriptedFetcher(), Options{})
	defer shell.Close()
	st := shell.State()
	if st.SortField != events.SortByOPR || st.SortDir != events.Descending {
		t.Fatalf("expected opr desc default, got %s %s", st.SortField, st.SortDir)
	}
	if st.Loading || st.Event != nil || st.Selected != "" {
		t.Fatalf("expected idle state, got %+v", st)
	}
	if shell.debounce != defaultDebounce {
		t.Fatalf("expected default debounce, got %v", shell.debounce)
	}
}

func TestSetEventCodeDebouncesInput(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("USC")
	shell.SetEventCode("USCHS")
	shell.SetEventCode("USCHSLAOS")
	waitForTimers(t, clock, 1)

	clock.Advance(testDebounce - time.Millisecond)
	fetcher.expectNone(t)

	clock.Advance(time.Millisecond)
	call := fetcher.next(t)
	if call.code != "USCHSLAOS" {
		t.Fatalf("expected last code to be fetched, got %q", call.code)
	}
	if !shell.State().Loading {
		t.Fatalf("expected loading while fetch is in flight")
	}
	call.reply <- fetchResult{event: testutil.SampleEvent("USCHSLAOS", testutil.SampleTeam("1", 2), testutil.SampleTeam("2", 9))}

	st := eventually(t, loaded, shell)
	if st.Err != nil || len(st.Event.Teams) != 2 {
		t.Fatalf("unexpected state %+v", st)
	}
	fetcher.expectNone(t)
}

func TestSetEventCodeTrimsInput(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("  FTCCMP1  ")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	call := fetcher.next(t)
	if call.code != "FTCCMP1" {
		t.Fatalf("expected trimmed code, got %q", call.code)
	}
	call.reply <- fetchResult{event: testutil.SampleEvent("FTCCMP1")}
	eventually(t, loaded, shell)
}

func TestStaleResultIsDiscarded(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("OLD")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	oldCall := fetcher.next(t)

	shell.SetEventCode("NEW")
	select {
	case <-oldCall.ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected superseded fetch to be cancelled")
	}
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	newCall := fetcher.next(t)
	newCall.reply <- fetchResult{event: testutil.SampleEvent("NEW", testutil.SampleTeam("200", 1))}
	eventually(t, loaded, shell)

	oldCall.reply <- fetchResult{event: testutil.SampleEvent("OLD", testutil.SampleTeam("100", 50))}
	time.Sleep(50 * time.Millisecond)

	st := shell.State()
	if st.Event == nil || st.Event.EventCode != "NEW" {
		t.Fatalf("expected NEW event to remain, got %+v", st.Event)
	}
	if st.EventCode != "NEW" {
		t.Fatalf("expected input NEW, got %q", st.EventCode)
	}
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("OLD")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	oldCall := fetcher.next(t)

	shell.SetEventCode("NEW")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	newCall := fetcher.next(t)

	oldCall.reply <- fetchResult{err: providers.ErrNotFound}
	time.Sleep(50 * time.Millisecond)
	if st := shell.State(); st.Err != nil || !st.Loading {
		t.Fatalf("stale error leaked into state: %+v", st)
	}

	newCall.reply <- fetchResult{event: testutil.SampleEvent("NEW")}
	st := eventually(t, loaded, shell)
	if st.Err != nil {
		t.Fatalf("unexpected error %v", st.Err)
	}
}

func TestEmptyCodeClearsWithoutFetching(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("EVT")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	call := fetcher.next(t)
	call.reply <- fetchResult{event: testutil.SampleEvent("EVT", testutil.SampleTeam("1", 1))}
	eventually(t, loaded, shell)
	shell.ToggleSelection("1")

	shell.SetEventCode("   ")
	st := shell.State()
	if st.Event != nil || st.Err != nil || st.Loading || st.Selected != "" || st.EventCode != "" {
		t.Fatalf("expected cleared state, got %+v", st)
	}
	clock.Advance(testDebounce)
	fetcher.expectNone(t)
	if teams := shell.SortedTeams(); teams != nil {
		t.Fatalf("expected no teams, got %v", teams)
	}
}

func TestFetchErrorsMapToMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fmt.Errorf("roster: %w", providers.ErrNotFound), "Event not found. Please check the event code."},
		{"no teams", aggregator.ErrNoTeams, "No teams found for this event. Please check the event code."},
		{"status", &providers.StatusError{Endpoint: "roster", StatusCode: 503}, "Error: API request failed with status 503"},
		{"other", errors.New("boom"), "Failed to fetch event data. Please check the event code and try again."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := newScriptedFetcher()
			shell, clock := newTestShell(t, fetcher)

			shell.SetEventCode("EVT")
			waitForTimers(t, clock, 1)
			clock.Advance(testDebounce)
			fetcher.next(t).reply <- fetchResult{err: tc.err}

			st := eventually(t, loaded, shell)
			if st.ErrMessage != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, st.ErrMessage)
			}
			if st.Event != nil {
				t.Fatalf("expected no event on error")
			}
		})
	}
}

func TestSortByTogglesAndSwitches(t *testing.T) {
	shell := New(newScriptedFetcher(), Options{})
	defer shell.Close()

	shell.SortBy(events.SortByOPR)
	if st := shell.State(); st.SortField != events.SortByOPR || st.SortDir != events.Ascending {
		t.Fatalf("expected opr asc after toggle, got %s %s", st.SortField, st.SortDir)
	}
	shell.SortBy(events.SortByName)
	if st := shell.State(); st.SortField != events.SortByName || st.SortDir != events.Descending {
		t.Fatalf("expected name desc on switch, got %s %s", st.SortField, st.SortDir)
	}
	shell.SortBy(events.SortByName)
	if st := shell.State(); st.SortDir != events.Ascending {
		t.Fatalf("expected name asc after toggle, got %s", st.SortDir)
	}
	shell.SortBy(events.SortByNumber)
	if st := shell.State(); st.SortField != events.SortByNumber || st.SortDir != events.Descending {
		t.Fatalf("expected number desc on switch, got %s %s", st.SortField, st.SortDir)
	}
}

func TestSortedTeamsFollowsActiveSort(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("EVT")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	fetcher.next(t).reply <- fetchResult{event: testutil.SampleEvent("EVT",
		testutil.SampleTeam("9", 5.0),
		testutil.SampleTeam("100", 12.3),
		testutil.SampleTeam("20", 0.8),
	)}
	eventually(t, loaded, shell)

	assertOrder(t, shell.SortedTeams(), "100", "9", "20")

	shell.SortBy(events.SortByNumber)
	assertOrder(t, shell.SortedTeams(), "100", "20", "9")
	shell.SortBy(events.SortByNumber)
	assertOrder(t, shell.SortedTeams(), "9", "20", "100")
}

func TestToggleSelection(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.SetEventCode("EVT")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	fetcher.next(t).reply <- fetchResult{event: testutil.SampleEvent("EVT", testutil.SampleTeam("7", 1), testutil.SampleTeam("8", 2))}
	eventually(t, loaded, shell)

	shell.ToggleSelection("7")
	team, ok := shell.SelectedTeam()
	if !ok || team.Number != "7" {
		t.Fatalf("expected team 7 selected, got %+v %v", team, ok)
	}
	shell.ToggleSelection("8")
	if st := shell.State(); st.Selected != "8" {
		t.Fatalf("expected selection to move to 8, got %q", st.Selected)
	}
	shell.ToggleSelection("8")
	if _, ok := shell.SelectedTeam(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestRefreshRefetchesImmediately(t *testing.T) {
	fetcher := newScriptedFetcher()
	shell, clock := newTestShell(t, fetcher)

	shell.Refresh()
	fetcher.expectNone(t)

	shell.SetEventCode("EVT")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	fetcher.next(t).reply <- fetchResult{event: testutil.SampleEvent("EVT", testutil.SampleTeam("1", 1))}
	eventually(t, loaded, shell)
	shell.ToggleSelection("1")

	shell.Refresh()
	call := fetcher.next(t)
	if call.code != "EVT" {
		t.Fatalf("expected refresh of EVT, got %q", call.code)
	}
	call.reply <- fetchResult{event: testutil.SampleEvent("EVT", testutil.SampleTeam("2", 1))}
	st := eventually(t, func(st State) bool { return loaded(st) && st.Event.Teams[0].Number == "2" }, shell)
	if st.Selected != "" {
		t.Fatalf("expected selection dropped when team left the roster, got %q", st.Selected)
	}
}

func TestOnChangeReceivesSnapshots(t *testing.T) {
	var (
		mu     sync.Mutex
		states []State
	)
	fetcher := newScriptedFetcher()
	clock := clockwork.NewFakeClock()
	shell := New(fetcher, Options{
		Clock:    clock,
		Debounce: testDebounce,
		OnChange: func(st State) {
			mu.Lock()
			states = append(states, st)
			mu.Unlock()
		},
	})
	defer shell.Close()

	shell.SetEventCode("EVT")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	fetcher.next(t).reply <- fetchResult{event: testutil.SampleEvent("EVT")}
	eventually(t, loaded, shell)

	mu.Lock()
	defer mu.Unlock()
	if len(states) < 3 {
		t.Fatalf("expected input, loading and result notifications, got %d", len(states))
	}
	if !states[1].Loading {
		t.Fatalf("expected loading notification, got %+v", states[1])
	}
	if last := states[len(states)-1]; last.Loading || last.Event == nil {
		t.Fatalf("expected final loaded notification, got %+v", last)
	}
}

func TestFetchTimeoutIsApplied(t *testing.T) {
	fetcher := newScriptedFetcher()
	clock := clockwork.NewFakeClock()
	shell := New(fetcher, Options{Clock: clock, Debounce: testDebounce, Timeout: time.Minute})
	defer shell.Close()

	shell.SetEventCode("EVT")
	waitForTimers(t, clock, 1)
	clock.Advance(testDebounce)
	call := fetcher.next(t)
	if _, ok := call.ctx.Deadline(); !ok {
		t.Fatalf("expected fetch context to carry a deadline")
	}
	call.reply <- fetchResult{event: testutil.SampleEvent("EVT")}
	eventually(t, loaded, shell)
}

func TestCloseIgnoresLaterInput(t *testing.T) {
	fetcher := newScriptedFetcher()
	clock := clockwork.NewFakeClock()
	shell := New(fetcher, Options{Clock: clock, Debounce: testDebounce})

	shell.SetEventCode("EVT")
	shell.Close()
	shell.SetEventCode("OTHER")
	clock.Advance(testDebounce)
	fetcher.expectNone(t)
}

func assertOrder(t *testing.T, teams []events.Team, want ...string) {
	t.Helper()
	if len(teams) != len(want) {
		t.Fatalf("expected %d teams, got %d", len(want), len(teams))
	}
	for i, number := range want {
		if teams[i].Number != number {
			t.Fatalf("position %d: expected %s, got %s", i, number, teams[i].Number)
		}
	}
}
