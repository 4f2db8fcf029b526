package testutil

import "ftc-event-service/internal/domain/events"

// SampleTeam returns a fully populated team fixture.
func SampleTeam(number string, opr float64) events.Team {
	rank := 7
	rookie := 2016
	school := "Central High"
	city := "Los Angeles"
	state := "CA"
	country := "USA"
	return events.Team{
		Number:     number,
		Name:       "Team " + number,
		OPR:        opr,
		WorldRank:  &rank,
		SchoolName: &school,
		City:       &city,
		State:      &state,
		Country:    &country,
		RookieYear: &rookie,
	}
}

// SampleEvent builds an event from teams, ordered by OPR like the aggregator does.
func SampleEvent(code string, teams ...events.Team) events.Event {
	return events.NewEvent(code, teams)
}

// NamedProfile builds a profile with only a name set.
func NamedProfile(name string) events.Profile {
	return events.Profile{Name: &name}
}
