package events

import (
	"fmt"
	"strings"
)

// UnknownTeamNumber is used when a roster entry carries no usable identifier.
const UnknownTeamNumber = "Unknown"

// Team is the merged roster, profile and rating view of one team at an event.
// Optional fields are nil when the upstream source did not supply them.
type Team struct {
	Number     string  `json:"number"`
	Name       string  `json:"name"`
	OPR        float64 `json:"opr"`
	WorldRank  *int    `json:"worldRank,omitempty"`
	SchoolName *string `json:"schoolName,omitempty"`
	Country    *string `json:"country,omitempty"`
	State      *string `json:"state,omitempty"`
	City       *string `json:"city,omitempty"`
	RookieYear *int    `json:"rookieYear,omitempty"`
	Website    *string `json:"website,omitempty"`
}

// Event is the aggregation root returned for one event code.
type Event struct {
	EventCode string `json:"eventCode"`
	Teams     []Team `json:"teams"`
}

// Profile is the descriptive record for a team.
type Profile struct {
	Name       *string
	SchoolName *string
	Country    *string
	State      *string
	City       *string
	RookieYear *int
	Website    *string
}

// Rating is the total OPR summary for a team.
type Rating struct {
	Value *float64
	Rank  *int
}

// DefaultTeamName is the display name used when no profile name is known.
func DefaultTeamName(number string) string {
	return fmt.Sprintf("Team %s", number)
}

// DegradedTeam is the record used when enrichment for a team failed.
func DegradedTeam(number string) Team {
	return Team{
		Number: number,
		Name:   DefaultTeamName(number),
		OPR:    0,
	}
}

// NewTeam merges a profile and rating into a Team.
func NewTeam(number string, profile Profile, rating Rating) Team {
	team := DegradedTeam(number)
	if profile.Name != nil && strings.TrimSpace(*profile.Name) != "" {
		team.Name = *profile.Name
	}
	if rating.Value != nil {
		team.OPR = *rating.Value
	}
	team.WorldRank = rating.Rank
	team.SchoolName = profile.SchoolName
	team.Country = profile.Country
	team.State = profile.State
	team.City = profile.City
	team.RookieYear = profile.RookieYear
	team.Website = profile.Website
	return team
}

// NewEvent builds an Event with teams ordered by OPR descending.
func NewEvent(eventCode string, teams []Team) Event {
	sorted := make([]Team, len(teams))
	copy(sorted, teams)
	SortTeams(sorted, SortByOPR, Descending)
	return Event{
		EventCode: eventCode,
		Teams:     sorted,
	}
}

// Location joins city, state and country, skipping blanks.
func (t Team) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []*string{t.City, t.State, t.Country} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}
