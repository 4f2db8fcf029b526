package events

import "net/url"

const (
	ftcScoutTeamURL       = "https://ftcscout.org/teams/"
	orangeAllianceTeamURL = "https://theorangealliance.org/teams/"
)

// Link is an external page about a team.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Links returns the external pages for a team; the team website is included when known.
func (t Team) Links() []Link {
	number := url.PathEscape(t.Number)
	links := []Link{
		{Label: "View on FTCScout", URL: ftcScoutTeamURL + number},
		{Label: "View on Orange Alliance", URL: orangeAllianceTeamURL + number},
	}
	if t.Website != nil && *t.Website != "" {
		links = append(links, Link{Label: "Team Website", URL: *t.Website})
	}
	return links
}
