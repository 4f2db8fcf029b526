package ftcscout

import "encoding/json"

// rosterEntry carries the identifier aliases seen across feed versions.
type rosterEntry struct {
	TeamNumber json.RawMessage `json:"teamNumber"`
	Number     json.RawMessage `json:"number"`
}

type teamResponse struct {
	Name       *string `json:"name"`
	SchoolName *string `json:"schoolName"`
	Country    *string `json:"country"`
	State      *string `json:"state"`
	City       *string `json:"city"`
	RookieYear *int    `json:"rookieYear"`
	Website    *string `json:"website"`
}

type quickStatsResponse struct {
	Tot *statResponse `json:"tot"`
}

type statResponse struct {
	Value *float64 `json:"value"`
	Rank  *int     `json:"rank"`
}
