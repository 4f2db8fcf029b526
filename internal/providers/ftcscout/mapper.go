package ftcscout

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"ftc-event-service/internal/domain/events"
)

// teamNumber resolves the identifier of a roster entry. Keys are tried in
// order teamNumber, then number; blank, zero and null values are skipped.
func teamNumber(raw json.RawMessage) string {
	var entry rosterEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return events.UnknownTeamNumber
	}
	for _, candidate := range []json.RawMessage{entry.TeamNumber, entry.Number} {
		if id, ok := identifier(candidate); ok {
			return id
		}
	}
	return events.UnknownTeamNumber
}

func identifier(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", false
	}
	if f, err := n.Float64(); err != nil || f == 0 {
		return "", false
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), true
	}
	return n.String(), true
}

func mapProfile(t teamResponse) events.Profile {
	return events.Profile{
		Name:       t.Name,
		SchoolName: t.SchoolName,
		Country:    t.Country,
		State:      t.State,
		City:       t.City,
		RookieYear: t.RookieYear,
		Website:    nonBlank(t.Website),
	}
}

func mapRating(q quickStatsResponse) events.Rating {
	if q.Tot == nil {
		return events.Rating{}
	}
	rating := events.Rating{Value: q.Tot.Value}
	if q.Tot.Rank != nil && *q.Tot.Rank > 0 {
		rating.Rank = q.Tot.Rank
	}
	return rating
}

func nonBlank(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}
