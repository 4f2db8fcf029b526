package ftcscout

import (
	"encoding/json"
	"testing"
)

func TestTeamNumberAliasChain(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{`{"teamNumber": 12345}`, "12345"},
		{`{"teamNumber": "12345"}`, "12345"},
		{`{"number": 6789}`, "6789"},
		{`{"teamNumber": 1, "number": 2}`, "1"},
		{`{"teamNumber": 0, "number": 2}`, "2"},
		{`{"teamNumber": "", "number": "77"}`, "77"},
		{`{"teamNumber": null, "number": null}`, "Unknown"},
		{`{"eventCode": "X"}`, "Unknown"},
		{`{"teamNumber": true}`, "Unknown"},
		{`"not an object"`, "Unknown"},
		{`{"teamNumber": 1.5}`, "1.5"},
	}

	for _, c := range cases {
		if got := teamNumber(json.RawMessage(c.raw)); got != c.expected {
			t.Fatalf("%s: expected %s, got %s", c.raw, c.expected, got)
		}
	}
}

func TestMapRatingDropsNonPositiveRank(t *testing.T) {
	value := 10.5
	rank := 0
	rating := mapRating(quickStatsResponse{Tot: &statResponse{Value: &value, Rank: &rank}})
	if rating.Value == nil || *rating.Value != 10.5 {
		t.Fatalf("unexpected value %v", rating.Value)
	}
	if rating.Rank != nil {
		t.Fatalf("expected rank 0 to be dropped, got %d", *rating.Rank)
	}
}

func TestMapProfileKeepsWebsite(t *testing.T) {
	site := "https://robots.example.com"
	profile := mapProfile(teamResponse{Website: &site})
	if profile.Website == nil || *profile.Website != site {
		t.Fatalf("expected website to be kept, got %v", profile.Website)
	}
	if profile.Name != nil {
		t.Fatalf("expected nil name, got %v", *profile.Name)
	}
}
