package events

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortField names a sortable team column.
type SortField string

const (
	SortByNumber SortField = "number"
	SortByName   SortField = "name"
	SortByOPR    SortField = "opr"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortField validates a sort field name; empty means OPR.
func ParseSortField(raw string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SortByOPR:
		return SortByOPR, nil
	case SortByNumber:
		return SortByNumber, nil
	case SortByName:
		return SortByName, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", raw)
	}
}

// ParseSortDirection validates a direction; empty means descending.
func ParseSortDirection(raw string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Descending:
		return Descending, nil
	case Ascending:
		return Ascending, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", raw)
	}
}

// Opposite flips the direction.
func (d SortDirection) Opposite() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortTeams orders teams in place. The sort is stable, so equal keys keep their input order.
func SortTeams(teams []Team, field SortField, dir SortDirection) {
	cmp := compareFor(field)
	sort.SliceStable(teams, func(i, j int) bool {
		c := cmp(teams[i], teams[j])
		if dir == Ascending {
			return c < 0
		}
		return c > 0
	})
}

// SortedTeams returns a sorted copy, leaving the input untouched.
func SortedTeams(teams []Team, field SortField, dir SortDirection) []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	SortTeams(out, field, dir)
	return out
}

func compareFor(field SortField) func(a, b Team) int {
	switch field {
	case SortByNumber:
		return compareNumbers
	case SortByName:
		return func(a, b Team) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	default:
		return func(a, b Team) int {
			switch {
			case a.OPR < b.OPR:
				return -1
			case a.OPR > b.OPR:
				return 1
			default:
				return 0
			}
		}
	}
}

// compareNumbers compares numerically when both numbers parse, lexically otherwise.
func compareNumbers(a, b Team) int {
	ai, aErr := strconv.Atoi(a.Number)
	bi, bErr := strconv.Atoi(b.Number)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.Number, b.Number)
}
