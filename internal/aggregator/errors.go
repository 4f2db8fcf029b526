package aggregator

import (
	"errors"
	"fmt"

	"ftc-event-service/internal/providers"
)

var (
	// ErrNoTeams is returned when the roster for an event is empty and empty rosters are not allowed.
	ErrNoTeams = errors.New("no teams found for event")
	// ErrEmptyEventCode is returned when the caller supplies a blank event code.
	ErrEmptyEventCode = errors.New("event code is required")
)

// ErrorKind classifies aggregation failures for callers that map them to messages or status codes.
type ErrorKind string

const (
	KindUnknown           ErrorKind = "unknown"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindNotFound          ErrorKind = "not_found"
	KindRequestFailed     ErrorKind = "request_failed"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindNoTeams           ErrorKind = "no_teams"
)

// KindOf reports the kind of err. A nil error has no kind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyEventCode):
		return KindInvalidInput
	case errors.Is(err, ErrNoTeams):
		return KindNoTeams
	case errors.Is(err, providers.ErrNotFound):
		return KindNotFound
	case errors.Is(err, providers.ErrMalformedResponse):
		return KindMalformedResponse
	}
	if StatusCode(err) != 0 {
		return KindRequestFailed
	}
	return KindUnknown
}

// StatusCode returns the upstream HTTP status carried by err, or 0 when there is none.
func StatusCode(err error) int {
	if rlErr, ok := providers.AsRateLimitError(err); ok {
		return rlErr.StatusCode
	}
	if statusErr, ok := providers.AsStatusError(err); ok {
		return statusErr.StatusCode
	}
	return 0
}

// UserMessage renders err as a message suitable for end users.
func UserMessage(err error) string {
	switch KindOf(err) {
	case "":
		return ""
	case KindInvalidInput:
		return "Enter an event code to view teams."
	case KindNotFound:
		return "Event not found. Please check the event code."
	case KindNoTeams:
		return "No teams found for this event. Please check the event code."
	case KindRequestFailed:
		return fmt.Sprintf("Error: API request failed with status %d", StatusCode(err))
	default:
		return "Failed to fetch event data. Please check the event code and try again."
	}
}
