package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"ftc-event-service/internal/aggregator"
	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/logging"
)

// RosterFetcher builds the ranked roster for an event.
type RosterFetcher interface {
	FetchEventRoster(ctx context.Context, eventCode string) (events.Event, error)
}

// Handler wires HTTP routes to the event aggregator.
type Handler struct {
	rosters RosterFetcher
	logger  *slog.Logger
	ready   atomic.Bool
}

// NewHandler constructs a Handler that reports ready until SetReady(false) is called.
func NewHandler(rosters RosterFetcher, logger *slog.Logger) *Handler {
	h := &Handler{
		rosters: rosters,
		logger:  logger,
	}
	h.ready.Store(true)
	return h
}

// SetReady toggles the readiness probe, e.g. while draining for shutdown.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// ServeHTTP dispatches by path for callers that mount the handler directly.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case strings.HasPrefix(r.URL.Path, "/events/"):
		h.EventTeams(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.rosters == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "event source not configured", h.logger)
		return
	}
	if !h.ready.Load() {
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// EventTeams returns the ranked roster for /events/{eventCode}/teams.
// Event codes may contain slashes; sort and dir query params re-order the teams.
func (h *Handler) EventTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	code, ok := eventCodeFromPath(r.URL.EscapedPath())
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
		return
	}

	query := r.URL.Query()
	field, err := events.ParseSortField(query.Get("sort"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid sort (expected number, name or opr)", h.logger)
		return
	}
	dir, err := events.ParseSortDirection(query.Get("dir"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid dir (expected asc or desc)", h.logger)
		return
	}

	if h.rosters == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "event source not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	event, err := h.rosters.FetchEventRoster(r.Context(), code)
	if err != nil {
		kind := aggregator.KindOf(err)
		logging.Warn(logger, "event roster unavailable", logging.FieldEventCode, code, "kind", string(kind), "err", err)
		writeKindError(w, r, statusForKind(kind), aggregator.UserMessage(err), kind, h.logger)
		return
	}

	event.Teams = events.SortedTeams(event.Teams, field, dir)
	logging.Info(logger, "served event roster", logging.FieldEventCode, event.EventCode, logging.FieldCount, len(event.Teams))
	writeJSON(w, nethttp.StatusOK, event, h.logger)
}

// eventCodeFromPath extracts and unescapes the code between /events/ and /teams.
func eventCodeFromPath(escaped string) (string, bool) {
	rest, ok := strings.CutPrefix(escaped, "/events/")
	if !ok {
		return "", false
	}
	rest, ok = strings.CutSuffix(rest, "/teams")
	if !ok {
		return "", false
	}
	segments := strings.Split(rest, "/")
	for i, seg := range segments {
		unescaped, err := url.PathUnescape(seg)
		if err != nil || strings.TrimSpace(unescaped) == "" {
			return "", false
		}
		segments[i] = unescaped
	}
	return strings.Join(segments, "/"), true
}

func statusForKind(kind aggregator.ErrorKind) int {
	switch kind {
	case aggregator.KindInvalidInput:
		return nethttp.StatusBadRequest
	case aggregator.KindNotFound, aggregator.KindNoTeams:
		return nethttp.StatusNotFound
	default:
		return nethttp.StatusBadGateway
	}
}
