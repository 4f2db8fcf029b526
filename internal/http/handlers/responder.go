package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ftc-event-service/internal/aggregator"
	"ftc-event-service/internal/http/middleware"
	"ftc-event-service/internal/http/requestutil"
	"ftc-event-service/internal/logging"
)

type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeKindError(w, r, status, message, "", logger)
}

func writeKindError(w http.ResponseWriter, r *http.Request, status int, message string, kind aggregator.ErrorKind, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorResponse{
		Error:     message,
		Kind:      string(kind),
		RequestID: reqID,
	}, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
