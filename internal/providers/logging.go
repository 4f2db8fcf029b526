package providers

import (
	"context"
	"log/slog"

	"ftc-event-service/internal/logging"
)

// logWithEndpoint emits a log entry if a logger is available and always includes the endpoint name.
func logWithEndpoint(ctx context.Context, logger *slog.Logger, level slog.Level, endpoint string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldEndpoint, endpoint))
	logger.Log(ctx, level, msg, args...)
}
