package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety, so call sites
// like log.Info("msg", logger.Error(err)) need no explicit nil checks.

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for an elapsed duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID creates an attribute for the per-request identifier.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Route creates an attribute pair describing the matched controller action.
func Route(controllerName, action string) slog.Attr {
	return slog.Attr{Key: "route", Value: slog.GroupValue(
		slog.String("controller", controllerName),
		slog.String("action", action),
	)}
}

// Status creates an attribute for the response status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
