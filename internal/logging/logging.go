package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system, writing to stderr.
// Uses text format for human readability.
func Init(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// parseLevel maps a config string onto a slog level, defaulting to info
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
