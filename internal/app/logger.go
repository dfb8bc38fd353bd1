package app

import (
	"io"
	"log/slog"
	"strings"
)

// parseLevel maps a -log-level value to a slog level. Unknown values fall
// back to info.
func parseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newLogger creates a logger writing to w. It does not set the global
// logger, so every App is isolated. Debug logs carry their source location.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level := parseLevel(levelStr)
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(formatStr, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
