// Package logger configures log/slog for JSON output with source
// locations, so printflow logs are machine-parseable out of the box.
package logger

import (
	"log/slog"
	"os"
)

// Setup installs the global JSON logger at the given level.
func Setup(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

// levelNames maps the accepted --log-level values.
var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel converts a level name to slog.Level. Unrecognized names
// fall back to info.
func ParseLevel(level string) slog.Level {
	if l, ok := levelNames[level]; ok {
		return l
	}
	return slog.LevelInfo
}
