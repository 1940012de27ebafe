package pipeline

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// NewLogger builds a logger writing to w. Unknown levels fall back to info,
// unknown formats to text. It does not touch the global default logger.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}

// newRunID tags every line of one run.
func newRunID() string { return uuid.NewString() }
