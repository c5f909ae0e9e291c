package cadview

import (
	"io"
	"log/slog"
)

// logger is the package logger. Single-threaded like the rest of the
// viewer, so no synchronization.
var logger = slog.Default()

// SetLogger replaces the package logger. A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// NewLogger returns a text logger writing to w at the given level, with
// every record tagged component=cadview.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", "cadview")
}
