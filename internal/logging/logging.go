// Package logging builds the slog.Logger handed to every classver component.
//
// There is no package-level logger: commands construct one from the
// verbosity count and pass it down explicitly.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and is used for per-entry detail.
const LevelTrace = slog.LevelDebug - 4

// Level maps a -v count to a level: 0 is warnings and errors, 1 adds debug
// output, 2 or more adds trace output.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// New returns a text logger writing to w at the level implied by verbosity.
func New(w io.Writer, verbosity int) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbosity),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) != 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
					return slog.String(slog.LevelKey, "TRACE")
				}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Trace logs msg at LevelTrace.
func Trace(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelTrace, msg, args...)
}

// ParseLevel accepts the names used in config files ("warn", "debug",
// "trace") and returns the equivalent verbosity count. There is no info
// level: classver logs nothing between warnings and debug output.
func ParseLevel(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "warn", "warning":
		return 0, true
	case "debug":
		return 1, true
	case "trace":
		return 2, true
	}
	return 0, false
}
