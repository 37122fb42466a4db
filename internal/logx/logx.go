// Package logx configures the process-wide slog logger.
package logx

import (
	"io"
	"log/slog"
)

// LevelFromFlags maps the verbosity flags to a level. vv wins over v, which
// wins over q; with none set the build default applies.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return defaultLevel
	}
}

// Setup installs a text handler on w at level as the default logger and
// returns it.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
