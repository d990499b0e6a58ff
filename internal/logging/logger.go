// Package logging builds the process logger from LogConfig.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"petledger/internal/config"
)

// New returns a text logger for the "console" format and a JSON logger for
// anything else. Unknown levels fall back to info.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := new(slog.LevelVar)
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	case "info", "":
	default:
		slog.Default().Warn("invalid log level, using info", slog.String("value", cfg.Level))
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "console", "text", "":
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("time", a.Value.Time().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	}
	return slog.New(h)
}

// Install makes l the default logger. The standard library log package is
// routed through it as well, so log.Printf call sites share its handler.
func Install(l *slog.Logger) {
	slog.SetDefault(l)
}
