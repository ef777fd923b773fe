// Package logging configures the process wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

var level = new(slog.LevelVar)

// Configure installs a text handler writing to w as the default logger and
// sets its level from one of DEBUG, INFO, WARN or ERROR. Anything else
// means INFO.
func Configure(w io.Writer, lvl string) *slog.Logger {
	SetLevel(lvl)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func SetLevel(lvl string) {
	switch strings.ToUpper(lvl) {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "WARN":
		level.Set(slog.LevelWarn)
	case "ERROR":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

func Level() slog.Level { return level.Level() }
