package config

import (
	"io"
	"log/slog"
	"strings"

	"gorm.io/gorm/logger"
)

// NewLogger builds the application logger with the level named by LOG_LEVEL.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel(level)}))
}

// GormLogLevel keeps SQL logging quiet unless LOG_LEVEL=debug.
func GormLogLevel(level string) logger.LogLevel {
	if strings.ToLower(level) == "debug" {
		return logger.Info
	}
	return logger.Warn
}

func logLevel(level string) slog.Leveler {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	lv := new(slog.LevelVar)
	lv.Set(lvl)
	return lv
}
