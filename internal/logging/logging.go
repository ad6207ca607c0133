// Package logging создает структурированный логгер сервиса
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel переводит LOG_LEVEL (DEBUG/INFO/WARN/ERROR) в slog.Level.
// Неизвестные значения дают INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создает JSON-логгер с заданным уровнем
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}
