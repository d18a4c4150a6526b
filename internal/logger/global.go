package logger

import (
	"log/slog"
	"time"
)

// LogCommand logs the outcome of a CLI command.
func LogCommand(name string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Command failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Info("Command executed", attrs...)
}

// LogSystem logs process lifecycle events.
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}
