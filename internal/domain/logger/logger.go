// Package logger times store operations and reports them through slog.
package logger

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

// SlowQuery is the duration above which a successful operation is logged at warn level.
var SlowQuery = 500 * time.Millisecond

type QueryLogger struct {
	operation string
	query     string
	args      []any
	start     time.Time
}

func NewQueryLogger(operation, query string, args ...any) *QueryLogger {
	return &QueryLogger{
		operation: operation,
		query:     query,
		args:      args,
		start:     time.Now(),
	}
}

// Log records the outcome. Lost conflict races and missing rows are expected
// outcomes of the engine and are not logged as errors.
func (l *QueryLogger) Log(err error, rows int64) {
	took := time.Since(l.start)
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", l.operation),
		slog.String("query", l.query),
		slog.Any("args", l.args),
		slog.Duration("took", took),
	}

	switch {
	case errors.Is(err, packs.ErrConflict):
		slog.Warn("Query lost a conflicting write", append(attrs, slog.Any("error", err))...)
	case errors.Is(err, packs.ErrNotFound):
		slog.Debug("Query matched nothing", append(attrs, slog.Any("error", err))...)
	case err != nil:
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
	case took > SlowQuery:
		slog.Warn("Slow query", append(attrs, slog.Int64("affected_rows", rows))...)
	default:
		slog.Debug("Query executed", append(attrs, slog.Int64("affected_rows", rows))...)
	}
}
