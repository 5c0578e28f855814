package gencoro

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// traceLogger is nil unless SetLogger installed one, keeping the
// default cost of tracing to a single atomic load per transition.
var traceLogger atomic.Pointer[slog.Logger]

// SetLogger installs a logger that receives a debug-level event for
// every coroutine state transition, attributed with the coroutine's
// short id and resulting state. Passing nil disables tracing again.
func SetLogger(l *slog.Logger) {
	traceLogger.Store(l)
}

func (c *Coroutine) trace(event string) {
	l := traceLogger.Load()
	if l == nil {
		return
	}
	attrs := []any{
		slog.String("coroutine", short(c.id)),
		slog.String("state", c.State().String()),
	}
	if c.State().terminal() && c.cause != nil {
		attrs = append(attrs, slog.Any("cause", c.cause))
	}
	l.Debug(event, attrs...)
}

func short(id uuid.UUID) string {
	return id.String()[:8]
}
