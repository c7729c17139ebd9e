package activity

import (
	"context"

	"go.uber.org/zap"
)

// Sink persists activity events.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// LogSink writes events to the application log. Used when no database is configured.
type LogSink struct {
	log *zap.SugaredLogger
}

// NewLogSink creates a sink on top of log.
func NewLogSink(log *zap.SugaredLogger) *LogSink {
	return &LogSink{log: log}
}

// Record logs the event at info level.
func (s *LogSink) Record(_ context.Context, e Event) error {
	s.log.Infow("collection changed",
		"id", e.ID,
		"collection", e.Collection,
		"action", e.Action,
		"position", e.Position,
		"occurred_at", e.OccurredAt,
	)
	return nil
}
