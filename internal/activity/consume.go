package activity

import (
	"context"

	"go.uber.org/zap"

	"hostel/internal/queue"
)

// Consume drains activity messages from q into sink until ctx is done or the
// queue closes. Malformed messages and sink failures are logged and skipped.
func Consume(ctx context.Context, q queue.Queue, sink Sink, log *zap.SugaredLogger) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	for msg := range messages {
		if msg.Type != MessageType {
			log.Debugw("skipping message", "type", msg.Type)
			continue
		}
		e, err := FromMessage(msg)
		if err != nil {
			log.Warnw("bad activity message", "error", err)
			continue
		}
		if err := sink.Record(ctx, e); err != nil {
			log.Errorw("record activity failed", "id", e.ID, "error", err)
		}
	}
	return nil
}
