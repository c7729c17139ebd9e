package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hostel/internal/queue"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Record(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func (s *memorySink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestConsume_DeliversActivityToSink(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := queue.NewInMemory(8)
	sink := &memorySink{}

	done := make(chan error, 1)
	go func() { done <- Consume(ctx, q, sink, zap.NewNop().Sugar()) }()

	first := NewEvent("attendance", ActionAppend, 0)
	second := NewEvent("rooms", ActionDelete, 1)
	for _, e := range []Event{first, second} {
		msg, err := e.Message()
		require.NoError(t, err)
		require.NoError(t, q.Publish(ctx, msg))
	}
	require.NoError(t, q.Publish(ctx, queue.Message{Type: "other"}))
	require.NoError(t, q.Publish(ctx, queue.Message{Type: MessageType, Body: []byte(`"x"`)}))

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	got := sink.snapshot()
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consume did not stop")
	}
}

func TestConsume_SinkErrorsAreLogged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	core, logs := observer.New(zapcore.DebugLevel)
	q := queue.NewInMemory(1)
	sink := &memorySink{err: errors.New("db down")}

	go func() { _ = Consume(ctx, q, sink, zap.New(core).Sugar()) }()

	msg, err := NewEvent("leave", ActionAppend, 3).Message()
	require.NoError(t, err)
	require.NoError(t, q.Publish(ctx, msg))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("record activity failed").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLogSink_Record(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := NewLogSink(zap.New(core).Sugar())

	err := sink.Record(context.Background(), NewEvent("warden_messages", ActionAppend, 0))

	require.NoError(t, err)
	entries := logs.FilterMessage("collection changed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "warden_messages", entries[0].ContextMap()["collection"])
}
