package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_PublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := NewInMemory(4)

	msgs, err := q.Consume(ctx)
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, Message{Type: "a", Body: json.RawMessage(`{"n":1}`)}))
	require.NoError(t, q.Publish(ctx, Message{Type: "b", Body: json.RawMessage(`{"n":2}`)}))

	for _, want := range []string{"a", "b"} {
		select {
		case msg := <-msgs:
			assert.Equal(t, want, msg.Type)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestInMemory_PublishHonorsContext(t *testing.T) {
	q := NewInMemory(1)
	require.NoError(t, q.Publish(context.Background(), Message{Type: "fill"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.Publish(ctx, Message{Type: "overflow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemory_ConsumeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewInMemory(1)
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}

func TestEncodeDecode(t *testing.T) {
	in := Message{Type: "record.appended", Body: json.RawMessage(`{"collection":"rooms"}`)}

	s, err := encode(in)
	require.NoError(t, err)
	out, err := decode(s)

	require.NoError(t, err)
	assert.Equal(t, in.Type, out.Type)
	assert.JSONEq(t, string(in.Body), string(out.Body))
}

func TestDecode_Rejects(t *testing.T) {
	_, err := decode("checkin|abc")
	assert.Error(t, err)

	_, err = decode(`{"body":{}}`)
	assert.Error(t, err)
}
