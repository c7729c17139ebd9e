package activity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hostel/internal/queue"
)

// MessageType tags activity messages on the queue.
const MessageType = "hostel.activity"

// Actions recorded for a collection.
const (
	ActionAppend = "append"
	ActionDelete = "delete"
)

// Event notes that a collection changed at a position.
type Event struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	Position   int       `json:"position"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh id and the current UTC time.
func NewEvent(collection, action string, position int) Event {
	return Event{
		ID:         uuid.NewString(),
		Collection: collection,
		Action:     action,
		Position:   position,
		OccurredAt: time.Now().UTC(),
	}
}

// Message wraps the event for the queue.
func (e Event) Message() (queue.Message, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return queue.Message{}, err
	}
	return queue.Message{Type: MessageType, Body: body}, nil
}

// FromMessage decodes an event published with Event.Message.
func FromMessage(msg queue.Message) (Event, error) {
	if msg.Type != MessageType {
		return Event{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	var e Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return Event{}, fmt.Errorf("decode activity: %w", err)
	}
	if e.ID == "" {
		return Event{}, fmt.Errorf("activity without id")
	}
	return e, nil
}
