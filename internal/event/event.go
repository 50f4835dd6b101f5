package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tessera/internal/event/topic"
)

// Editor notification topics.
const (
	TopicScene     topic.Topic = "scene.changed"
	TopicSelection topic.Topic = "selection.changed"
	TopicMode      topic.Topic = "mode.changed"
	TopicHistory   topic.Topic = "history.changed"
	TopicAdjust    topic.Topic = "adjust.changed"
	TopicPreview   topic.Topic = "preview.changed"
	TopicViewport  topic.Topic = "viewport.changed"
	TopicConfig    topic.Topic = "config.reloaded"
)

// Event is a published notification.
type Event struct {
	ID      string
	Topic   topic.Topic
	Payload any
	// Source names the publishing component.
	Source    string
	Timestamp time.Time
}

// New creates an event with a fresh id.
func New(t topic.Topic, payload any, source string) Event {
	return Event{
		ID:        uuid.NewString(),
		Topic:     t,
		Payload:   payload,
		Source:    source,
		Timestamp: time.Now(),
	}
}

// Handler receives events.
type Handler func(ctx context.Context, ev Event) error
