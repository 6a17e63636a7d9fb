// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	// ChangedEvent signals that the payload's subject was modified.
	ChangedEvent EventType = "changed"
	// RemovedEvent signals that the payload's subject no longer exists.
	RemovedEvent EventType = "removed"
	// EmittedEvent signals a one-way notification, such as a log line.
	EmittedEvent EventType = "emitted"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels scoped to a context.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher fans events out to subscribers.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
