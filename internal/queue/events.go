package queue

import (
	"sync"
	"time"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// EventType classifies messages emitted during queue processing.
type EventType string

const (
	// EventTypeStatus reports a per-item status change.
	EventTypeStatus EventType = "status"
	// EventTypeError carries transient queue-level errors that are not
	// bound to any item (e.g. unsupported input at enqueue time).
	EventTypeError EventType = "error"
)

// Event is a sequenced payload consumed by UI subscribers.
type Event struct {
	Seq       int64         `json:"seq"`
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	ItemID    string        `json:"itemId,omitempty"`
	Status    models.Status `json:"status,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// EventBus stores recent events and provides incremental reads.
type EventBus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewEventBus creates a bounded in-memory event buffer.
func NewEventBus(maxEvents int) *EventBus {
	if maxEvents <= 0 {
		maxEvents = 500
	}
	return &EventBus{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one event and assigns sequence and timestamp.
func (b *EventBus) Publish(event Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]Event(nil), b.events[trim:]...)
	}

	return event
}

// PublishError records a transient queue-level error.
func (b *EventBus) PublishError(message string) Event {
	return b.Publish(Event{Type: EventTypeError, Message: message})
}

// Since returns events with sequence strictly greater than seq.
func (b *EventBus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return nil
	}

	out := make([]Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}
