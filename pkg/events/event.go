package events

import "time"

// Event is anything the pipeline announces on the bus. Concrete events
// are built through the constructors in this package so payload keys
// stay consistent between the local topic and the NATS mirror.
type Event interface {
	// EventType returns the unique code for this event (e.g., "QUERY_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain value implementation behind every event.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string { return e.Type }

func (e BaseEvent) Payload() map[string]interface{} { return e.Data }

func (e BaseEvent) Timestamp() time.Time { return e.OccurredAt }
