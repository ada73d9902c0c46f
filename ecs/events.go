package ecs

// Event is a generic world event payload.
type Event struct {
	Type string
	Data any
}

// ContactEventKind identifies sensor contact event types.
type ContactEventKind string

const (
	ContactAirlock ContactEventKind = "airlock"
	ContactLadder  ContactEventKind = "ladder"
)

// ContactEvent is emitted the tick a crew member first overlaps an airlock
// or ladder proximity sensor.
type ContactEvent struct {
	Crew   Entity
	Target Entity
	Kind   ContactEventKind
}

// EventQueue is a simple FIFO queue. Consumers drain within the tick the
// events were pushed; the scheduler clears whatever is left.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
