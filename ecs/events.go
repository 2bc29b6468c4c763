package ecs

// Event is a world-level notification. Type names the producer's event,
// Data carries its payload.
type Event struct {
	Type   string
	Entity Entity
	Data   any
}

// EventQueue is a FIFO drained by consumers, typically once per frame.
type EventQueue struct {
	items []Event
}

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

