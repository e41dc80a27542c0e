package movement

// EventKind identifies a gameplay event emitted by a controller.
type EventKind string

const (
	EventJumped    EventKind = "jumped"
	EventGrounded  EventKind = "grounded"
	EventDashed    EventKind = "dashed"
	EventWallSmash EventKind = "wall_smash"
	EventHardFall  EventKind = "hard_fall"
)

// Event is a single notification. Grounded is only meaningful for
// EventGrounded.
type Event struct {
	Kind     EventKind
	Grounded bool
}

// EventQueue is a FIFO the owner drains once per tick.
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

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
