package ecs

import "github.com/milk9111/platformer/movement"

// Event is a movement event tagged with the actor that produced it.
type Event struct {
	Entity Entity
	movement.Event
}

// EventQueue is a simple FIFO queue. The scheduler flushes it at the end of
// every tick, so consumers must run after the producers in the same tick.
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

// Pending returns the queued events without removing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
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
