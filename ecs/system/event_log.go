package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/movement"
)

// EventLogSystem logs every movement event of the tick. It runs last, before
// the scheduler flushes the queue.
type EventLogSystem struct {
	log  *slog.Logger
	tick uint64
}

func NewEventLogSystem(logger *slog.Logger) *EventLogSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLogSystem{log: logger}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.tick++
	for _, evt := range w.Events().Pending() {
		attrs := []any{"tick", s.tick, "entity", evt.Entity.String(), "event", string(evt.Kind)}
		if evt.Kind == movement.EventGrounded {
			attrs = append(attrs, "grounded", evt.Grounded)
		}
		s.log.Info("movement event", attrs...)
	}
}
