package main

import (
	"io"
	"log/slog"

	"github.com/milk9111/platformer/ecs"
)

// eventRecorder runs as a game observer and copies the player's events out
// of the world queue before the tick ends.
type eventRecorder struct {
	player ecs.Entity
	tick   int
	events []TickEvent
}

func (r *eventRecorder) Update(w *ecs.World) {
	r.tick++
	for _, evt := range w.Events().Pending() {
		if evt.Entity == r.player {
			r.events = append(r.events, TickEvent{Tick: r.tick, Event: evt.Event})
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
