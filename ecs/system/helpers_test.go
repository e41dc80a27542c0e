package system

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/movement"
	"github.com/stretchr/testify/require"
)

// newActorWorld builds a world with a long floor whose top is at y=1 and
// the player prefab at (x, y).
func newActorWorld(t *testing.T, x, y float64) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	w.PhysicsWorld().AddSolid(0, 0, 60, 1)

	e, err := entity.BuildActor(w, "player.yaml", x, y)
	require.NoError(t, err)
	return w, e
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

type eventRecorder struct {
	events []ecs.Event
}

func (r *eventRecorder) Update(w *ecs.World) {
	r.events = append(r.events, w.Events().Pending()...)
}

func (r *eventRecorder) has(kind movement.EventKind) bool {
	for _, evt := range r.events {
		if evt.Kind == kind {
			return true
		}
	}
	return false
}

func run(s *ecs.Scheduler, w *ecs.World, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Update(w)
	}
}
