package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
)

// DefaultDT is the fixed simulation step.
const DefaultDT = 1.0 / 60.0

func fixedDT(dt float64) float64 {
	if dt <= 0 {
		return DefaultDT
	}
	return dt
}

// MovementSystem runs every actor's controller for one tick: input becomes
// commands, the physics world is probed, and the resulting velocity goes to
// the body. Controller events are forwarded to the world queue.
type MovementSystem struct {
	dt float64
}

func NewMovementSystem(dt float64) *MovementSystem {
	return &MovementSystem{dt: fixedDT(dt)}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.MovementComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, mv *component.Movement, pb *component.PhysicsBody) {
		ctrl := mv.Controller
		if ctrl == nil {
			return
		}

		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			applyInput(ctrl, in)
		}

		stats := ctrl.Stats()
		probe := ecs.SenseShape{
			Width:        pb.Width,
			Height:       pb.Height,
			GroundOffset: stats.GroundCheckRayOffset,
			Mask:         stats.CollisionMask,
			Group:        ecs.ActorGroup(e),
		}
		var travelX float64
		if pb.Body != nil {
			travelX = pb.Body.Velocity().X
		}
		mv.Sensors = pw.Sense(pb.Body, probe, travelX)

		v := ctrl.Tick(mv.Sensors, m.dt)
		if pb.Body != nil {
			pb.Body.SetVelocityVector(v)
		}

		for _, evt := range ctrl.Events().Drain() {
			w.Events().Push(ecs.Event{Entity: e, Event: evt})
		}
	})
}

func applyInput(ctrl *movement.Controller, in *component.Input) {
	ctrl.SetInputDirection(cp.Vector{X: in.MoveX, Y: in.MoveY})
	if in.JumpPressed {
		ctrl.JumpInput()
	}
	if in.JumpReleased {
		ctrl.JumpReleased()
	}
	if in.Dash {
		ctrl.DashInput()
	}
}
