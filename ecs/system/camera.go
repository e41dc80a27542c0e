package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
)

var (
	hardFallShakeDir  = cp.Vector{Y: 1}
	wallSmashShakeDir = cp.Vector{X: 1}
)

// CameraSystem drives the single camera: it follows the named target, turns
// hard falls and wall smashes of that target into shakes, plays queued
// CameraShakeRequests and writes the view into the camera's transform.
type CameraSystem struct {
	dt           float64
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem(dt float64) *CameraSystem {
	return &CameraSystem{dt: fixedDT(dt)}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || cam.Rig == nil {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByName(w, cam.TargetName)
	}
	if target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind()); ok {
		cam.Rig.Follow(cp.Vector{X: target.X, Y: target.Y}, cs.dt)
	}

	for _, evt := range w.Events().Pending() {
		if evt.Entity != cs.targetEntity {
			continue
		}
		switch evt.Kind {
		case movement.EventHardFall:
			cam.Rig.ShakeDirectional(hardFallShakeDir, cam.Rig.DefaultShake())
		case movement.EventWallSmash:
			cam.Rig.ShakeDirectional(wallSmashShakeDir, cam.Rig.DefaultShake())
		}
	}

	for _, e := range w.Query(component.CameraShakeRequestComponent.Kind()) {
		req, _ := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind())
		cam.Rig.ShakeDirectional(shakeDirection(req), shakeStats(req, cam.Rig.DefaultShake()))
		ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
	}

	cam.Rig.Update(cs.dt)

	view := cam.Rig.View()
	if t, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		t.X = view.X
		t.Y = view.Y
	}
}

func shakeDirection(req *component.CameraShakeRequest) cp.Vector {
	if req == nil || req.Direction == (cp.Vector{}) {
		return cp.Vector{X: 1, Y: 1}
	}
	return req.Direction
}

func shakeStats(req *component.CameraShakeRequest, fallback camera.Shake) camera.Shake {
	if req == nil || (req.Magnitude == 0 && req.Duration == 0) {
		return fallback
	}
	return camera.Shake{Magnitude: req.Magnitude, Duration: req.Duration}
}

// findEntityByName falls back to the player tag for the "player" target.
func findEntityByName(w *ecs.World, name string) ecs.Entity {
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if found == 0 && n.Value == name && ecs.Has(w, e, component.TransformComponent.Kind()) {
			found = e
		}
	})
	if found == 0 && name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return found
}
