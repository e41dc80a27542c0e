package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/prefabs"
)

var ErrNoPhysicsWorld = errors.New("entity: world has no physics world")

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"actor_tag":    addActorTag,
	"camera_tag":   addCameraTag,
	"input":        addInput,
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"movement":     addMovement,
	"camera":       addCamera,
}

// physics_body and camera read the transform, so it goes first.
var componentBuildOrder = []string{
	"player_tag",
	"actor_tag",
	"camera_tag",
	"input",
	"transform",
	"physics_body",
	"movement",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntitySpec(w, spec, prefabPath)
}

// BuildEntitySpec builds an entity from an already decoded prefab. The
// entity is destroyed again if any component fails.
func BuildEntitySpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return buildRank(names[i]) < buildRank(names[j]) })

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			destroy(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
		}
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			destroy(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

// destroy also drops a body the physics_body builder may have created.
func destroy(w *ecs.World, e ecs.Entity) {
	w.PhysicsWorld().RemoveBody(e)
	ecs.DestroyEntity(w, e)
}

// SetEntityTransform moves e, and its body when it has one.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
		w.PhysicsWorld().Teleport(e, cp.Vector{X: x, Y: y})
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addActorTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ActorTagComponent.Kind(), &component.ActorTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics_body needs a positive width and height")
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return ErrNoPhysicsWorld
	}
	var x, y float64
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	body, shape := pw.EnsureBody(e, x, y, spec.Width, spec.Height)
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   body,
		Shape:  shape,
		Width:  spec.Width,
		Height: spec.Height,
	})
}

func addMovement(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	stats, err := prefabs.DecodeMovementSpec(raw)
	if err != nil {
		return err
	}
	ctrl, err := movement.New(stats)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{
		Controller: ctrl,
		Prefab:     ctx.PrefabPath,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeCameraSpec(raw)
	if err != nil {
		return err
	}
	var start cp.Vector
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		start = cp.Vector{X: t.X, Y: t.Y}
	}
	rig, err := camera.New(spec.Config, start)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Rig:        rig,
	})
}
