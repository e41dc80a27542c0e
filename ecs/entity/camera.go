package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// BuildCamera builds the camera prefab. A world holds at most one camera.
func BuildCamera(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if existing, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		return 0, fmt.Errorf("camera: world already has camera %s", existing)
	}
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.CameraComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefabPath)
	}
	return e, nil
}
