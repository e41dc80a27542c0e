package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
)

// BuildActor builds an actor prefab and places it at (x, y).
func BuildActor(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		return 0, fmt.Errorf("actor: override transform: %w", err)
	}
	return e, nil
}

// BuildActorSpec builds an actor from a decoded prefab, e.g. one whose stats
// were overridden in memory.
func BuildActorSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntitySpec(w, spec, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		return 0, fmt.Errorf("actor: override transform: %w", err)
	}
	return e, nil
}
