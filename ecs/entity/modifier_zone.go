package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var defaultZoneColor = color.NRGBA{R: 0x40, G: 0x80, B: 0xc0, A: 0x40}

// BuildModifierZone adds a sensor area driven by a zone script.
func BuildModifierZone(w *ecs.World, z prefabs.ZoneSpec) (ecs.Entity, error) {
	if z.Width <= 0 || z.Height <= 0 {
		return 0, fmt.Errorf("zone %q: %w: non-positive size", z.Name, prefabs.ErrInvalidLevel)
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysicsWorld
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: z.Name}); err != nil {
		return 0, fmt.Errorf("zone %q: add name: %w", z.Name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: z.X, Y: z.Y}); err != nil {
		return 0, fmt.Errorf("zone %q: add transform: %w", z.Name, err)
	}
	shape := pw.AddZone(e, z.X, z.Y, z.Width, z.Height)
	if err := ecs.Add(w, e, component.ModifierZoneComponent.Kind(), &component.ModifierZone{
		Name:   z.Name,
		Script: z.Script,
		Params: z.Params,
		Width:  z.Width,
		Height: z.Height,
		Color:  colorOr(z.Color, defaultZoneColor),
		Shape:  shape,
	}); err != nil {
		return 0, fmt.Errorf("zone %q: add modifier zone: %w", z.Name, err)
	}
	return e, nil
}
