package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var defaultSolidColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x66, A: 0xff}

// BuildLevel adds the level bounds, one static entity per solid and one
// entity per modifier zone.
func BuildLevel(w *ecs.World, lvl prefabs.LevelSpec) error {
	if err := lvl.Validate(); err != nil {
		return err
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return ErrNoPhysicsWorld
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	for i, s := range lvl.Solids {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: s.X, Y: s.Y}); err != nil {
			return fmt.Errorf("level: solid %d: %w", i, err)
		}
		if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{
			Width:  s.Width,
			Height: s.Height,
			Color:  colorOr(s.Color, defaultSolidColor),
		}); err != nil {
			return fmt.Errorf("level: solid %d: %w", i, err)
		}
		pw.AddSolid(s.X, s.Y, s.Width, s.Height)
	}

	for _, z := range lvl.Zones {
		if _, err := BuildModifierZone(w, z); err != nil {
			return err
		}
	}
	return nil
}

func colorOr(c *prefabs.YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
