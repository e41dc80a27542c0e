package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// ModifierZone is an area whose script decides the stat modifiers applied to
// actors inside it. Transform holds its lower-left corner. The zone entity's
// id is the modifier owner id.
type ModifierZone struct {
	Name   string
	Script string
	Params map[string]any
	Width  float64
	Height float64
	Color  color.Color
	Shape  *cp.Shape
}

var ModifierZoneComponent = NewComponent[ModifierZone]()
