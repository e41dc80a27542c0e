package component

import "image/color"

// Solid is static level geometry. Transform holds its lower-left corner.
type Solid struct {
	Width  float64
	Height float64
	Color  color.Color
}

var SolidComponent = NewComponent[Solid]()
