package component

// Transform is a world position, y up. For bodies it is the center.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
