package component

// LevelBounds stores the world-space size of the loaded level, origin at the
// lower-left corner.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
