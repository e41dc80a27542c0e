package component

import "github.com/milk9111/platformer/movement"

// Movement hosts an actor's controller.
type Movement struct {
	Controller *movement.Controller
	// Sensors is the last reading handed to the controller.
	Sensors movement.Sensors
	// Prefab names the file the stats came from, for hot reload.
	Prefab string
}

var MovementComponent = NewComponent[Movement]()
