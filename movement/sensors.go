package movement

import "github.com/jakecoffman/cp"

// Sensors is one tick of world-contact facts from the physical body. The zero
// value means no contact anywhere.
type Sensors struct {
	Grounded bool
	Ceiling  bool
	Wall     bool
	// WallDir is the horizontal side the wall probe looked toward: -1 or 1.
	WallDir int
	// BodyVelocity is the body's velocity before this tick's overwrite.
	BodyVelocity cp.Vector
}

// SensorSource produces the readings for one actor.
type SensorSource interface {
	Sense() Sensors
}

// Sense reads src, treating a missing source as no contact.
func Sense(src SensorSource) Sensors {
	if src == nil {
		return Sensors{}
	}
	return src.Sense()
}
