package component

import "github.com/jakecoffman/cp"

// CameraShakeRequest asks the camera system to play a shake. A zero Shake
// uses the camera's default; a zero Direction shakes in every direction.
type CameraShakeRequest struct {
	Direction cp.Vector
	Magnitude float64
	Duration  float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
