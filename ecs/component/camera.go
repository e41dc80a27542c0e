package component

import "github.com/milk9111/platformer/camera"

type Camera struct {
	TargetName string
	Rig        *camera.Camera
}

var CameraComponent = NewComponent[Camera]()
