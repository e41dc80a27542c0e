package component

// ActorTag marks an entity driven by a movement controller.
type ActorTag struct{}

var ActorTagComponent = NewComponent[ActorTag]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
