package component

// Input stores this tick's input intent for an entity. The *Pressed and
// *Released fields are edges and hold for one tick only.
type Input struct {
	MoveX        float64
	MoveY        float64
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Dash         bool
}

var InputComponent = NewComponent[Input]()
