package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// InputSource produces the player's intent for one tick.
type InputSource interface {
	Poll() component.Input
}

// InputSystem copies the polled intent into every player's Input. Actors
// without a player tag keep whatever their owner wrote.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	in := i.source.Poll()
	ecs.ForEach2(w, component.InputComponent.Kind(), component.PlayerTagComponent.Kind(), func(_ ecs.Entity, input *component.Input, _ *component.PlayerTag) {
		*input = in
	})
}

// InputFrame is a held input state lasting Ticks ticks.
type InputFrame struct {
	Ticks int     `yaml:"ticks"`
	MoveX float64 `yaml:"move_x"`
	MoveY float64 `yaml:"move_y"`
	Jump  bool    `yaml:"jump"`
	Dash  bool    `yaml:"dash"`
}

// ScriptedInput replays a timeline of held states and derives the jump
// press and release edges from it. Past the end it reports nothing held.
type ScriptedInput struct {
	frames   []InputFrame
	frame    int
	tick     int
	prevJump bool
}

func NewScriptedInput(frames ...InputFrame) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

func (s *ScriptedInput) Poll() component.Input {
	var cur InputFrame
	for s.frame < len(s.frames) && s.tick >= s.frames[s.frame].Ticks {
		s.frame++
		s.tick = 0
	}
	if s.frame < len(s.frames) {
		cur = s.frames[s.frame]
		s.tick++
	}

	in := component.Input{
		MoveX:        cur.MoveX,
		MoveY:        cur.MoveY,
		Jump:         cur.Jump,
		JumpPressed:  cur.Jump && !s.prevJump,
		JumpReleased: !cur.Jump && s.prevJump,
		Dash:         cur.Dash,
	}
	s.prevJump = cur.Jump
	return in
}

// Done reports whether the whole timeline has been replayed.
func (s *ScriptedInput) Done() bool {
	for s.frame < len(s.frames) && s.tick >= s.frames[s.frame].Ticks {
		s.frame++
		s.tick = 0
	}
	return s.frame >= len(s.frames)
}

// Ticks is the timeline length.
func (s *ScriptedInput) Ticks() int {
	n := 0
	for _, f := range s.frames {
		if f.Ticks > 0 {
			n += f.Ticks
		}
	}
	return n
}
