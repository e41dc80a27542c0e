package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/game"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// pixelsPerUnit maps world units to screen pixels.
	pixelsPerUnit = 32
)

type sandbox struct {
	game  *game.Game
	debug bool
}

func newSandbox(g *game.Game, debug bool) *sandbox {
	return &sandbox{game: g, debug: debug}
}

func (s *sandbox) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.debug = !s.debug
	}
	return s.game.Step()
}

func (s *sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	w := s.game.World()

	ecs.ForEach2(w, component.SolidComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, solid *component.Solid, t *component.Transform) {
		s.fillBox(screen, t.X, t.Y, solid.Width, solid.Height, solid.Color)
	})
	ecs.ForEach2(w, component.ModifierZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, zone *component.ModifierZone, t *component.Transform) {
		clr := zone.Color
		if clr == nil {
			clr = color.NRGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0x40}
		}
		s.fillBox(screen, t.X, t.Y, zone.Width, zone.Height, clr)
		if s.debug {
			x, y := s.toScreen(t.X, t.Y+zone.Height)
			ebitenutil.DebugPrintAt(screen, zone.Name, int(x)+2, int(y)+2)
		}
	})
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		clr := color.Color(colornames.Crimson)
		if mv, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok && mv.Controller != nil && mv.Controller.Dashing() {
			clr = colornames.Orange
		}
		s.fillBox(screen, t.X-body.Width/2, t.Y-body.Height/2, body.Width, body.Height, clr)
		if s.debug {
			s.drawProbes(screen, e, body, t)
		}
	})

	ebitenutil.DebugPrint(screen, s.status())
}

func (s *sandbox) drawProbes(screen *ebiten.Image, e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
	mv, ok := ecs.Get(s.game.World(), e, component.MovementComponent.Kind())
	if !ok || mv.Controller == nil {
		return
	}
	reach := body.Height/2 - mv.Controller.Stats().GroundCheckRayOffset
	sense := mv.Sensors

	cx, cy := s.toScreen(t.X, t.Y)
	_, gy := s.toScreen(t.X, t.Y-reach)
	_, ty := s.toScreen(t.X, t.Y+reach)
	vector.StrokeLine(screen, cx, cy, cx, gy, 1, probeColor(sense.Grounded), false)
	vector.StrokeLine(screen, cx, cy, cx, ty, 1, probeColor(sense.Ceiling), false)
	if sense.WallDir != 0 {
		wx, _ := s.toScreen(t.X+float64(sense.WallDir)*body.Width*1.5, t.Y)
		vector.StrokeLine(screen, cx, cy, wx, cy, 1, probeColor(sense.Wall), false)
	}
}

func probeColor(hit bool) color.Color {
	if hit {
		return colornames.Lime
	}
	return colornames.Lightgrey
}

func (s *sandbox) status() string {
	msg := fmt.Sprintf("TPS: %.1f  tick: %d", ebiten.ActualTPS(), s.game.Ticks())
	ctrl := s.game.PlayerController()
	if ctrl == nil {
		return msg
	}
	st := ctrl.State()
	msg += fmt.Sprintf("\nvel: (%.2f, %.2f)  grounded: %v  coyote: %v  jumps: %d  dashing: %v  can_dash: %v  can_move: %v",
		st.Velocity.X, st.Velocity.Y, st.Grounded, st.InCoyoteTime, st.JumpCount, st.Dashing, st.CanDash, st.CanMove)
	if s.debug {
		m := st.Modifiers
		msg += fmt.Sprintf("\nmodifiers[%d]: speed %.2f accel %.2f decel %.2f gravity %.2f jump %.2f extra %d",
			st.Owner, m.SpeedMult, m.AccelerationMult, m.DecelerationMult, m.GravityMult, m.JumpForceMult, m.ExtraJumps)
	}
	return msg
}

// fillBox draws a world box given its lower-left corner.
func (s *sandbox) fillBox(screen *ebiten.Image, x, y, width, height float64, clr color.Color) {
	if clr == nil {
		clr = colornames.Slategray
	}
	sx, sy := s.toScreen(x, y+height)
	vector.FillRect(screen, sx, sy, float32(width*pixelsPerUnit), float32(height*pixelsPerUnit), clr, false)
}

// toScreen maps a world point, y up, to screen pixels around the camera view.
func (s *sandbox) toScreen(x, y float64) (float32, float32) {
	var camX, camY float64
	if rig := s.game.Camera(); rig != nil {
		view := rig.View()
		camX, camY = view.X, view.Y
	}
	sx := (x-camX)*pixelsPerUnit + baseWidth/2
	sy := baseHeight/2 - (y-camY)*pixelsPerUnit
	return float32(sx), float32(sy)
}

func (s *sandbox) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
