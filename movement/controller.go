// Package movement is the per-actor platformer movement state machine. It
// consumes input intent and contact sensors once per fixed tick and produces
// the velocity to hand to the body integrator, plus gameplay events.
package movement

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Controller owns one actor's movement state. It is not safe for concurrent
// use; every method is expected to run on the simulation goroutine.
type Controller struct {
	stats         Stats
	modifiers     Modifiers
	modifierOwner int
	events        EventQueue

	now      float64
	disabled bool

	input    cp.Vector
	velocity cp.Vector
	body     cp.Vector

	grounded     bool
	inCoyoteTime bool
	// leftGround is set when the ground sensor first reads false and stays set
	// until the next landing, even after the coyote countdown ran out.
	leftGround bool
	coyote     Timer

	jumpEndEarly    bool
	jumpCount       int
	jumpPressTime   float64
	jumpReleaseTime float64
	jumpImpulse     Timer

	dashing        bool
	dashLocked     bool
	canDash        bool
	dashPressed    bool
	dashInputTicks int
	dashTicks      int
	dashedTime     float64
	dashVelocity   cp.Vector

	fallTime float64

	canMove bool
	lockout Timer
}

// Snapshot is a read-only copy of the mutable state, for logging and
// debugging overlays.
type Snapshot struct {
	Now          float64
	Velocity     cp.Vector
	Input        cp.Vector
	Grounded     bool
	InCoyoteTime bool
	JumpEndEarly bool
	JumpCount    int
	Dashing      bool
	CanDash      bool
	CanMove      bool
	Modifiers    Modifiers
	Owner        int
}

// New validates stats and returns a controller in its spawn state.
func New(stats Stats) (*Controller, error) {
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{stats: stats}
	c.Reset()
	return c, nil
}

// Reset puts the controller back into its spawn state. Stats are kept.
func (c *Controller) Reset() {
	stats := c.stats
	*c = Controller{
		stats:     stats,
		modifiers: IdentityModifiers(),
		grounded:  true,
		canDash:   true,
		canMove:   true,
		// Nothing has been pressed yet; buffers start elapsed.
		jumpPressTime:   math.Inf(-1),
		jumpReleaseTime: math.Inf(-1),
		dashedTime:      math.Inf(-1),
	}
}

// SetStats swaps the tuning, e.g. after a prefab reload. Invalid stats are
// rejected and the current ones kept.
func (c *Controller) SetStats(stats Stats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("movement: set stats: %w", err)
	}
	c.stats = stats
	return nil
}

func (c *Controller) Stats() Stats {
	return c.stats
}

// Disable cancels every pending timer and freezes the controller until
// Enable. A coyote window that was still open is closed as if it expired,
// without firing anything.
func (c *Controller) Disable() {
	c.jumpImpulse.Cancel()
	c.lockout.Cancel()
	if c.coyote.Active() || c.inCoyoteTime {
		c.coyote.Cancel()
		c.inCoyoteTime = false
		c.grounded = false
	}
	c.canMove = true
	c.dashPressed = false
	c.dashInputTicks = 0
	c.disabled = true
}

func (c *Controller) Enable() {
	c.disabled = false
}

func (c *Controller) Disabled() bool {
	return c.disabled
}

// SetInputDirection sets the movement intent. Only X drives horizontal
// motion; the full vector picks the dash direction.
func (c *Controller) SetInputDirection(dir cp.Vector) {
	c.input = dir
}

// Tick runs one fixed simulation step and returns the velocity for the body.
func (c *Controller) Tick(s Sensors, dt float64) cp.Vector {
	if c.disabled || dt <= 0 {
		return c.velocity
	}
	c.now += dt
	c.body = s.BodyVelocity
	if c.lockout.Advance(dt) {
		c.canMove = true
	}

	c.checkGrounded(s, dt)
	c.checkCeiling(s, dt)
	c.checkWalls(s)
	c.horizontalVelocity(dt)
	c.handleDash()
	c.gravity(dt)
	c.applyJumpImpulse(dt)
	return c.velocity
}

// Events returns the outbound queue. Callers drain it once per tick.
func (c *Controller) Events() *EventQueue {
	return &c.events
}

func (c *Controller) Velocity() cp.Vector       { return c.velocity }
func (c *Controller) InputDirection() cp.Vector { return c.input }
func (c *Controller) Grounded() bool            { return c.grounded }
func (c *Controller) InCoyoteTime() bool        { return c.inCoyoteTime }
func (c *Controller) JumpEndEarly() bool        { return c.jumpEndEarly }
func (c *Controller) JumpCount() int            { return c.jumpCount }
func (c *Controller) Dashing() bool             { return c.dashing }
func (c *Controller) CanDash() bool             { return c.canDash }
func (c *Controller) CanMove() bool             { return c.canMove }
func (c *Controller) Now() float64              { return c.now }

func (c *Controller) State() Snapshot {
	return Snapshot{
		Now:          c.now,
		Velocity:     c.velocity,
		Input:        c.input,
		Grounded:     c.grounded,
		InCoyoteTime: c.inCoyoteTime,
		JumpEndEarly: c.jumpEndEarly,
		JumpCount:    c.jumpCount,
		Dashing:      c.dashing,
		CanDash:      c.canDash,
		CanMove:      c.canMove,
		Modifiers:    c.modifiers,
		Owner:        c.modifierOwner,
	}
}

func (c *Controller) emit(kind EventKind) {
	c.events.Push(Event{Kind: kind})
}

// lockInput drops movement input for d seconds. Zero leaves input alone.
func (c *Controller) lockInput(d float64) {
	if d <= 0 {
		return
	}
	c.canMove = false
	c.lockout.Start(d)
}
