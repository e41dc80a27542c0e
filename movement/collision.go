package movement

import (
	"math"

	"github.com/milk9111/platformer/common"
)

func (c *Controller) checkGrounded(s Sensors, dt float64) {
	if c.coyote.Advance(dt) {
		c.grounded = false
		c.inCoyoteTime = false
	}

	if s.Grounded {
		if !c.grounded || c.leftGround {
			c.land()
		}
		return
	}

	if c.dashing {
		// no grace period when dashing off a ledge
		announce := !c.leftGround
		c.coyote.Cancel()
		c.inCoyoteTime = false
		c.grounded = false
		c.leftGround = true
		if announce {
			c.events.Push(Event{Kind: EventGrounded, Grounded: false})
		}
		return
	}

	if !c.leftGround {
		c.leftGround = true
		c.inCoyoteTime = true
		c.coyote.Start(c.stats.CoyoteTime)
		c.events.Push(Event{Kind: EventGrounded, Grounded: false})
	}
}

func (c *Controller) land() {
	c.coyote.Cancel()
	c.leftGround = false
	c.grounded = true
	c.inCoyoteTime = false
	c.jumpEndEarly = false
	c.canDash = true
	c.jumpCount = 0
	c.events.Push(Event{Kind: EventGrounded, Grounded: true})

	if c.velocity.Y < -c.stats.MaxFallSpeed {
		c.emit(EventHardFall)
		c.lockInput(c.stats.HardFallLockout)
	}
}

func (c *Controller) checkCeiling(s Sensors, dt float64) {
	if !s.Ceiling || c.body.Y < 0 {
		return
	}
	c.velocity.Y = common.MoveTowards(c.velocity.Y, 0, c.stats.FallAcceleration*dt)
	c.jumpImpulse.Cancel()
	c.jumpEndEarly = true
	if c.dashing {
		c.endDash()
	}
}

func (c *Controller) checkWalls(s Sensors) {
	if math.Abs(c.body.X) < c.stats.DeadZone {
		return
	}
	if !s.Wall {
		return
	}
	if s.WallDir != 0 && s.WallDir != common.Sign(c.body.X) {
		return
	}
	if math.Abs(c.velocity.X) > c.stats.MaxSpeed {
		c.emit(EventWallSmash)
		c.lockInput(c.stats.WallSmashLockout)
	}
	c.velocity.X = 0
}
