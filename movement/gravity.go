package movement

import "github.com/milk9111/platformer/common"

func (c *Controller) gravity(dt float64) {
	if c.dashLocked {
		return
	}

	// the gravity modifier only scales falling, never the ascent
	gravityMult := 1.0
	if c.velocity.Y <= 0 {
		gravityMult = c.modifiers.GravityMult
	}

	if c.grounded && !c.inCoyoteTime {
		c.velocity.Y = -c.stats.GroundingAcceleration * gravityMult
		return
	}

	accel := c.stats.FallAcceleration * gravityMult * dt
	target := -c.stats.MaxFallSpeed
	if c.velocity.Y > -c.stats.MaxFallSpeed {
		c.fallTime = c.now
	} else if c.now-c.fallTime >= c.stats.HardFallTimeBuffer {
		target = -c.stats.HardFallSpeed
	}
	if c.jumpEndEarly {
		accel *= c.stats.JumpEndEarlyMultiplier
	}
	c.velocity.Y = common.MoveTowards(c.velocity.Y, target, accel)
}
