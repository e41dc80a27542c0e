package movement

import (
	"math"

	"github.com/milk9111/platformer/common"
)

func (c *Controller) horizontalVelocity(dt float64) {
	if c.dashing {
		return
	}

	axis := c.input.X
	decel := c.stats.AirDeceleration
	if c.grounded {
		decel = c.stats.GroundDeceleration
	}
	targetMaxSpeed := c.stats.MaxSpeed * c.modifiers.SpeedMult

	// overspeed is measured against the unmodified cap
	if !c.canMove || math.Abs(axis) < c.stats.DeadZone || math.Abs(c.body.X) > c.stats.MaxSpeed {
		c.velocity.X = common.MoveTowards(c.velocity.X, 0, decel*c.modifiers.DecelerationMult*dt)
		return
	}

	accel := c.stats.Acceleration * c.modifiers.AccelerationMult
	if c.velocity.X*axis < 0 && math.Abs(c.velocity.X) <= c.stats.QuickTurnAroundSpeed {
		// reversing at low speed: brake and accelerate together
		rate := accel + decel*c.modifiers.DecelerationMult
		c.velocity.X = common.MoveTowards(c.velocity.X, c.stats.MaxSpeed*axis, rate*dt)
		return
	}
	c.velocity.X = common.MoveTowards(c.velocity.X, targetMaxSpeed*axis, accel*dt)
}
