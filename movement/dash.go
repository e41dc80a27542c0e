package movement

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// DashInput reports the dash button as held for the coming tick. A dash
// starts once the press has been seen on DashInputTicks consecutive ticks.
func (c *Controller) DashInput() {
	if c.disabled || !c.canMove || !c.stats.DashEnabled {
		return
	}
	c.dashPressed = true
}

func (c *Controller) handleDash() {
	pressed := c.dashPressed
	c.dashPressed = false
	c.dashLocked = false

	if pressed && !c.dashing && c.canDash && c.now-c.dashedTime >= c.stats.DashBuffer {
		c.dashInputTicks++
		if c.dashInputTicks >= c.stats.DashInputTicks {
			c.dashInputTicks = 0
			if dir := common.Normalize(c.input); dir != (cp.Vector{}) {
				c.startDash(dir)
			}
		}
	} else {
		c.dashInputTicks = 0
	}

	if !c.dashing {
		return
	}
	// the tick that ends the dash is still a dash tick
	c.velocity = c.dashVelocity
	c.dashLocked = true
	c.dashTicks++
	if c.dashTicks >= c.stats.DashTicks {
		c.endDash()
	}
}

func (c *Controller) startDash(dir cp.Vector) {
	c.dashVelocity = dir.Mult(c.stats.DashVelocity)
	c.dashing = true
	c.canDash = false
	c.dashTicks = 0
	c.dashedTime = c.now
	c.jumpEndEarly = false
	c.jumpImpulse.Cancel()
	c.velocity = cp.Vector{}
	c.emit(EventDashed)
}

// endDash stops a dash. Only a grounded actor gets the dash back; an airborne
// one waits for the next landing.
func (c *Controller) endDash() {
	c.dashing = false
	c.dashTicks = 0
	if c.grounded {
		c.canDash = true
	}
}
