package movement

// JumpInput requests a jump. The first jump needs ground (coyote time counts)
// and an elapsed jump buffer; later jumps only need remaining jump count.
func (c *Controller) JumpInput() {
	if c.disabled || !c.canMove {
		return
	}
	if c.jumpCount >= c.maxJumps() {
		return
	}
	if c.jumpCount > 0 {
		c.jump()
		return
	}
	if c.grounded && c.now-c.jumpPressTime >= c.stats.JumpBuffer {
		c.jump()
	}
}

// JumpReleased ends a held jump. Releasing while the impulse is still being
// applied and the actor is rising shortens the arc.
func (c *Controller) JumpReleased() {
	c.jumpReleaseTime = c.now
	if !c.jumpImpulse.Active() {
		return
	}
	c.jumpImpulse.Cancel()
	if c.velocity.Y > 0 && c.jumpReleaseTime-c.jumpPressTime < c.stats.JumpReleaseWindow {
		c.jumpEndEarly = true
	}
}

func (c *Controller) jump() {
	c.emit(EventJumped)
	c.jumpPressTime = c.now
	c.jumpEndEarly = false
	c.jumpImpulse.Start(c.stats.JumpImpulseTime)
	c.jumpCount++
}

func (c *Controller) maxJumps() int {
	return c.stats.MaxJumpCount + c.modifiers.ExtraJumps
}

// applyJumpImpulse holds vertical velocity at jump power for the impulse
// window. It runs after gravity so gravity cannot eat into it.
func (c *Controller) applyJumpImpulse(dt float64) {
	if !c.jumpImpulse.Active() {
		return
	}
	if c.dashLocked {
		c.jumpImpulse.Cancel()
		return
	}
	c.velocity.Y = c.stats.JumpPower * c.modifiers.JumpForceMult
	c.jumpImpulse.Advance(dt)
}
