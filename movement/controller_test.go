package movement

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

var (
	onGround = Sensors{Grounded: true}
	inAir    = Sensors{}
)

func newController(t *testing.T, tune func(*Stats)) *Controller {
	t.Helper()
	stats := DefaultStats()
	if tune != nil {
		tune(&stats)
	}
	c, err := New(stats)
	require.NoError(t, err)
	return c
}

// step ticks once with the body moving at the controller's last output, the
// way an ideal integrator would.
func step(c *Controller, s Sensors) cp.Vector {
	s.BodyVelocity = c.Velocity()
	return c.Tick(s, dt)
}

func stepN(c *Controller, s Sensors, n int) cp.Vector {
	var v cp.Vector
	for i := 0; i < n; i++ {
		v = step(c, s)
	}
	return v
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func count(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// leaveGround walks the controller off a ledge and waits out coyote time.
func leaveGround(c *Controller) {
	stepN(c, inAir, int(math.Ceil(c.stats.CoyoteTime/dt))+2)
}

func TestNewRejectsInvalidStats(t *testing.T) {
	cases := []struct {
		name string
		tune func(*Stats)
	}{
		{"negative_acceleration", func(s *Stats) { s.Acceleration = -1 }},
		{"negative_max_speed", func(s *Stats) { s.MaxSpeed = -0.5 }},
		{"nan_fall_acceleration", func(s *Stats) { s.FallAcceleration = math.NaN() }},
		{"infinite_jump_power", func(s *Stats) { s.JumpPower = math.Inf(1) }},
		{"zero_dash_ticks", func(s *Stats) { s.DashTicks = 0 }},
		{"zero_dash_input_ticks", func(s *Stats) { s.DashInputTicks = 0 }},
		{"zero_dash_velocity", func(s *Stats) { s.DashVelocity = 0 }},
		{"hard_fall_below_max_fall", func(s *Stats) { s.HardFallSpeed = s.MaxFallSpeed - 1 }},
		{"end_early_multiplier_below_one", func(s *Stats) { s.JumpEndEarlyMultiplier = 0.5 }},
		{"negative_jump_count", func(s *Stats) { s.MaxJumpCount = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := DefaultStats()
			tc.tune(&stats)
			c, err := New(stats)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrInvalidStats), "got %v", err)
		})
	}

	t.Run("dash_disabled_ignores_dash_fields", func(t *testing.T) {
		stats := DefaultStats()
		stats.DashEnabled = false
		stats.DashTicks = 0
		stats.DashVelocity = 0
		_, err := New(stats)
		assert.NoError(t, err)
	})
}

func TestSpawnState(t *testing.T) {
	c := newController(t, nil)

	assert.True(t, c.Grounded())
	assert.False(t, c.InCoyoteTime())
	assert.Equal(t, 0, c.JumpCount())
	assert.True(t, c.CanDash())
	assert.True(t, c.CanMove())
	assert.False(t, c.Dashing())
	assert.Equal(t, IdentityModifiers(), c.Modifiers())
	assert.Equal(t, NoOwner, c.ModifierOwner())
	assert.Zero(t, c.Events().Len())
}

func TestSetStatsKeepsCurrentOnInvalid(t *testing.T) {
	c := newController(t, nil)

	bad := DefaultStats()
	bad.MaxSpeed = -3
	err := c.SetStats(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStats)
	assert.Equal(t, DefaultStats().MaxSpeed, c.Stats().MaxSpeed)

	good := DefaultStats()
	good.MaxSpeed = 12
	require.NoError(t, c.SetStats(good))
	assert.Equal(t, 12.0, c.Stats().MaxSpeed)
}

func TestTickIgnoresNonPositiveStep(t *testing.T) {
	c := newController(t, nil)
	c.SetInputDirection(cp.Vector{X: 1})

	v := c.Tick(onGround, 0)
	assert.Equal(t, cp.Vector{}, v)
	assert.Zero(t, c.Now())
}

func TestGroundedEventsFireOncePerTransition(t *testing.T) {
	c := newController(t, nil)

	stepN(c, onGround, 10)
	assert.Empty(t, c.Events().Drain(), "standing still emits nothing")

	stepN(c, inAir, 40)
	events := c.Events().Drain()
	require.Equal(t, []Event{{Kind: EventGrounded, Grounded: false}}, events)

	stepN(c, onGround, 40)
	events = c.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, Event{Kind: EventGrounded, Grounded: true}, events[0])
}

func TestDisableCancelsPendingTimers(t *testing.T) {
	c := newController(t, nil)

	c.JumpInput()
	step(c, onGround)
	step(c, inAir)
	require.True(t, c.InCoyoteTime())
	require.True(t, c.jumpImpulse.Active())

	c.Disable()
	assert.False(t, c.jumpImpulse.Active())
	assert.False(t, c.coyote.Active())
	assert.False(t, c.InCoyoteTime())
	assert.False(t, c.Grounded())

	frozen := c.Velocity()
	assert.Equal(t, frozen, step(c, inAir), "disabled controller does not move")
	c.JumpInput()
	assert.Equal(t, 1, c.JumpCount(), "commands are ignored while disabled")

	c.Enable()
	v := step(c, inAir)
	assert.Less(t, v.Y, frozen.Y, "cancelled impulse window never re-asserts jump power")
}

func TestResetRestoresSpawnState(t *testing.T) {
	c := newController(t, nil)
	c.ApplyModifiers(7, Modifiers{SpeedMult: 2, AccelerationMult: 1, DecelerationMult: 1, GravityMult: 1, JumpForceMult: 1})
	c.JumpInput()
	stepN(c, inAir, 20)

	c.Reset()

	assert.True(t, c.Grounded())
	assert.Equal(t, 0, c.JumpCount())
	assert.Equal(t, cp.Vector{}, c.Velocity())
	assert.Equal(t, IdentityModifiers(), c.Modifiers())
	assert.Zero(t, c.Now())
	assert.Zero(t, c.Events().Len())
}

func TestStateSnapshot(t *testing.T) {
	c := newController(t, nil)
	c.SetInputDirection(cp.Vector{X: 1})
	step(c, onGround)

	s := c.State()
	assert.Equal(t, c.Velocity(), s.Velocity)
	assert.Equal(t, cp.Vector{X: 1}, s.Input)
	assert.True(t, s.Grounded)
	assert.InDelta(t, dt, s.Now, 1e-12)
	assert.Equal(t, kinds(nil), kinds(c.Events().Drain()))
}
