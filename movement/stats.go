package movement

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidStats = errors.New("movement: invalid stats")

// Stats is the immutable tuning for one actor type. A single Stats value may
// be shared by any number of controllers.
type Stats struct {
	DeadZone             float64 `yaml:"dead_zone"`
	MaxSpeed             float64 `yaml:"max_speed"`
	Acceleration         float64 `yaml:"acceleration"`
	GroundDeceleration   float64 `yaml:"ground_deceleration"`
	AirDeceleration      float64 `yaml:"air_deceleration"`
	QuickTurnAroundSpeed float64 `yaml:"quick_turn_around_speed"`

	JumpPower         float64 `yaml:"jump_power"`
	JumpBuffer        float64 `yaml:"jump_buffer"`
	CoyoteTime        float64 `yaml:"coyote_time"`
	MaxJumpCount      int     `yaml:"max_jump_count"`
	JumpImpulseTime   float64 `yaml:"jump_impulse_time"`
	JumpReleaseWindow float64 `yaml:"jump_release_window"`

	DashEnabled    bool    `yaml:"dash_enabled"`
	DashVelocity   float64 `yaml:"dash_velocity"`
	DashBuffer     float64 `yaml:"dash_buffer"`
	DashTicks      int     `yaml:"dash_ticks"`
	DashInputTicks int     `yaml:"dash_input_ticks"`

	GroundingAcceleration  float64 `yaml:"grounding_acceleration"`
	FallAcceleration       float64 `yaml:"fall_acceleration"`
	MaxFallSpeed           float64 `yaml:"max_fall_speed"`
	HardFallSpeed          float64 `yaml:"hard_fall_speed"`
	HardFallTimeBuffer     float64 `yaml:"hard_fall_time_buffer"`
	JumpEndEarlyMultiplier float64 `yaml:"jump_end_early_multiplier"`

	// Seconds of input lockout after landing a hard fall or smashing into a
	// wall. Zero disables the lockout.
	HardFallLockout  float64 `yaml:"hard_fall_lockout"`
	WallSmashLockout float64 `yaml:"wall_smash_lockout"`

	GroundCheckRayOffset float64 `yaml:"ground_check_ray_offset"`
	CollisionMask        uint    `yaml:"collision_mask"`
}

// DefaultStats returns the stock player tuning.
func DefaultStats() Stats {
	return Stats{
		DeadZone:             0.1,
		MaxSpeed:             8,
		Acceleration:         60,
		GroundDeceleration:   70,
		AirDeceleration:      30,
		QuickTurnAroundSpeed: 4,

		JumpPower:         15,
		JumpBuffer:        0.2,
		CoyoteTime:        0.12,
		MaxJumpCount:      2,
		JumpImpulseTime:   0.1,
		JumpReleaseWindow: 1.0,

		DashEnabled:    true,
		DashVelocity:   20,
		DashBuffer:     0.5,
		DashTicks:      5,
		DashInputTicks: 3,

		GroundingAcceleration:  1.5,
		FallAcceleration:       60,
		MaxFallSpeed:           25,
		HardFallSpeed:          40,
		HardFallTimeBuffer:     0.6,
		JumpEndEarlyMultiplier: 3,

		HardFallLockout:  0.3,
		WallSmashLockout: 0.25,

		GroundCheckRayOffset: 0.05,
		CollisionMask:        1,
	}
}

// Validate is the load-time precondition for a controller. Tick code assumes
// a Stats value that passed it.
func (s Stats) Validate() error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"dead_zone", s.DeadZone},
		{"max_speed", s.MaxSpeed},
		{"acceleration", s.Acceleration},
		{"ground_deceleration", s.GroundDeceleration},
		{"air_deceleration", s.AirDeceleration},
		{"quick_turn_around_speed", s.QuickTurnAroundSpeed},
		{"jump_power", s.JumpPower},
		{"jump_buffer", s.JumpBuffer},
		{"coyote_time", s.CoyoteTime},
		{"jump_impulse_time", s.JumpImpulseTime},
		{"jump_release_window", s.JumpReleaseWindow},
		{"dash_velocity", s.DashVelocity},
		{"dash_buffer", s.DashBuffer},
		{"grounding_acceleration", s.GroundingAcceleration},
		{"fall_acceleration", s.FallAcceleration},
		{"max_fall_speed", s.MaxFallSpeed},
		{"hard_fall_speed", s.HardFallSpeed},
		{"hard_fall_time_buffer", s.HardFallTimeBuffer},
		{"jump_end_early_multiplier", s.JumpEndEarlyMultiplier},
		{"hard_fall_lockout", s.HardFallLockout},
		{"wall_smash_lockout", s.WallSmashLockout},
		{"ground_check_ray_offset", s.GroundCheckRayOffset},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidStats, f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidStats, f.name, f.v)
		}
	}
	if s.MaxJumpCount < 0 {
		return fmt.Errorf("%w: max_jump_count must be >= 0, got %d", ErrInvalidStats, s.MaxJumpCount)
	}
	if s.JumpEndEarlyMultiplier < 1 {
		return fmt.Errorf("%w: jump_end_early_multiplier must be >= 1, got %v", ErrInvalidStats, s.JumpEndEarlyMultiplier)
	}
	if s.HardFallSpeed < s.MaxFallSpeed {
		return fmt.Errorf("%w: hard_fall_speed (%v) must be >= max_fall_speed (%v)", ErrInvalidStats, s.HardFallSpeed, s.MaxFallSpeed)
	}
	if s.DashEnabled {
		if s.DashTicks <= 0 {
			return fmt.Errorf("%w: dash_ticks must be > 0 when dashing is enabled", ErrInvalidStats)
		}
		if s.DashInputTicks <= 0 {
			return fmt.Errorf("%w: dash_input_ticks must be > 0 when dashing is enabled", ErrInvalidStats)
		}
		if s.DashVelocity <= 0 {
			return fmt.Errorf("%w: dash_velocity must be > 0 when dashing is enabled", ErrInvalidStats)
		}
	}
	return nil
}
