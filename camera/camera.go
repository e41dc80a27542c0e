// Package camera follows a target with a clamped lerp and plays directional
// screen shakes. One Camera is owned by whoever renders; there is no global
// instance.
package camera

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

var ErrInvalidConfig = errors.New("camera: invalid config")

// Shake is one shake's strength and length in seconds.
type Shake struct {
	Magnitude float64 `yaml:"magnitude"`
	Duration  float64 `yaml:"duration"`
}

// Bounds limits where the camera center may go.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

type Config struct {
	LerpSpeed float64 `yaml:"lerp_speed"`
	// Clamp is optional; nil follows the target anywhere.
	Clamp *Bounds `yaml:"clamp"`
	Shake Shake   `yaml:"shake"`
	Seed  int64   `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		LerpSpeed: 5,
		Shake:     Shake{Magnitude: 0.3, Duration: 0.2},
		Seed:      1,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.LerpSpeed) || c.LerpSpeed < 0 {
		return fmt.Errorf("%w: lerp_speed must be >= 0, got %v", ErrInvalidConfig, c.LerpSpeed)
	}
	if c.Shake.Magnitude < 0 || c.Shake.Duration < 0 {
		return fmt.Errorf("%w: shake magnitude and duration must be >= 0", ErrInvalidConfig)
	}
	if b := c.Clamp; b != nil && (b.MinX > b.MaxX || b.MinY > b.MaxY) {
		return fmt.Errorf("%w: clamp min must not exceed max", ErrInvalidConfig)
	}
	return nil
}

type Camera struct {
	cfg      Config
	position cp.Vector
	offset   cp.Vector
	rng      *rand.Rand

	shaking   bool
	shake     Shake
	direction cp.Vector
	elapsed   float64
}

// New places the camera on start.
func New(cfg Config, start cp.Vector) (*Camera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Camera{
		cfg:      cfg,
		position: start,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Follow eases toward target, clamped to the configured bounds. It does
// nothing while a shake is playing.
func (c *Camera) Follow(target cp.Vector, dt float64) {
	if c.shaking {
		return
	}
	desired := target
	if b := c.cfg.Clamp; b != nil {
		desired.X = common.Clamp(desired.X, b.MinX, b.MaxX)
		desired.Y = common.Clamp(desired.Y, b.MinY, b.MaxY)
	}
	t := common.Clamp(dt*c.cfg.LerpSpeed, 0, 1)
	c.position = cp.Vector{
		X: common.Lerp(c.position.X, desired.X, t),
		Y: common.Lerp(c.position.Y, desired.Y, t),
	}
}

// Shake plays the default shake in every direction.
func (c *Camera) Shake() {
	c.ShakeDirectional(cp.Vector{X: 1, Y: 1}, c.cfg.Shake)
}

// ShakeDirectional starts a shake biased along dir. A running shake is
// replaced.
func (c *Camera) ShakeDirectional(dir cp.Vector, s Shake) {
	// jittered once per request and once per start
	dir = dir.Add(c.insideUnitCircle().Mult(0.1))
	dir = dir.Add(c.insideUnitCircle().Mult(0.1))
	c.shaking = true
	c.shake = s
	c.direction = dir
	c.elapsed = 0
}

// DefaultShake is the configured shake.
func (c *Camera) DefaultShake() Shake {
	return c.cfg.Shake
}

// Update advances the running shake by dt.
func (c *Camera) Update(dt float64) {
	if !c.shaking {
		return
	}
	if c.elapsed < c.shake.Duration {
		r := c.insideUnitCircle()
		c.offset = cp.Vector{
			X: c.shake.Magnitude * c.direction.X * r.X,
			Y: c.shake.Magnitude * c.direction.Y * r.Y,
		}
		c.elapsed += dt
		return
	}
	c.shaking = false
	c.offset = cp.Vector{}
}

// Position is the followed point without shake.
func (c *Camera) Position() cp.Vector { return c.position }

// Offset is the current shake displacement.
func (c *Camera) Offset() cp.Vector { return c.offset }

// View is where the camera looks this tick.
func (c *Camera) View() cp.Vector { return c.position.Add(c.offset) }

func (c *Camera) Shaking() bool { return c.shaking }

func (c *Camera) Config() Config { return c.cfg }

func (c *Camera) insideUnitCircle() cp.Vector {
	angle := c.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(c.rng.Float64())
	return cp.Vector{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}
