package movement

// Modifiers is a transient overlay on Stats applied by a gameplay effect.
// A new set replaces the previous one wholesale; sets never stack.
type Modifiers struct {
	SpeedMult        float64 `yaml:"speed_mult"`
	AccelerationMult float64 `yaml:"acceleration_mult"`
	DecelerationMult float64 `yaml:"deceleration_mult"`
	GravityMult      float64 `yaml:"gravity_mult"`
	JumpForceMult    float64 `yaml:"jump_force_mult"`
	ExtraJumps       int     `yaml:"extra_jumps"`
}

// IdentityModifiers leaves every stat untouched.
func IdentityModifiers() Modifiers {
	return Modifiers{
		SpeedMult:        1,
		AccelerationMult: 1,
		DecelerationMult: 1,
		GravityMult:      1,
		JumpForceMult:    1,
	}
}

// NoOwner is the owner id of the identity set.
const NoOwner = 0

// ApplyModifiers replaces the current modifier set and makes ownerID its
// owner. Last writer wins.
func (c *Controller) ApplyModifiers(ownerID int, m Modifiers) {
	c.modifiers = m
	c.modifierOwner = ownerID
}

// ClearModifiers restores the identity set, but only for the id that applied
// the current one. A stale owner is ignored and false is returned.
func (c *Controller) ClearModifiers(ownerID int) bool {
	if ownerID != c.modifierOwner {
		return false
	}
	c.modifiers = IdentityModifiers()
	c.modifierOwner = NoOwner
	return true
}

func (c *Controller) Modifiers() Modifiers {
	return c.modifiers
}

func (c *Controller) ModifierOwner() int {
	return c.modifierOwner
}
