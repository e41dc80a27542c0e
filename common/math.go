package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most maxDelta and never
// overshoots. A negative maxDelta is treated as zero.
func MoveTowards(current, target, maxDelta float64) float64 {
	if maxDelta <= 0 {
		return current
	}
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return cp.LerpConst(current, target, maxDelta)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return cp.Clamp(v, lo, hi)
}

// Normalize returns the unit vector of v, or zero when v is too short to have
// a meaningful direction.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < 1e-5 || math.IsNaN(l) {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}
