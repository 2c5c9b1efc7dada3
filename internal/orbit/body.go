// Package orbit holds the body hierarchy and composes its per-frame
// world transforms.
package orbit

import (
	"errors"
	"fmt"
	gomath "math"
)

// ErrInvalidConfiguration is returned for a malformed body tree or a body
// sequence that is not in parent-before-child order.
var ErrInvalidConfiguration = errors.New("invalid body configuration")

// Handle identifies a body by its position in a System.
type Handle int

// NoParent marks the root body.
const NoParent Handle = -1

// Body describes one orbiting object. Periods are in seconds; a zero
// period disables the corresponding motion.
type Body struct {
	Name string

	// OrbitRadius is the distance to the parent's center, in the
	// horizontal plane. Ignored for the root.
	OrbitRadius float64

	// RevolutionPeriod is the time for one orbit around the parent.
	RevolutionPeriod float64

	// RotationPeriod is the time for one spin about the local Y axis.
	RotationPeriod float64

	Parent Handle
}

// IsRoot reports whether b has no parent.
func (b Body) IsRoot() bool {
	return b.Parent == NoParent
}

// Angle returns the angle in degrees swept after t seconds by a motion with
// the given period. The result is not reduced modulo 360.
func Angle(period, t float64) float64 {
	if period == 0 {
		return 0
	}
	return 360 * t / period
}

// RevolutionAngle returns the orbital angle in degrees at time t.
func (b Body) RevolutionAngle(t float64) float64 {
	return Angle(b.RevolutionPeriod, t)
}

// RotationAngle returns the self-rotation angle in degrees at time t.
func (b Body) RotationAngle(t float64) float64 {
	return Angle(b.RotationPeriod, t)
}

func (b Body) validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: body has no name", ErrInvalidConfiguration)
	}
	if !finite(b.OrbitRadius) || b.OrbitRadius < 0 {
		return fmt.Errorf("%w: body %q: orbit radius %v must be finite and >= 0",
			ErrInvalidConfiguration, b.Name, b.OrbitRadius)
	}
	if !finite(b.RevolutionPeriod) {
		return fmt.Errorf("%w: body %q: revolution period %v is not finite",
			ErrInvalidConfiguration, b.Name, b.RevolutionPeriod)
	}
	if !finite(b.RotationPeriod) {
		return fmt.Errorf("%w: body %q: rotation period %v is not finite",
			ErrInvalidConfiguration, b.Name, b.RotationPeriod)
	}
	return nil
}

func finite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
