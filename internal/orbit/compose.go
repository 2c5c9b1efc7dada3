package orbit

import "github.com/Faultbox/orrery/pkg/math"

// Transform is the world-space placement of a body for one frame.
type Transform struct {
	Center math.Vec3
	Model  math.Mat4
}

// Compose computes the transform of every body at time t (seconds).
// bodies must be in parent-before-child order; the result is indexed like
// bodies.
func Compose(bodies []Body, t float64) ([]Transform, error) {
	if err := ValidateOrder(bodies); err != nil {
		return nil, err
	}
	return composeInto(make([]Transform, len(bodies)), bodies, t), nil
}

// Compose computes the transform of every body at time t, indexed by Handle.
func (s *System) Compose(t float64) []Transform {
	return s.ComposeInto(nil, t)
}

// ComposeInto is like Compose but reuses dst when it has enough capacity.
func (s *System) ComposeInto(dst []Transform, t float64) []Transform {
	if cap(dst) < len(s.bodies) {
		dst = make([]Transform, len(s.bodies))
	}
	return composeInto(dst[:len(s.bodies)], s.bodies, t)
}

// ByName maps each body's name to its transform.
func ByName(bodies []Body, transforms []Transform) map[string]Transform {
	out := make(map[string]Transform, len(bodies))
	for i, b := range bodies {
		out[b.Name] = transforms[i]
	}
	return out
}

// OrbitOffset returns the position of b relative to its parent's center.
func OrbitOffset(b Body, t float64) math.Vec3 {
	arm := math.Vec3{X: float32(b.OrbitRadius)}
	return math.RotateYDeg(b.RevolutionAngle(t)).TransformVec3(arm)
}

// composeInto relies on every parent having been resolved earlier in the pass.
func composeInto(dst []Transform, bodies []Body, t float64) []Transform {
	for i, b := range bodies {
		spin := math.RotateYDeg(b.RotationAngle(t))
		if b.IsRoot() {
			dst[i] = Transform{Model: spin}
			continue
		}
		center := dst[b.Parent].Center.Add(OrbitOffset(b, t))
		dst[i] = Transform{
			Center: center,
			Model:  math.TranslateVec3(center).Mul(spin),
		}
	}
	return dst
}
