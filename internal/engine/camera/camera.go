// Package camera provides the orbiting viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// OrbitCamera orbits around a target point on a sphere described by
// distance, pitch and yaw, and owns the perspective projection.
type OrbitCamera struct {
	Target math.Vec3

	Distance float32
	Pitch    float32 // elevation above the XZ plane, radians
	Yaw      float32 // around Y, radians; 0 looks down -Z

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewOrbitCamera creates a camera at position looking at target.
func NewOrbitCamera(position, target math.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		Target:          target,
		MinDistance:     1,
		MaxDistance:     60,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             45,
		Aspect:          1,
		Near:            0.1,
		Far:             80.1,
	}

	offset := position.Sub(target)
	c.Distance = offset.Length()
	if c.Distance > 0 {
		c.Pitch = float32(gomath.Asin(float64(offset.Y / c.Distance)))
		c.Yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	}
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(float64(c.Pitch))
	x := c.Distance * float32(cp*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(cp*gomath.Cos(float64(c.Yaw)))

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(float32(math.Radians(float64(c.FOV))), c.Aspect, c.Near, c.Far)
}

// SetViewport updates the aspect ratio. A zero height is ignored, which
// happens while the window is minimized.
func (c *OrbitCamera) SetViewport(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// HandleDrag updates yaw and pitch from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance from scroll wheel steps.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
