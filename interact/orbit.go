// Package interact turns pointer input into camera motion, hover feedback
// and marker selection.
package interact

import (
	"math"

	"travelglobe/gfx"
)

const (
	DefaultDistance    = 5.0
	DefaultMinDistance = 3.0
	DefaultMaxDistance = 8.0

	// Auto-rotate speed 1 is one full turn per minute.
	DefaultAutoRotateSpeed = 0.5

	maxPitch = math.Pi/2 - 0.05
)

// OrbitCamera orbits the origin. It rotates and dollies but never pans; the
// focus point is fixed at the globe center.
type OrbitCamera struct {
	Yaw      float64
	Pitch    float64
	Distance float64

	MinDistance float64
	MaxDistance float64

	AutoRotate      bool
	AutoRotateSpeed float64
}

func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        DefaultDistance,
		MinDistance:     DefaultMinDistance,
		MaxDistance:     DefaultMaxDistance,
		AutoRotate:      true,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
	}
}

func (c *OrbitCamera) clamp() {
	if c.MinDistance > 0 && c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))
	c.Yaw = math.Mod(c.Yaw, 2*math.Pi)
}

func (c *OrbitCamera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.clamp()
}

// Zoom moves the camera toward (negative delta) or away from the globe.
func (c *OrbitCamera) Zoom(delta float64) {
	c.Distance += delta
	c.clamp()
}

// Update advances auto-rotation by dt seconds.
func (c *OrbitCamera) Update(dt float64) {
	if !c.AutoRotate || dt <= 0 {
		return
	}
	c.Yaw += 2 * math.Pi / 60 * c.AutoRotateSpeed * dt
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() gfx.Vec3 {
	d := c.Distance
	if d == 0 {
		d = DefaultDistance
	}
	m := gfx.Mat4Mul(gfx.Mat4RotateY(c.Yaw), gfx.Mat4RotateX(c.Pitch))
	return m.TransformPoint(gfx.V3(0, 0, d))
}

func (c *OrbitCamera) Apply(cam *gfx.Camera) {
	if cam == nil {
		return
	}
	c.clamp()
	cam.Position = c.Position()
	cam.Target = gfx.Vec3{}
	if cam.Up == (gfx.Vec3{}) {
		cam.Up = gfx.V3(0, 1, 0)
	}
}
