package scene

import (
	"math"

	"travelglobe/gfx"
)

// Angular rates in radians per second.
const (
	GlobeRate      = 0.12
	AtmosphereRate = 0.06
	CloudRate      = 0.09
	StarRate       = 0.006
	MarkerSpinRate = 0.6
)

// Marker pulse parameters.
const (
	PulseFrequency = 3.0 // rad/s
	PulseAmplitude = 0.2
	BaseScale      = 1.2
	SelectedScale  = 1.8
	GlowFactor     = 1.5
)

// Pulse is the unscaled pulsation factor at t seconds.
func Pulse(t float64) float64 {
	return 1 + math.Sin(t*PulseFrequency)*PulseAmplitude
}

// MarkerScale returns the body and glow scale of a marker at t seconds.
func MarkerScale(t float64, selected bool) (body, glow float64) {
	base := BaseScale
	if selected {
		base = SelectedScale
	}
	body = Pulse(t) * base
	return body, body * GlowFactor
}

// Spin returns the rotation angle at t seconds for the given rate, reduced
// to [0, 2π).
func Spin(t, rate float64) float64 {
	return math.Mod(t*rate, 2*math.Pi)
}

// Animate returns a copy of root with the time-dependent transforms for
// clock applied. root must come from Composer.Build; animating an already
// animated tree compounds the motion.
func Animate(root Node, clock Clock) Node {
	return animate(root, clock.Seconds())
}

func animate(n Node, t float64) Node {
	var dyn gfx.Mat4
	switch n.Kind {
	case KindGlobe:
		dyn = gfx.Mat4RotateY(Spin(t, GlobeRate))
	case KindAtmosphere:
		dyn = gfx.Mat4RotateY(Spin(t, AtmosphereRate))
	case KindClouds:
		dyn = gfx.Mat4RotateY(Spin(t, CloudRate))
	case KindStars:
		a := Spin(t, StarRate)
		dyn = gfx.Mat4Mul(gfx.Mat4RotateX(a), gfx.Mat4RotateY(a))
	case KindMarkerBody:
		s, _ := MarkerScale(t, n.Selected)
		dyn = gfx.Mat4Mul(gfx.Mat4UniformScale(s), gfx.Mat4RotateY(Spin(t, MarkerSpinRate)))
	case KindGlow:
		_, g := MarkerScale(t, n.Selected)
		dyn = gfx.Mat4UniformScale(g)
	}
	if dyn != (gfx.Mat4{}) {
		n.Transform = gfx.Mat4Mul(n.local(), dyn)
	}
	if len(n.Children) > 0 {
		kids := make([]Node, len(n.Children))
		for i, c := range n.Children {
			kids[i] = animate(c, t)
		}
		n.Children = kids
	}
	return n
}
