package gfx

// ScreenPoint is a projected position in pixels plus NDC depth.
type ScreenPoint struct {
	X, Y  float64
	Depth float64
}

// ProjectToScreen maps a world position to pixel coordinates for a w×h target.
//
// ok is false when the point is behind the camera or outside the depth range.
func ProjectToScreen(cam Camera, w, h int, p Vec3) (ScreenPoint, bool) {
	if w <= 0 || h <= 0 {
		return ScreenPoint{}, false
	}
	vp := Mat4Mul(cam.Projection(float64(w)/float64(h)), cam.View())
	c := Mat4MulV4(vp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if c.W <= 1e-6 {
		return ScreenPoint{}, false
	}
	z := c.Z / c.W
	if z < -1 || z > 1 {
		return ScreenPoint{}, false
	}
	x, y := ndcToScreen(c.X/c.W, c.Y/c.W, w, h)
	return ScreenPoint{X: x, Y: y, Depth: z}, true
}

// PixelsPerUnit estimates the on-screen size of one world unit at p.
func PixelsPerUnit(cam Camera, h int, p Vec3) float64 {
	d := Len(p.Sub(cam.Position))
	if d <= 0 || h <= 0 {
		return 0
	}
	fov := cam.FOVYRad
	if fov == 0 {
		fov = 1.0
	}
	// Half-height of the view frustum at distance d is d*tan(fov/2).
	return float64(h) / (2 * d * tanHalf(fov))
}
