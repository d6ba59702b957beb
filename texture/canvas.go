package texture

import (
	"image"
	"image/color"
	"math"

	"travelglobe/gfx"

	"golang.org/x/image/vector"
)

type pt struct{ X, Y float64 }

// canvas paints anti-aliased shapes onto an equirectangular raster.
//
// Every fill wraps horizontally: a shape that crosses the left or right edge
// is painted again one canvas width over, so the result tiles in longitude.
type canvas struct {
	img *image.RGBA
	w   int
	h   int
	z   vector.Rasterizer
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
}

// xy maps longitude/latitude degrees to canvas pixels.
func (c *canvas) xy(lng, lat float64) pt {
	return pt{
		X: (lng + 180) / 360 * float64(c.w),
		Y: (90 - lat) / 180 * float64(c.h),
	}
}

// sx scales a length given in degrees of longitude to pixels.
func (c *canvas) sx(deg float64) float64 { return deg / 360 * float64(c.w) }

// sy scales a length given in degrees of latitude to pixels.
func (c *canvas) sy(deg float64) float64 { return deg / 180 * float64(c.h) }

func (c *canvas) verticalGradient(stops []gradientStop) {
	if len(stops) == 0 {
		return
	}
	for y := 0; y < c.h; y++ {
		t := (float64(y) + 0.5) / float64(c.h)
		col := gradientAt(stops, t)
		row := c.img.Pix[y*c.img.Stride:]
		for x := 0; x < c.w; x++ {
			i := x * 4
			row[i+0] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = 0xFF
		}
	}
}

type gradientStop struct {
	At    float64
	Color gfx.Color
}

func gradientAt(stops []gradientStop, t float64) gfx.Color {
	if t <= stops[0].At {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.At {
			continue
		}
		k := (t - a.At) / (b.At - a.At)
		lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*k + 0.5) }
		return gfx.RGB(lerp(a.Color.R, b.Color.R), lerp(a.Color.G, b.Color.G), lerp(a.Color.B, b.Color.B))
	}
	return stops[len(stops)-1].Color
}

// fillPolygon fills a closed polygon given in pixel coordinates.
func (c *canvas) fillPolygon(poly []pt, col gfx.Color) {
	if len(poly) < 3 {
		return
	}
	minX, maxX := poly[0].X, poly[0].X
	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	c.fillAt(poly, col, 0)
	if minX < 0 {
		c.fillAt(poly, col, float64(c.w))
	}
	if maxX > float64(c.w) {
		c.fillAt(poly, col, -float64(c.w))
	}
}

func (c *canvas) fillAt(poly []pt, col gfx.Color, dx float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX = math.Min(minX, p.X+dx)
		maxX = math.Max(maxX, p.X+dx)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float64(r.Min.X)-dx, float64(r.Min.Y)
	c.z.Reset(r.Dx(), r.Dy())
	c.z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
	for _, p := range poly[1:] {
		c.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	c.z.ClosePath()
	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A})
	c.z.Draw(c.img, r, src, image.Point{})
}

// ellipse returns a polygon approximating an ellipse rotated by rot radians.
func ellipse(cx, cy, rx, ry, rot float64) []pt {
	n := int(math.Max(rx, ry) * 1.5)
	if n < 12 {
		n = 12
	}
	if n > 72 {
		n = 72
	}
	sr, cr := math.Sincos(rot)
	out := make([]pt, n)
	for i := range out {
		s, c := math.Sincos(float64(i) / float64(n) * 2 * math.Pi)
		x, y := c*rx, s*ry
		out[i] = pt{X: cx + x*cr - y*sr, Y: cy + x*sr + y*cr}
	}
	return out
}

func (c *canvas) fillCircle(cx, cy, r float64, col gfx.Color) {
	c.fillPolygon(ellipse(cx, cy, r, r, 0), col)
}

func (c *canvas) fillEllipse(cx, cy, rx, ry, rot float64, col gfx.Color) {
	c.fillPolygon(ellipse(cx, cy, rx, ry, rot), col)
}

func (c *canvas) fillRect(x0, y0, x1, y1 float64, col gfx.Color) {
	c.fillPolygon([]pt{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, col)
}

// strokeQuad strokes the quadratic curve p0→ctrl→p1 with the given width.
func (c *canvas) strokeQuad(p0, ctrl, p1 pt, width float64, col gfx.Color) {
	const steps = 24
	half := width / 2
	left := make([]pt, 0, steps+1)
	right := make([]pt, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		mt := 1 - t
		x := mt*mt*p0.X + 2*mt*t*ctrl.X + t*t*p1.X
		y := mt*mt*p0.Y + 2*mt*t*ctrl.Y + t*t*p1.Y
		// Derivative of the quadratic.
		dx := 2*mt*(ctrl.X-p0.X) + 2*t*(p1.X-ctrl.X)
		dy := 2*mt*(ctrl.Y-p0.Y) + 2*t*(p1.Y-ctrl.Y)
		l := math.Hypot(dx, dy)
		if l == 0 {
			l = 1
		}
		nx, ny := -dy/l*half, dx/l*half
		left = append(left, pt{x + nx, y + ny})
		right = append(right, pt{x - nx, y - ny})
	}
	poly := left
	for i := len(right) - 1; i >= 0; i-- {
		poly = append(poly, right[i])
	}
	c.fillPolygon(poly, col)
}
