package gfx

import (
	"math"
	"sort"
)

// Stats counts the work done by the last Render call.
type Stats struct {
	Triangles int
	Culled    int
	Points    int
	Segments  int
}

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it; the depth buffer is kept between frames.
type Renderer struct {
	Mode       RenderMode
	ClearColor Color

	depthBuf []float64
	w, h     int
	stats    Stats

	scratch []projVertex
}

type projVertex struct {
	clip   Vec4
	world  Vec3
	normal Vec3
	lit    Vec3
	sx, sy float64
	z      float64
	ok     bool
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		Mode:       RenderSolid,
		ClearColor: RGB(0, 0, 0),
	}
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats {
	if r == nil {
		return Stats{}
	}
	return r.stats
}

func (r *Renderer) ensureDepth(w, h int) {
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float64, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
	r.w, r.h = w, h
	for i := range r.depthBuf {
		r.depthBuf[i] = math.Inf(1)
	}
}

// Render renders a frame into the target.
func (r *Renderer) Render(t Target, f *Frame) {
	if r == nil || t == nil || f == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.stats = Stats{}
	t.Clear(r.ClearColor)
	r.ensureDepth(w, h)

	aspect := float64(w) / float64(h)
	view := f.Camera.View()
	proj := f.Camera.Projection(aspect)
	vp := Mat4Mul(proj, view)

	for i := range f.Background {
		r.renderPoints(t, vp, f.Background[i])
	}

	var opaque, translucent []DrawItem
	for _, it := range f.Items {
		if it.Mesh == nil {
			continue
		}
		if it.Material.translucent() {
			translucent = append(translucent, it)
		} else {
			opaque = append(opaque, it)
		}
	}
	for _, it := range opaque {
		r.renderItem(t, vp, f.Camera.Position, f.Light, it, true)
	}
	for i := range f.Lines {
		r.renderLine(t, vp, f.Lines[i])
	}

	// Back to front by item origin.
	sort.SliceStable(translucent, func(i, j int) bool {
		return depthOf(view, translucent[i].Transform) < depthOf(view, translucent[j].Transform)
	})
	for _, it := range translucent {
		r.renderItem(t, vp, f.Camera.Position, f.Light, it, false)
	}
}

func depthOf(view, model Mat4) float64 {
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	// View space looks down -Z; more negative is farther.
	return Mat4Mul(view, model).TransformPoint(Vec3{}).Z
}

func (r *Renderer) renderPoints(t Target, vp Mat4, ps PointSet) {
	model := ps.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	mvp := Mat4Mul(vp, model)
	size := ps.Size
	if size <= 0 {
		size = 1
	}
	for _, p := range ps.Points {
		c := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
		if c.W <= 1e-6 {
			continue
		}
		nx, ny, nz := c.X/c.W, c.Y/c.W, c.Z/c.W
		if nz < -1 || nz > 1 {
			continue
		}
		sx, sy := ndcToScreen(nx, ny, r.w, r.h)
		x0, y0 := int(sx), int(sy)
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				t.BlendPixel(x0+dx, y0+dy, ps.Color)
			}
		}
		r.stats.Points++
	}
}

func (r *Renderer) renderItem(t Target, vp Mat4, camPos Vec3, light Light, it DrawItem, depthWrite bool) {
	m := it.Mesh
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	model := it.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	mvp := Mat4Mul(vp, model)
	mat := it.Material

	if cap(r.scratch) < len(m.Vertices) {
		r.scratch = make([]projVertex, len(m.Vertices))
	}
	pv := r.scratch[:len(m.Vertices)]
	for i, v := range m.Vertices {
		c := Mat4MulV4(mvp, Vec4{X: v.Pos.X, Y: v.Pos.Y, Z: v.Pos.Z, W: 1})
		p := projVertex{
			clip:   c,
			world:  model.TransformPoint(v.Pos),
			normal: Normalize(model.TransformDir(v.Normal)),
		}
		if c.W > 1e-6 {
			nx, ny := c.X/c.W, c.Y/c.W
			p.sx, p.sy = ndcToScreen(nx, ny, r.w, r.h)
			p.z = c.Z / c.W
			p.ok = true
		}
		if !mat.Emissive {
			p.lit = lightAt(light, p.normal)
		}
		pv[i] = p
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if i0 >= len(pv) || i1 >= len(pv) || i2 >= len(pv) {
			continue
		}
		a, b, c := &pv[i0], &pv[i1], &pv[i2]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		if culled(mat.Cull, a, b, c, camPos) {
			r.stats.Culled++
			continue
		}
		r.stats.Triangles++

		if r.Mode == RenderWireframe {
			col := mat.BaseColor
			r.drawLine(t, a.sx, a.sy, a.z, b.sx, b.sy, b.z, col, 1)
			r.drawLine(t, b.sx, b.sy, b.z, c.sx, c.sy, c.z, col, 1)
			r.drawLine(t, c.sx, c.sy, c.z, a.sx, a.sy, a.z, col, 1)
			continue
		}
		r.fillTriangle(t, a, b, c, &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2], mat, depthWrite)
	}
}

func culled(mode CullMode, a, b, c *projVertex, camPos Vec3) bool {
	if mode == CullNone {
		return false
	}
	n := a.normal.Add(b.normal).Add(c.normal)
	centroid := a.world.Add(b.world).Add(c.world).Mul(1.0 / 3)
	d := Dot(n, camPos.Sub(centroid))
	if mode == CullFront {
		return d >= 0
	}
	return d <= 0
}

func lightAt(l Light, n Vec3) Vec3 {
	amb := Clamp01(l.Ambient)
	out := V3(amb, amb, amb)
	for _, d := range l.Dirs {
		ld := Normalize(d.Dir)
		if ld == (Vec3{}) {
			continue
		}
		k := Dot(n, ld.Mul(-1))
		if k <= 0 {
			continue
		}
		k *= Clamp01(d.Amount)
		tint := d.Tint
		if tint == (Color{}) {
			tint = RGB(0xFF, 0xFF, 0xFF)
		}
		out = out.Add(V3(k*float64(tint.R)/255, k*float64(tint.G)/255, k*float64(tint.B)/255))
	}
	return V3(Clamp01(out.X), Clamp01(out.Y), Clamp01(out.Z))
}

func ndcToScreen(x, y float64, w, h int) (float64, float64) {
	return (x*0.5 + 0.5) * float64(w), (1 - (y*0.5 + 0.5)) * float64(h)
}

func edgeFn(ax, ay, bx, by, px, py float64) float64 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

func (r *Renderer) depthTest(x, y int, z float64, write bool) bool {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return false
	}
	if z < -1 || z > 1 {
		return false
	}
	idx := y*r.w + x
	if z >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = z
	}
	return true
}

func (r *Renderer) fillTriangle(t Target, a, b, c *projVertex, va, vb, vc *Vertex, mat Material, depthWrite bool) {
	minX := int(math.Floor(math.Min(a.sx, math.Min(b.sx, c.sx))))
	maxX := int(math.Ceil(math.Max(a.sx, math.Max(b.sx, c.sx))))
	minY := int(math.Floor(math.Min(a.sy, math.Min(b.sy, c.sy))))
	maxY := int(math.Ceil(math.Max(a.sy, math.Max(b.sy, c.sy))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= r.w {
		maxX = r.w - 1
	}
	if maxY >= r.h {
		maxY = r.h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(a.sx, a.sy, b.sx, b.sy, c.sx, c.sy)
	if math.Abs(area) < 1e-9 {
		return
	}
	inv := 1 / area
	opacity := mat.opacity()

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edgeFn(b.sx, b.sy, c.sx, c.sy, px, py) * inv
			w1 := edgeFn(c.sx, c.sy, a.sx, a.sy, px, py) * inv
			w2 := edgeFn(a.sx, a.sy, b.sx, b.sy, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if !r.depthTest(x, y, z, depthWrite) {
				continue
			}

			col := mat.BaseColor
			if mat.Texture != nil {
				u := w0*va.U + w1*vb.U + w2*vc.U
				v := w0*va.V + w1*vb.V + w2*vc.V
				col = mat.Texture.Sample(u, v)
			}
			if !mat.Emissive {
				lr := w0*a.lit.X + w1*b.lit.X + w2*c.lit.X
				lg := w0*a.lit.Y + w1*b.lit.Y + w2*c.lit.Y
				lb := w0*a.lit.Z + w1*b.lit.Z + w2*c.lit.Z
				col = Color{
					R: uint8(float64(col.R)*Clamp01(lr) + 0.5),
					G: uint8(float64(col.G)*Clamp01(lg) + 0.5),
					B: uint8(float64(col.B)*Clamp01(lb) + 0.5),
					A: col.A,
				}
			}
			if opacity < 1 || col.A < 0xFF {
				t.BlendPixel(x, y, col.WithOpacity(opacity))
			} else {
				t.SetPixel(x, y, col)
			}
		}
	}
}

func (r *Renderer) renderLine(t Target, vp Mat4, pl Polyline) {
	if len(pl.Points) < 2 {
		return
	}
	model := pl.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	mvp := Mat4Mul(vp, model)
	col := pl.Color
	if pl.Opacity > 0 && pl.Opacity < 1 {
		col = col.WithOpacity(pl.Opacity)
	}

	prev, prevOK := r.projectPoint(mvp, pl.Points[0])
	for _, p := range pl.Points[1:] {
		cur, ok := r.projectPoint(mvp, p)
		if ok && prevOK {
			r.drawLine(t, prev.X, prev.Y, prev.Z, cur.X, cur.Y, cur.Z, col, pl.Width)
			r.stats.Segments++
		}
		prev, prevOK = cur, ok
	}
}

func (r *Renderer) projectPoint(mvp Mat4, p Vec3) (Vec3, bool) {
	c := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if c.W <= 1e-6 {
		return Vec3{}, false
	}
	sx, sy := ndcToScreen(c.X/c.W, c.Y/c.W, r.w, r.h)
	return V3(sx, sy, c.Z/c.W), true
}

// drawLine is Bresenham with depth-tested, blended pixels.
func (r *Renderer) drawLine(t Target, fx0, fy0, z0, fx1, fy1, z1 float64, c Color, width int) {
	x0, y0 := int(fx0), int(fy0)
	x1, y1 := int(fx1), int(fy1)
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps > 4*(r.w+r.h) {
		return
	}
	if width <= 0 {
		width = 1
	}
	err := dx + dy
	for i := 0; ; i++ {
		tt := 0.0
		if steps > 0 {
			tt = float64(i) / float64(steps)
		}
		z := z0 + (z1-z0)*tt
		for k := 0; k < width; k++ {
			px, py := x0, y0+k
			if dx < -dy {
				px, py = x0+k, y0
			}
			if r.depthTest(px, py, z, false) {
				if c.A == 0xFF {
					t.SetPixel(px, py, c)
				} else {
					t.BlendPixel(px, py, c)
				}
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
