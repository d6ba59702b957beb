package scene

import (
	"math/rand/v2"
	"sync"

	"travelglobe/geo"
	"travelglobe/gfx"
)

// Radii in scene units.
const (
	GlobeRadius      = 2.0
	MarkerRadius     = 2.05
	ArcRadius        = 2.1
	ArcPeakRadius    = 2.3
	AtmosphereRadius = 2.1
	CloudRadius      = 2.12

	LabelLift   = 0.4
	ArcSegments = 20

	StarCount  = 1000
	StarSpread = 20.0
)

var (
	atmosphereColor = gfx.RGB(0x87, 0xce, 0xeb)
	oceanFallback   = gfx.RGB(0x1d, 0x5c, 0xa6)
	white           = gfx.RGB(0xff, 0xff, 0xff)
)

// State is the selection state a scene is built from. Selected is a
// destination name, empty for none.
type State struct {
	Filter   geo.Filter
	Selected string
}

// Composer assembles scene trees for one destination list.
type Composer struct {
	dests geo.Destinations
	stars []gfx.Vec3

	mu      sync.Mutex
	texture gfx.Sampler
}

// NewComposer scatters the starfield from src once; it is shared by every
// tree the composer builds.
func NewComposer(dests geo.Destinations, src rand.Source) *Composer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(src)
	stars := make([]gfx.Vec3, StarCount)
	for i := range stars {
		stars[i] = gfx.V3(
			(rng.Float64()-0.5)*StarSpread,
			(rng.Float64()-0.5)*StarSpread,
			(rng.Float64()-0.5)*StarSpread,
		)
	}
	return &Composer{dests: dests, stars: stars}
}

func (c *Composer) Destinations() geo.Destinations { return c.dests }

func (c *Composer) Stars() []gfx.Vec3 { return c.stars }

// SetTexture installs the planet surface. Until it is set the planet is
// drawn in a flat ocean color.
func (c *Composer) SetTexture(s gfx.Sampler) {
	c.mu.Lock()
	c.texture = s
	c.mu.Unlock()
}

// Build returns the scene tree for st. Markers exist only for destinations
// passing st.Filter. A selection outside the filtered set gets no marker,
// label or arcs.
func (c *Composer) Build(st State) Node {
	c.mu.Lock()
	tex := c.texture
	c.mu.Unlock()

	shown := c.dests.Filter(st.Filter)
	globe := Node{
		Key:       "globe",
		Kind:      KindGlobe,
		Transform: gfx.Mat4Identity(),
		Children:  make([]Node, 0, 1+len(shown)),
	}
	globe.Children = append(globe.Children, Node{
		Key:      "globe/surface",
		Kind:     KindSurface,
		Geometry: Geometry{Shape: ShapeSphere, Radius: GlobeRadius, Segments: 64, Rings: 48},
		Material: gfx.Material{BaseColor: oceanFallback, Texture: tex},
	})

	var selected *geo.Destination
	for i := range shown {
		d := shown[i]
		isSel := st.Selected != "" && d.Name == st.Selected
		if isSel {
			selected = &shown[i]
		}
		globe.Children = append(globe.Children, c.marker(d, isSel))
	}
	if selected != nil && selected.Visited {
		globe.Children = append(globe.Children, c.arcs(*selected)...)
	}

	return Node{
		Key:       "scene",
		Kind:      KindGroup,
		Transform: gfx.Mat4Identity(),
		Children: []Node{
			{
				Key:       "stars",
				Kind:      KindStars,
				Transform: gfx.Mat4Identity(),
				Points:    c.stars,
				PointSize: 1,
				Material:  gfx.Material{BaseColor: white},
			},
			globe,
			{
				Key:       "atmosphere",
				Kind:      KindAtmosphere,
				Transform: gfx.Mat4Identity(),
				Geometry:  Geometry{Shape: ShapeSphere, Radius: AtmosphereRadius, Segments: 32, Rings: 24},
				Material:  gfx.Material{BaseColor: atmosphereColor, Opacity: 0.1, Emissive: true, Cull: gfx.CullFront},
			},
			{
				Key:       "clouds",
				Kind:      KindClouds,
				Transform: gfx.Mat4Identity(),
				Geometry:  Geometry{Shape: ShapeSphere, Radius: CloudRadius, Segments: 32, Rings: 24},
				Material:  gfx.Material{BaseColor: white, Opacity: 0.1, Emissive: true},
			},
		},
	}
}

// MarkerKey is the node key of the marker group for a destination.
func MarkerKey(name string) string { return "marker/" + name }

// ArcKey is the node key of the arc between two destinations.
func ArcKey(from, to string) string { return "arc/" + from + "->" + to }

func (c *Composer) marker(d geo.Destination, selected bool) Node {
	pos := geo.Project(d.Lat, d.Lng, MarkerRadius)
	key := MarkerKey(d.Name)
	m := Node{
		Key:       key,
		Kind:      KindMarker,
		Dest:      d.Name,
		Selected:  selected,
		Transform: gfx.Mat4Mul(gfx.Mat4Translate(pos), gfx.Mat4Basis(gfx.Normalize(pos))),
	}
	m.Children = []Node{
		{
			Key:       key + "/glow",
			Kind:      KindGlow,
			Dest:      d.Name,
			Selected:  selected,
			Transform: gfx.Mat4Identity(),
			Geometry:  Geometry{Shape: ShapeSphere, Radius: 0.08, Segments: 16, Rings: 12},
			Material:  gfx.Material{BaseColor: d.Color, Opacity: 0.3, Emissive: true},
		},
		{
			Key:       key + "/body",
			Kind:      KindMarkerBody,
			Dest:      d.Name,
			Selected:  selected,
			Transform: gfx.Mat4Identity(),
			Geometry:  Geometry{Shape: ShapeSphere, Radius: 0.06, Segments: 16, Rings: 12},
			Material:  gfx.Material{BaseColor: d.Color, Opacity: 0.9, Emissive: true},
		},
		{
			Key:       key + "/stem",
			Kind:      KindStem,
			Dest:      d.Name,
			Transform: gfx.Mat4Identity(),
			Geometry:  Geometry{Shape: ShapeCylinder, Radius: 0.005, Radius2: 0.01, Height: 0.1, Segments: 8},
			Material:  gfx.Material{BaseColor: d.Color, Opacity: 0.8, Emissive: true, Cull: gfx.CullNone},
		},
	}
	if d.Visited {
		// Just above the surface, in the tangent plane.
		m.Children = append(m.Children, Node{
			Key:       key + "/ring",
			Kind:      KindRing,
			Dest:      d.Name,
			Transform: gfx.Mat4Translate(gfx.V3(0, GlobeRadius+0.01-MarkerRadius, 0)),
			Geometry:  Geometry{Shape: ShapeRing, Radius: 0.08, Radius2: 0.12, Segments: 16},
			Material:  gfx.Material{BaseColor: d.Color, Opacity: 0.4, Emissive: true, Cull: gfx.CullNone},
		})
	}
	if selected {
		m.Children = append(m.Children, Node{
			Key:       key + "/label",
			Kind:      KindLabel,
			Dest:      d.Name,
			Text:      d.Name,
			Transform: gfx.Mat4Translate(gfx.V3(0, LabelLift, 0)),
			Material:  gfx.Material{BaseColor: white},
		})
	}
	return m
}

// arcs connects from to every other visited destination in the full list.
func (c *Composer) arcs(from geo.Destination) []Node {
	var out []Node
	for _, to := range c.dests {
		if !to.Visited || to.Is(from) {
			continue
		}
		out = append(out, Node{
			Key:       ArcKey(from.Name, to.Name),
			Kind:      KindArc,
			Dest:      to.Name,
			Transform: gfx.Mat4Identity(),
			Points:    ArcPoints(from, to),
			LineWidth: 1,
			Material:  gfx.Material{BaseColor: from.Color, Opacity: 0.5},
		})
	}
	return out
}

// ArcPoints returns a smooth curve from a to b lifted off the surface. The
// middle control point is the great-circle midpoint raised to ArcPeakRadius.
// Long routes would cut through the globe, so no sample sits below
// ArcRadius.
func ArcPoints(a, b geo.Destination) []gfx.Vec3 {
	start := geo.Project(a.Lat, a.Lng, ArcRadius)
	end := geo.Project(b.Lat, b.Lng, ArcRadius)
	mlat, mlng := geo.Midpoint(a, b)
	mid := geo.Project(mlat, mlng, ArcPeakRadius)

	pts := catmullRom([]gfx.Vec3{start, mid, end}, ArcSegments)
	for i, p := range pts {
		if l := gfx.Len(p); l > 0 && l < ArcRadius {
			pts[i] = p.Mul(ArcRadius / l)
		}
	}
	return pts
}

// catmullRom samples a uniform Catmull-Rom spline through pts, returning
// segments+1 points that start and end exactly on the first and last
// control points.
func catmullRom(pts []gfx.Vec3, segments int) []gfx.Vec3 {
	if len(pts) < 2 || segments < 1 {
		return append([]gfx.Vec3(nil), pts...)
	}
	n := len(pts)
	at := func(i int) gfx.Vec3 {
		switch {
		case i < 0:
			return pts[0].Mul(2).Sub(pts[1])
		case i >= n:
			return pts[n-1].Mul(2).Sub(pts[n-2])
		}
		return pts[i]
	}

	out := make([]gfx.Vec3, 0, segments+1)
	spans := float64(n - 1)
	for s := 0; s <= segments; s++ {
		g := float64(s) / float64(segments) * spans
		i := int(g)
		if i >= n-1 {
			i = n - 2
		}
		t := g - float64(i)
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		t2, t3 := t*t, t*t*t
		// 0.5 * (2p1 + (-p0+p2)t + (2p0-5p1+4p2-p3)t² + (-p0+3p1-3p2+p3)t³)
		v := p1.Mul(2).
			Add(p2.Sub(p0).Mul(t)).
			Add(p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)).
			Add(p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3))
		out = append(out, v.Mul(0.5))
	}
	return out
}
