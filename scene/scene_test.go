package scene

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"travelglobe/geo"
	"travelglobe/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCities() geo.Destinations {
	return geo.Destinations{
		{Name: "Tokyo", Lat: 35.68, Lng: 139.65, Visited: true, Color: gfx.RGB(0, 0xff, 0x88)},
		{Name: "Paris", Lat: 48.86, Lng: 2.35, Visited: true, Color: gfx.RGB(0xff, 0x88, 0)},
		{Name: "Bali", Lat: -8.34, Lng: 115.09, Visited: false, Color: gfx.RGB(0x44, 0x44, 0xff)},
	}
}

func newTestComposer(ds geo.Destinations) *Composer {
	return NewComposer(ds, rand.NewPCG(1, 2))
}

func TestMarkerCardinality(t *testing.T) {
	for _, ds := range []geo.Destinations{threeCities(), geo.DefaultDestinations()} {
		c := newTestComposer(ds)
		v, p := ds.Counts()
		assert.Equal(t, len(ds), c.Build(State{Filter: geo.FilterAll}).Count(KindMarker))
		assert.Equal(t, v, c.Build(State{Filter: geo.FilterVisited}).Count(KindMarker))
		assert.Equal(t, p, c.Build(State{Filter: geo.FilterPlanned}).Count(KindMarker))
	}
}

func TestMarkerParts(t *testing.T) {
	c := newTestComposer(threeCities())
	root := c.Build(State{Filter: geo.FilterAll})

	// Only visited destinations get a pulse ring.
	assert.Equal(t, 2, root.Count(KindRing))
	assert.Equal(t, 3, root.Count(KindMarkerBody))
	assert.Equal(t, 3, root.Count(KindGlow))
	assert.Equal(t, 3, root.Count(KindStem))
	assert.Equal(t, 0, root.Count(KindLabel))
	assert.Equal(t, 0, root.Count(KindArc))

	_, ok := root.Find(MarkerKey("Bali") + "/ring")
	assert.False(t, ok)
	m, ok := root.Find(MarkerKey("Tokyo"))
	require.True(t, ok)
	pos := m.Transform.TransformPoint(gfx.Vec3{})
	assert.InDelta(t, MarkerRadius, gfx.Len(pos), 1e-9)
}

func TestSelectVisitedDrawsArcsToOtherVisited(t *testing.T) {
	c := newTestComposer(threeCities())
	root := c.Build(State{Filter: geo.FilterVisited, Selected: "Tokyo"})

	assert.Equal(t, []string{"Tokyo", "Paris"}, root.Dests(KindMarker))
	assert.Equal(t, []string{"Paris"}, root.Dests(KindArc))
	_, ok := root.Find(ArcKey("Tokyo", "Paris"))
	assert.True(t, ok)

	label, ok := root.Find(MarkerKey("Tokyo") + "/label")
	require.True(t, ok)
	assert.Equal(t, "Tokyo", label.Text)

	all := c.Build(State{Filter: geo.FilterAll, Selected: "Tokyo"})
	assert.Equal(t, []string{"Paris"}, all.Dests(KindArc), "no arc to planned Bali")
}

func TestSelectPlannedDrawsNoArcs(t *testing.T) {
	c := newTestComposer(threeCities())
	root := c.Build(State{Filter: geo.FilterAll, Selected: "Bali"})
	assert.Equal(t, 0, root.Count(KindArc))
	assert.Equal(t, 1, root.Count(KindLabel))
}

func TestStaleSelectionHidesMarkerLabelAndArcs(t *testing.T) {
	c := newTestComposer(threeCities())
	before := c.Build(State{Filter: geo.FilterAll, Selected: "Tokyo"})
	after := c.Build(State{Filter: geo.FilterPlanned, Selected: "Tokyo"})

	assert.Equal(t, []string{"Bali"}, after.Dests(KindMarker))
	assert.Equal(t, 0, after.Count(KindLabel))
	assert.Equal(t, 0, after.Count(KindArc))

	added, removed := Diff(before, after)
	assert.Empty(t, added)
	assert.Contains(t, removed, MarkerKey("Tokyo"))
	assert.Contains(t, removed, MarkerKey("Tokyo")+"/label")
	assert.Contains(t, removed, ArcKey("Tokyo", "Paris"))
	assert.NotContains(t, removed, MarkerKey("Bali"))
}

func TestUnknownSelectionIsHarmless(t *testing.T) {
	c := newTestComposer(threeCities())
	root := c.Build(State{Filter: geo.FilterAll, Selected: "Atlantis"})
	assert.Equal(t, 3, root.Count(KindMarker))
	assert.Equal(t, 0, root.Count(KindLabel))
}

func TestStarsGeneratedOnce(t *testing.T) {
	c := newTestComposer(threeCities())
	require.Len(t, c.Stars(), StarCount)
	for _, s := range c.Stars() {
		for _, v := range []float64{s.X, s.Y, s.Z} {
			assert.LessOrEqual(t, math.Abs(v), StarSpread/2)
		}
	}

	a, _ := c.Build(State{}).Find("stars")
	b, _ := c.Build(State{Filter: geo.FilterPlanned}).Find("stars")
	require.Len(t, a.Points, StarCount)
	assert.Same(t, &a.Points[0], &b.Points[0])
}

func TestArcPoints(t *testing.T) {
	ds := threeCities()
	pts := ArcPoints(ds[0], ds[1])
	require.Len(t, pts, ArcSegments+1)

	start := geo.Project(ds[0].Lat, ds[0].Lng, ArcRadius)
	end := geo.Project(ds[1].Lat, ds[1].Lng, ArcRadius)
	assert.InDelta(t, 0, gfx.Len(pts[0].Sub(start)), 1e-9)
	assert.InDelta(t, 0, gfx.Len(pts[len(pts)-1].Sub(end)), 1e-9)

	// The middle sample is the raised midpoint.
	assert.InDelta(t, ArcPeakRadius, gfx.Len(pts[ArcSegments/2]), 1e-9)
	for _, p := range pts {
		assert.GreaterOrEqual(t, gfx.Len(p), GlobeRadius)
	}

	// Nearly antipodal routes stay above the surface too.
	ny := geo.Destination{Name: "New York", Lat: 40.71, Lng: -74.0}
	sydney := geo.Destination{Name: "Sydney", Lat: -33.87, Lng: 151.2}
	for _, p := range ArcPoints(ny, sydney) {
		assert.GreaterOrEqual(t, gfx.Len(p), ArcRadius-1e-9)
	}
}

func TestPulse(t *testing.T) {
	assert.InDelta(t, 1, Pulse(0), 1e-12)
	peak := math.Pi / 2 / PulseFrequency
	assert.InDelta(t, 1+PulseAmplitude, Pulse(peak), 1e-12)

	body, glow := MarkerScale(peak, false)
	assert.InDelta(t, BaseScale*1.2, body, 1e-12)
	assert.InDelta(t, body*GlowFactor, glow, 1e-12)

	body, _ = MarkerScale(peak, true)
	assert.InDelta(t, SelectedScale*1.2, body, 1e-12)
}

func TestAnimateIsPure(t *testing.T) {
	c := newTestComposer(threeCities())
	root := c.Build(State{Filter: geo.FilterAll, Selected: "Tokyo"})
	before, _ := root.Find("globe")

	var clk Clock
	clk.Advance(2 * time.Second)
	a := Animate(root, clk)
	b := Animate(root, clk)
	assert.Equal(t, a, b)

	after, _ := root.Find("globe")
	assert.Equal(t, before.Transform, after.Transform, "input tree untouched")

	g, _ := a.Find("globe")
	want := gfx.Mat4RotateY(Spin(2, GlobeRate))
	assert.InDeltaSlice(t, want[:], g.Transform[:], 1e-12)

	// Selected marker bodies are larger than unselected ones.
	scaleOf := func(key string) float64 {
		n, ok := a.Find(key)
		require.True(t, ok)
		return gfx.Len(n.Transform.TransformDir(gfx.V3(1, 0, 0)))
	}
	assert.Greater(t, scaleOf(MarkerKey("Tokyo")+"/body"), scaleOf(MarkerKey("Paris")+"/body"))
}

func TestClockNeverGoesBack(t *testing.T) {
	var clk Clock
	clk.Advance(time.Second)
	clk.Advance(-time.Second)
	assert.Equal(t, time.Second, clk.Elapsed)
	assert.Equal(t, uint64(2), clk.Frames)
}

func TestFlatten(t *testing.T) {
	c := newTestComposer(threeCities())
	res := gfx.NewResources()
	dl := Flatten(Animate(c.Build(State{Filter: geo.FilterAll, Selected: "Tokyo"}), Clock{}), res)

	assert.Len(t, dl.Background, 1)
	assert.Len(t, dl.Lines, 1)
	require.Len(t, dl.Labels, 1)
	assert.Equal(t, "Tokyo", dl.Labels[0].Text)
	assert.InDelta(t, MarkerRadius+LabelLift, gfx.Len(dl.Labels[0].Anchor), 1e-9)
	assert.Len(t, dl.Hits, 3)
	for _, h := range dl.Hits {
		assert.Greater(t, h.Radius, 0.08)
	}
	// surface, atmosphere, clouds; 3 markers × (glow, body, stem); 2 rings
	assert.Len(t, dl.Items, 3+9+2)

	// Marker spheres share meshes: surface, atmosphere, clouds, glow, body,
	// stem, ring.
	assert.Equal(t, 7, res.Len())
	res.Dispose()
	assert.Equal(t, 0, res.Len())
}

func TestDiffAddsOnSelect(t *testing.T) {
	c := newTestComposer(threeCities())
	a := c.Build(State{})
	b := c.Build(State{Selected: "Paris"})
	added, removed := Diff(a, b)
	assert.Empty(t, removed)
	assert.Equal(t, []string{ArcKey("Paris", "Tokyo"), MarkerKey("Paris") + "/label"}, added)
}
