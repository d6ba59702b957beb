package geo

import (
	"math"
	"testing"

	"travelglobe/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestProjectRadius(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lng := -180.0; lng <= 180; lng += 11.25 {
			for _, r := range []float64{1, 2, 2.05, 2.3} {
				p := Project(lat, lng, r)
				assert.InDelta(t, r, gfx.Len(p), eps, "lat=%g lng=%g r=%g", lat, lng, r)
				assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z))
			}
		}
	}
}

func TestProjectPoles(t *testing.T) {
	north := Project(90, 0, 2)
	south := Project(-90, 0, 2)
	for _, lng := range []float64{-180, -97.3, 0, 45, 180} {
		n := Project(90, lng, 2)
		s := Project(-90, lng, 2)
		assert.InDelta(t, north.X, n.X, eps)
		assert.InDelta(t, north.Z, n.Z, eps)
		assert.InDelta(t, 0, n.X, eps)
		assert.InDelta(t, 0, n.Z, eps)
		assert.InDelta(t, 2, n.Y, eps)
		assert.InDelta(t, south.X, s.X, eps)
		assert.InDelta(t, -2, s.Y, eps)
	}
}

func TestProjectOrientation(t *testing.T) {
	cases := []struct {
		lng  float64
		want gfx.Vec3
	}{
		{0, gfx.V3(1, 0, 0)},
		{90, gfx.V3(0, 0, -1)},
		{-90, gfx.V3(0, 0, 1)},
		{180, gfx.V3(-1, 0, 0)},
		{-180, gfx.V3(-1, 0, 0)},
	}
	for _, c := range cases {
		p := Project(0, c.lng, 1)
		assert.InDelta(t, c.want.X, p.X, eps, "lng %v", c.lng)
		assert.InDelta(t, c.want.Y, p.Y, eps, "lng %v", c.lng)
		assert.InDelta(t, c.want.Z, p.Z, eps, "lng %v", c.lng)
	}

	// Both sides of the seam meet on -X.
	a, b := Project(10, -180, 1), Project(10, 180, 1)
	assert.InDelta(t, 0, gfx.Len(a.Sub(b)), eps)
	assert.Less(t, a.X, 0.0)
}

func TestProjectContinuous(t *testing.T) {
	const d = 1e-4
	for lat := -89.0; lat <= 89; lat += 13 {
		for lng := -179.0; lng <= 179; lng += 17 {
			p := Project(lat, lng, 2)
			q := Project(lat+d, lng+d, 2)
			// Arc length for d degrees is bounded by 2*r*d*pi/180.
			assert.Less(t, gfx.Len(p.Sub(q)), 2*2*d*math.Pi/180*1.01)
		}
	}
}

func TestClampLatLng(t *testing.T) {
	lat, lng := ClampLatLng(95, -200)
	assert.Equal(t, 90.0, lat)
	assert.Equal(t, -180.0, lng)
	lat, lng = ClampLatLng(math.NaN(), 12)
	assert.Equal(t, 0.0, lat)
	assert.Equal(t, 12.0, lng)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultDestinations().Validate())

	ds := Destinations{
		{Name: "A", Lat: 10, Lng: 10},
		{Name: "A", Lat: 95, Lng: 10},
		{Name: "B", Lat: 0, Lng: math.NaN()},
	}
	err := ds.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	require.NoError(t, Destinations{{Name: "A", Lat: 95, Lng: 190}}.Clamped().Validate())
}

func threeCities() Destinations {
	return Destinations{
		{Name: "Tokyo", Lat: 35.68, Lng: 139.65, Visited: true},
		{Name: "Paris", Lat: 48.86, Lng: 2.35, Visited: true},
		{Name: "Bali", Lat: -8.34, Lng: 115.09, Visited: false},
	}
}

func TestFilterCardinality(t *testing.T) {
	for _, ds := range []Destinations{threeCities(), DefaultDestinations()} {
		v, p := ds.Counts()
		assert.Len(t, ds.Filter(FilterAll), len(ds))
		assert.Len(t, ds.Filter(FilterVisited), v)
		assert.Len(t, ds.Filter(FilterPlanned), p)
		assert.Equal(t, len(ds), v+p)
	}
	v, p := DefaultDestinations().Counts()
	assert.Equal(t, 7, v)
	assert.Equal(t, 3, p)

	names := func(ds Destinations) (out []string) {
		for _, d := range ds {
			out = append(out, d.Name)
		}
		return
	}
	assert.Equal(t, []string{"Tokyo", "Paris"}, names(threeCities().Visited()))
	assert.Equal(t, []string{"Bali"}, names(threeCities().Filter(FilterPlanned)))
}

func TestFindByValue(t *testing.T) {
	ds := threeCities()
	d, ok := ds.Find("Paris")
	require.True(t, ok)
	assert.True(t, d.Is(Destination{Name: "Paris"}))
	_, ok = ds.Find("Lima")
	assert.False(t, ok)
}

func TestParseFilter(t *testing.T) {
	for _, f := range []Filter{FilterAll, FilterVisited, FilterPlanned} {
		got, err := ParseFilter(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFilter(" Visited ")
	require.NoError(t, err)
	assert.Equal(t, FilterVisited, got)

	_, err = ParseFilter("favorites")
	assert.ErrorIs(t, err, ErrUnknownFilter)

	assert.Equal(t, FilterVisited, FilterAll.Next())
	assert.Equal(t, FilterPlanned, FilterVisited.Next())
	assert.Equal(t, FilterAll, FilterPlanned.Next())
}

func TestDistanceAndMidpoint(t *testing.T) {
	ds := threeCities()
	tokyo, _ := ds.Find("Tokyo")
	paris, _ := ds.Find("Paris")

	// Tokyo to Paris is roughly 9,700 km.
	assert.InDelta(t, 9700, DistanceKm(tokyo, paris), 150)
	assert.InDelta(t, 0, DistanceKm(tokyo, tokyo), 1e-6)

	lat, lng := Midpoint(tokyo, paris)
	m := Destination{Lat: lat, Lng: lng}
	assert.InDelta(t, DistanceKm(tokyo, m), DistanceKm(m, paris), 1)
	// The great-circle route passes far north of both cities.
	assert.Greater(t, lat, 60.0)

	near, km, ok := ds.Nearest(tokyo)
	require.True(t, ok)
	assert.Equal(t, "Paris", near.Name)
	assert.Greater(t, km, 0.0)

	_, _, ok = Destinations{tokyo}.Nearest(tokyo)
	assert.False(t, ok)
}
