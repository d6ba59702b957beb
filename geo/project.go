// Package geo maps geographic coordinates onto the globe and holds the
// destination list the globe displays.
package geo

import (
	"math"

	"travelglobe/gfx"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Project returns the point at radius on the sphere for latitude and
// longitude in degrees. With the 180° longitude offset the prime meridian
// on the equator lands on +X, 90°E on -Z and 90°W on +Z; the ±180° seam
// lies on -X.
//
// Inputs are not validated. Use ClampLatLng at the point destinations enter
// the program.
func Project(lat, lng, radius float64) gfx.Vec3 {
	phi := (90 - lat) * math.Pi / 180
	theta := (lng + 180) * math.Pi / 180
	sp, cp := math.Sincos(phi)
	st, ct := math.Sincos(theta)
	return gfx.Vec3{
		X: -radius * sp * ct,
		Y: radius * cp,
		Z: radius * sp * st,
	}
}

// ClampLatLng clamps latitude to [-90, 90] and longitude to [-180, 180].
// NaN becomes 0.
func ClampLatLng(lat, lng float64) (float64, float64) {
	clamp := func(v, lim float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return math.Max(-lim, math.Min(lim, v))
	}
	return clamp(lat, 90), clamp(lng, 180)
}

// Midpoint is the great-circle midpoint between a and b.
func Midpoint(a, b Destination) (lat, lng float64) {
	m := orbgeo.Midpoint(a.Point(), b.Point())
	return m.Lat(), m.Lon()
}

// DistanceKm is the haversine distance between a and b.
func DistanceKm(a, b Destination) float64 {
	return orbgeo.DistanceHaversine(a.Point(), b.Point()) / 1000
}

// Point returns the destination as an orb point (lng, lat).
func (d Destination) Point() orb.Point { return orb.Point{d.Lng, d.Lat} }
