package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"travelglobe/gfx"
)

var (
	ErrInvalidCoordinate = errors.New("geo: coordinate out of range")
	ErrDuplicateName     = errors.New("geo: duplicate destination name")
	ErrUnknownFilter     = errors.New("geo: unknown filter")
)

// Destination is one place on the globe. Name identifies it; two values with
// the same Name are the same destination.
type Destination struct {
	Name        string
	Lat         float64
	Lng         float64
	Visited     bool
	Color       gfx.Color
	Description string
}

// Is reports whether d and o name the same destination.
func (d Destination) Is(o Destination) bool { return d.Name == o.Name }

// Destinations is an ordered destination list.
type Destinations []Destination

// Validate checks coordinate ranges and name uniqueness.
func (ds Destinations) Validate() error {
	seen := make(map[string]struct{}, len(ds))
	var errs []error
	for i, d := range ds {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("destination %d: empty name", i))
		}
		if math.IsNaN(d.Lat) || math.IsNaN(d.Lng) || d.Lat < -90 || d.Lat > 90 || d.Lng < -180 || d.Lng > 180 {
			errs = append(errs, fmt.Errorf("%w: %q at (%g, %g)", ErrInvalidCoordinate, d.Name, d.Lat, d.Lng))
		}
		if _, dup := seen[d.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name))
		}
		seen[d.Name] = struct{}{}
	}
	return errors.Join(errs...)
}

// Clamped returns a copy with every coordinate clamped into range.
func (ds Destinations) Clamped() Destinations {
	out := make(Destinations, len(ds))
	for i, d := range ds {
		d.Lat, d.Lng = ClampLatLng(d.Lat, d.Lng)
		out[i] = d
	}
	return out
}

// Find looks a destination up by name.
func (ds Destinations) Find(name string) (Destination, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return Destination{}, false
}

// Filter returns the destinations f lets through, in list order.
func (ds Destinations) Filter(f Filter) Destinations {
	out := make(Destinations, 0, len(ds))
	for _, d := range ds {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

func (ds Destinations) Visited() Destinations { return ds.Filter(FilterVisited) }

func (ds Destinations) Counts() (visited, planned int) {
	for _, d := range ds {
		if d.Visited {
			visited++
		} else {
			planned++
		}
	}
	return visited, planned
}

// Nearest returns the closest other visited destination to d.
func (ds Destinations) Nearest(d Destination) (Destination, float64, bool) {
	var (
		best  Destination
		bestK = -1.0
	)
	for _, o := range ds {
		if o.Is(d) || !o.Visited {
			continue
		}
		if k := DistanceKm(d, o); bestK < 0 || k < bestK {
			best, bestK = o, k
		}
	}
	return best, bestK, bestK >= 0
}

// Filter selects which destinations are shown.
type Filter uint8

const (
	FilterAll Filter = iota
	FilterVisited
	FilterPlanned
)

var filterNames = [...]string{"all", "visited", "planned"}

func (f Filter) String() string {
	if int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("Filter(%d)", f)
}

func ParseFilter(s string) (Filter, error) {
	for i, n := range filterNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Filter(i), nil
		}
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

func (f Filter) Match(d Destination) bool {
	switch f {
	case FilterVisited:
		return d.Visited
	case FilterPlanned:
		return !d.Visited
	default:
		return true
	}
}

// Next cycles all → visited → planned → all.
func (f Filter) Next() Filter { return (f + 1) % Filter(len(filterNames)) }
