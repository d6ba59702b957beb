// Package scene describes the globe as a tree of plain values.
//
// A Composer builds the tree from the destination list and the current
// selection state. Animate derives the per-frame tree from it without
// mutating anything, and Flatten turns a tree into draw calls.
package scene

import (
	"fmt"
	"sort"

	"travelglobe/gfx"
)

// Kind tags what a node represents.
type Kind uint8

const (
	KindGroup Kind = iota
	KindGlobe
	KindSurface
	KindAtmosphere
	KindClouds
	KindStars
	KindMarker
	KindMarkerBody
	KindGlow
	KindStem
	KindRing
	KindLabel
	KindArc
)

var kindNames = [...]string{
	"group", "globe", "surface", "atmosphere", "clouds", "stars",
	"marker", "body", "glow", "stem", "ring", "label", "arc",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Shape selects the mesh a node is drawn with.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeSphere
	ShapeCylinder
	ShapeRing
)

// Geometry describes a mesh by its parameters. Equal geometries share a mesh.
type Geometry struct {
	Shape    Shape
	Radius   float64 // sphere radius, cylinder top, ring inner
	Radius2  float64 // cylinder bottom, ring outer
	Height   float64
	Segments int
	Rings    int
}

func (g Geometry) Key() string {
	switch g.Shape {
	case ShapeSphere:
		return fmt.Sprintf("sphere:%g:%dx%d", g.Radius, g.Segments, g.Rings)
	case ShapeCylinder:
		return fmt.Sprintf("cylinder:%g:%g:%g:%d", g.Radius, g.Radius2, g.Height, g.Segments)
	case ShapeRing:
		return fmt.Sprintf("ring:%g:%g:%d", g.Radius, g.Radius2, g.Segments)
	}
	return ""
}

func (g Geometry) Build() *gfx.Mesh {
	switch g.Shape {
	case ShapeSphere:
		return gfx.NewSphereMesh(g.Radius, g.Segments, g.Rings)
	case ShapeCylinder:
		return gfx.NewCylinderMesh(g.Radius, g.Radius2, g.Height, g.Segments)
	case ShapeRing:
		return gfx.NewRingMesh(g.Radius, g.Radius2, g.Segments)
	}
	return nil
}

// Node is one element of the scene. Transform is relative to the parent;
// the zero matrix means identity.
type Node struct {
	Key       string
	Kind      Kind
	Transform gfx.Mat4
	Geometry  Geometry
	Material  gfx.Material

	// Dest names the destination a marker or arc belongs to.
	Dest     string
	Selected bool
	Text     string

	Points    []gfx.Vec3
	PointSize int
	LineWidth int

	Children []Node
}

func (n Node) local() gfx.Mat4 {
	if n.Transform == (gfx.Mat4{}) {
		return gfx.Mat4Identity()
	}
	return n.Transform
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of that node.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the node with the given key.
func (n Node) Find(key string) (Node, bool) {
	var (
		out   Node
		found bool
	)
	n.Walk(func(c Node) bool {
		if found {
			return false
		}
		if c.Key == key {
			out, found = c, true
			return false
		}
		return true
	})
	return out, found
}

// Count returns the number of nodes of kind k.
func (n Node) Count(k Kind) int {
	count := 0
	n.Walk(func(c Node) bool {
		if c.Kind == k {
			count++
		}
		return true
	})
	return count
}

// Dests returns the destination names of every node of kind k, in tree
// order.
func (n Node) Dests(k Kind) []string {
	var out []string
	n.Walk(func(c Node) bool {
		if c.Kind == k {
			out = append(out, c.Dest)
		}
		return true
	})
	return out
}

// Keys returns every key in the tree, sorted.
func (n Node) Keys() []string {
	var keys []string
	n.Walk(func(c Node) bool {
		keys = append(keys, c.Key)
		return true
	})
	sort.Strings(keys)
	return keys
}

// Diff compares two trees by key.
func Diff(old, cur Node) (added, removed []string) {
	before := make(map[string]struct{})
	for _, k := range old.Keys() {
		before[k] = struct{}{}
	}
	for _, k := range cur.Keys() {
		if _, ok := before[k]; ok {
			delete(before, k)
			continue
		}
		added = append(added, k)
	}
	for k := range before {
		removed = append(removed, k)
	}
	sort.Strings(removed)
	return added, removed
}
