package scene

import "travelglobe/gfx"

// Label is text anchored at a world position.
type Label struct {
	Key    string
	Text   string
	Anchor gfx.Vec3
	Color  gfx.Color
}

// Hit is a pickable marker: a sphere in world space.
type Hit struct {
	Dest   string
	Center gfx.Vec3
	Normal gfx.Vec3 // outward surface normal at the marker
	Radius float64
}

// DrawList is a flattened tree ready for the renderer.
type DrawList struct {
	Background []gfx.PointSet
	Items      []gfx.DrawItem
	Lines      []gfx.Polyline
	Labels     []Label
	Hits       []Hit
}

// Flatten resolves world transforms and looks meshes up in res.
func Flatten(root Node, res *gfx.Resources) DrawList {
	var dl DrawList
	flatten(root, gfx.Mat4Identity(), res, &dl)
	return dl
}

func flatten(n Node, parent gfx.Mat4, res *gfx.Resources, dl *DrawList) {
	world := gfx.Mat4Mul(parent, n.local())

	switch n.Kind {
	case KindStars:
		dl.Background = append(dl.Background, gfx.PointSet{
			Points:    n.Points,
			Transform: world,
			Color:     n.Material.BaseColor,
			Size:      n.PointSize,
		})
	case KindArc:
		dl.Lines = append(dl.Lines, gfx.Polyline{
			Points:    n.Points,
			Transform: world,
			Color:     n.Material.BaseColor,
			Opacity:   n.Material.Opacity,
			Width:     n.LineWidth,
		})
	case KindLabel:
		dl.Labels = append(dl.Labels, Label{
			Key:    n.Key,
			Text:   n.Text,
			Anchor: world.TransformPoint(gfx.Vec3{}),
			Color:  n.Material.BaseColor,
		})
	case KindGlow:
		// The glow is the larger of the two marker spheres, so it is the
		// pick target.
		center := world.TransformPoint(gfx.Vec3{})
		edge := world.TransformPoint(gfx.V3(n.Geometry.Radius, 0, 0))
		dl.Hits = append(dl.Hits, Hit{
			Dest:   n.Dest,
			Center: center,
			Normal: gfx.Normalize(center),
			Radius: gfx.Len(edge.Sub(center)),
		})
	}

	if n.Geometry.Shape != ShapeNone {
		g := n.Geometry
		dl.Items = append(dl.Items, gfx.DrawItem{
			Key:       n.Key,
			Mesh:      res.Mesh(g.Key(), g.Build),
			Transform: world,
			Material:  n.Material,
		})
	}

	for _, c := range n.Children {
		flatten(c, world, res, dl)
	}
}
