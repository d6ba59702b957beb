package gfx

import "math"

// NewSphereMesh builds a UV sphere. Seam vertices are duplicated so U runs
// continuously from 0 to 1; V is 0 at the north pole and 1 at the south pole.
//
// Vertex placement uses the same convention as geo.Project so a texture in
// equirectangular layout lines up with projected coordinates.
func NewSphereMesh(radius float64, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	verts := make([]Vertex, 0, (segments+1)*(rings+1))
	indices := make([]uint32, 0, segments*rings*6)

	for ring := 0; ring <= rings; ring++ {
		v := float64(ring) / float64(rings)
		phi := v * math.Pi
		sinPhi, cosPhi := math.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			u := float64(seg) / float64(segments)
			theta := u * 2 * math.Pi
			sinTheta, cosTheta := math.Sincos(theta)

			n := V3(-sinPhi*cosTheta, cosPhi, sinPhi*sinTheta)
			verts = append(verts, Vertex{
				Pos:    n.Mul(radius),
				Normal: n,
				U:      u,
				V:      v,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments) + 1

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return &Mesh{Vertices: verts, Indices: indices}
}

// NewCylinderMesh builds an open tapered tube along local -Y, from y=0
// (radius top) down to y=-height (radius bottom).
func NewCylinderMesh(top, bottom, height float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vertex, 0, (segments+1)*2)
	indices := make([]uint32, 0, segments*6)

	for seg := 0; seg <= segments; seg++ {
		u := float64(seg) / float64(segments)
		s, c := math.Sincos(u * 2 * math.Pi)
		n := V3(c, 0, s)
		verts = append(verts,
			Vertex{Pos: V3(c*top, 0, s*top), Normal: n, U: u, V: 0},
			Vertex{Pos: V3(c*bottom, -height, s*bottom), Normal: n, U: u, V: 1},
		)
	}
	for seg := 0; seg < segments; seg++ {
		i := uint32(seg * 2)
		indices = append(indices, i, i+1, i+2)
		indices = append(indices, i+2, i+1, i+3)
	}
	return &Mesh{Vertices: verts, Indices: indices}
}

// NewRingMesh builds a flat annulus in the local XZ plane (normal +Y).
func NewRingMesh(inner, outer float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vertex, 0, (segments+1)*2)
	indices := make([]uint32, 0, segments*6)
	up := V3(0, 1, 0)

	for seg := 0; seg <= segments; seg++ {
		u := float64(seg) / float64(segments)
		s, c := math.Sincos(u * 2 * math.Pi)
		verts = append(verts,
			Vertex{Pos: V3(c*inner, 0, s*inner), Normal: up, U: u, V: 0},
			Vertex{Pos: V3(c*outer, 0, s*outer), Normal: up, U: u, V: 1},
		)
	}
	for seg := 0; seg < segments; seg++ {
		i := uint32(seg * 2)
		indices = append(indices, i, i+1, i+2)
		indices = append(indices, i+2, i+1, i+3)
	}
	return &Mesh{Vertices: verts, Indices: indices}
}
