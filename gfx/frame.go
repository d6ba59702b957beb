package gfx

// Sampler returns a surface color for texture coordinates in [0,1].
type Sampler interface {
	Sample(u, v float64) Color
}

// CullMode selects which triangle faces are dropped.
type CullMode uint8

const (
	CullBack CullMode = iota
	CullFront
	CullNone
)

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Opacity   float64 // 0..1. Zero is treated as opaque.
	Emissive  bool    // unlit, drawn at full BaseColor
	Texture   Sampler // optional; replaces BaseColor when set
	Cull      CullMode
}

func (m Material) opacity() float64 {
	if m.Opacity <= 0 || m.Opacity > 1 {
		return 1
	}
	return m.Opacity
}

func (m Material) translucent() bool { return m.opacity() < 1 }

// DirLight is a directional light.
type DirLight struct {
	Dir    Vec3    // direction *towards* the scene
	Amount float64 // 0..1
	Tint   Color   // zero value means white
}

// Light is the lighting rig: an ambient term plus directional lights.
type Light struct {
	Ambient float64 // 0..1
	Dirs    []DirLight
}

// Camera describes the viewing transform. Projection is always perspective.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad float64
	Near    float64
	Far     float64
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect float64) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1.0
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.05
	}
	if far <= near {
		far = near + 100
	}
	return Mat4Perspective(fov, aspect, near, far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	U, V   float64
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangles returns the number of complete triangles.
func (m *Mesh) Triangles() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// DrawItem is one mesh instance.
type DrawItem struct {
	Key       string
	Mesh      *Mesh
	Transform Mat4
	Material  Material
}

// PointSet is a cloud of square points of Size pixels.
type PointSet struct {
	Points    []Vec3
	Transform Mat4
	Color     Color
	Size      int
}

// Polyline is a connected line strip.
type Polyline struct {
	Points    []Vec3
	Transform Mat4
	Color     Color
	Opacity   float64
	Width     int
}

// Frame is everything the renderer draws in one pass.
//
// Background point sets are drawn first without depth writes, so everything
// else occludes them.
type Frame struct {
	Camera     Camera
	Light      Light
	Background []PointSet
	Items      []DrawItem
	Lines      []Polyline
}
