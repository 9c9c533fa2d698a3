package guish

import "cogentcore.org/core/math32"

// Mesh is an indexed triangle list in the owning node's local space.
// Triangles wind counter-clockwise when seen from their front side; the
// winding defines the surface normal used for back-face tests.
type Mesh struct {
	Vertices []math32.Vector3
	Indices  []uint16
}

// NewMesh creates a mesh from vertices and triangle indices.
// Panics if the index count is not a multiple of three.
func NewMesh(vertices []math32.Vector3, indices []uint16) *Mesh {
	if len(indices)%3 != 0 {
		panic("guish: mesh index count must be a multiple of 3")
	}
	return &Mesh{Vertices: vertices, Indices: indices}
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertices of the i-th triangle.
func (m *Mesh) Triangle(i int) (a, b, c math32.Vector3) {
	return m.Vertices[m.Indices[i*3]], m.Vertices[m.Indices[i*3+1]], m.Vertices[m.Indices[i*3+2]]
}

// Bounds returns the local-space bounding box of the mesh.
func (m *Mesh) Bounds() math32.Box3 {
	b := math32.B3Empty()
	b.ExpandByPoints(m.Vertices)
	return b
}

// --- Primitive builders ---

// NewQuadMesh creates a single-sided w x h rectangle in the XY plane,
// centered on the origin and facing +Z.
func NewQuadMesh(w, h float32) *Mesh {
	x, y := w/2, h/2
	return NewMesh(
		[]math32.Vector3{
			math32.Vec3(-x, -y, 0),
			math32.Vec3(x, -y, 0),
			math32.Vec3(x, y, 0),
			math32.Vec3(-x, y, 0),
		},
		[]uint16{0, 1, 2, 0, 2, 3},
	)
}

// NewBoxMesh creates an axis-aligned box of the given size centered on the
// origin, with outward-facing triangles.
func NewBoxMesh(w, h, d float32) *Mesh {
	x, y, z := w/2, h/2, d/2
	return NewMesh(
		[]math32.Vector3{
			math32.Vec3(-x, -y, -z),
			math32.Vec3(x, -y, -z),
			math32.Vec3(x, y, -z),
			math32.Vec3(-x, y, -z),
			math32.Vec3(-x, -y, z),
			math32.Vec3(x, -y, z),
			math32.Vec3(x, y, z),
			math32.Vec3(-x, y, z),
		},
		[]uint16{
			4, 5, 6, 4, 6, 7, // +Z
			1, 0, 3, 1, 3, 2, // -Z
			5, 1, 2, 5, 2, 6, // +X
			0, 4, 7, 0, 7, 3, // -X
			7, 6, 2, 7, 2, 3, // +Y
			0, 1, 5, 0, 5, 4, // -Y
		},
	)
}

// NewPyramidMesh creates a square-based pyramid with its base on the XZ
// plane (side length base) and its apex at (0, height, 0).
func NewPyramidMesh(base, height float32) *Mesh {
	s := base / 2
	return NewMesh(
		[]math32.Vector3{
			math32.Vec3(-s, 0, -s),
			math32.Vec3(s, 0, -s),
			math32.Vec3(s, 0, s),
			math32.Vec3(-s, 0, s),
			math32.Vec3(0, height, 0),
		},
		[]uint16{
			3, 2, 4, // +Z side
			2, 1, 4, // +X side
			1, 0, 4, // -Z side
			0, 3, 4, // -X side
			0, 1, 2, 0, 2, 3, // base
		},
	)
}

// NewOctahedronMesh creates a regular octahedron with vertices at distance
// r along each axis.
func NewOctahedronMesh(r float32) *Mesh {
	return NewMesh(
		[]math32.Vector3{
			math32.Vec3(r, 0, 0),
			math32.Vec3(-r, 0, 0),
			math32.Vec3(0, r, 0),
			math32.Vec3(0, -r, 0),
			math32.Vec3(0, 0, r),
			math32.Vec3(0, 0, -r),
		},
		[]uint16{
			0, 2, 4,
			1, 4, 2,
			0, 4, 3,
			1, 3, 4,
			0, 5, 2,
			1, 2, 5,
			0, 3, 5,
			1, 5, 3,
		},
	)
}
