package guish

import (
	"cmp"
	"slices"

	"cogentcore.org/core/math32"
)

// pickEpsilon rejects near-parallel triangles and hits at the ray origin.
const pickEpsilon = 1e-6

// pickFar is the length of the ray segment reported in a Hit.
const pickFar = 1000

// Ray is a half-line in world space. Dir need not be normalized, but
// Distance values in hits are in units of Dir's length.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math32.Vector3 {
	return r.Origin.Add(r.Dir.MulScalar(t))
}

// Segment is a finite line segment.
type Segment struct {
	Start, End math32.Vector3
}

// Hit is the result of one ray/triangle intersection.
type Hit struct {
	// Node owns the intersected mesh.
	Node *Node
	// Path runs from the topmost ancestor down to Node.
	Path []*Node

	// Point and Normal are in world space; Normal is unit length and
	// follows the triangle's counter-clockwise winding.
	Point  math32.Vector3
	Normal math32.Vector3
	// LocalPoint is Point in Node's local space.
	LocalPoint math32.Vector3
	// LocalSegment is the picking ray, clipped to pickFar, in Node's
	// local space.
	LocalSegment Segment

	Distance float32
	Triangle int
}

// FrontFacing reports whether the hit surface faces the ray origin.
func (h Hit) FrontFacing(ray Ray) bool {
	return ray.Dir.Normal().Dot(h.Normal) < 0
}

// IntersectNode intersects ray with every visible, pickable mesh in the
// subtree rooted at root and returns the hits ordered front to back.
// Triangles are two-sided; use Hit.FrontFacing to tell sides apart.
func IntersectNode(ray Ray, root *Node) []Hit {
	if root == nil {
		return nil
	}
	parent := identityMatrix()
	if root.Parent != nil {
		parent = root.Parent.WorldMatrix()
	}
	var hits []Hit
	hits = intersectSubtree(ray, root, parent, hits)
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

func intersectSubtree(ray Ray, n *Node, parent math32.Matrix4, hits []Hit) []Hit {
	if !n.Visible || !n.Pickable {
		return hits
	}
	local := computeLocalMatrix(n)
	var world math32.Matrix4
	world.MulMatrices(&parent, &local)

	if n.Mesh != nil {
		hits = intersectMesh(ray, n, &world, hits)
	}
	for _, child := range n.children {
		hits = intersectSubtree(ray, child, world, hits)
	}
	return hits
}

func intersectMesh(ray Ray, n *Node, world *math32.Matrix4, hits []Hit) []Hit {
	first := len(hits)
	m := n.Mesh
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		a = transformPoint(world, a)
		b = transformPoint(world, b)
		c = transformPoint(world, c)
		t, ok := intersectTriangle(ray, a, b, c)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Node:     n,
			Point:    ray.At(t),
			Normal:   math32.Normal(a, b, c),
			Distance: t,
			Triangle: i,
		})
	}
	if len(hits) == first {
		return hits
	}

	// Fill in the shared and local-space fields once per node.
	path := n.Path()
	inv, err := world.Inverse()
	for i := first; i < len(hits); i++ {
		h := &hits[i]
		h.Path = path
		if err != nil {
			h.LocalPoint = h.Point
			h.LocalSegment = Segment{Start: ray.Origin, End: ray.At(pickFar)}
			continue
		}
		h.LocalPoint = transformPoint(inv, h.Point)
		h.LocalSegment = Segment{
			Start: transformPoint(inv, ray.Origin),
			End:   transformPoint(inv, ray.At(pickFar)),
		}
	}
	return hits
}

// intersectTriangle is the Möller–Trumbore test. It returns the ray
// parameter of the hit.
func intersectTriangle(ray Ray, a, b, c math32.Vector3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := ray.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < pickEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := ray.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := ray.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= pickEpsilon {
		return 0, false
	}
	return t, true
}
