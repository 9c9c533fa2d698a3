package guish

import "cogentcore.org/core/math32"

// identityMatrix returns the identity transform used for scene roots.
func identityMatrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetIdentity()
	return m
}

// computeLocalMatrix builds the node's local matrix.
//
// Composition order: Scale -> Rotate (Euler XYZ) -> Translate(Position)
func computeLocalMatrix(n *Node) math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(n.Position, math32.NewQuatEuler(n.Rotation), n.Scale)
	return m
}

// updateWorldTransform refreshes cached world matrices for n and its
// subtree. Only dirty nodes (or children of recomputed nodes) are rebuilt.
func updateWorldTransform(n *Node, parent math32.Matrix4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalMatrix(n)
		n.worldMatrix.MulMatrices(&parent, &local)
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// WorldMatrix returns the node's local-to-world matrix, composed fresh
// from the node and all its ancestors.
func (n *Node) WorldMatrix() math32.Matrix4 {
	m := computeLocalMatrix(n)
	for p := n.Parent; p != nil; p = p.Parent {
		pl := computeLocalMatrix(p)
		var r math32.Matrix4
		r.MulMatrices(&pl, &m)
		m = r
	}
	return m
}

// LocalToWorld converts a point in the node's local space to world space.
func (n *Node) LocalToWorld(p math32.Vector3) math32.Vector3 {
	m := n.WorldMatrix()
	return transformPoint(&m, p)
}

// WorldToLocal converts a world-space point to the node's local space.
// Returns p unchanged if the world matrix is singular (zero scale).
func (n *Node) WorldToLocal(p math32.Vector3) math32.Vector3 {
	m := n.WorldMatrix()
	inv, err := m.Inverse()
	if err != nil {
		return p
	}
	return transformPoint(inv, p)
}

// transformPoint applies m to p as a point (w = 1).
func transformPoint(m *math32.Matrix4, p math32.Vector3) math32.Vector3 {
	v := math32.Vector4FromVector3(p, 1).MulMatrix4(m)
	return math32.Vec3(v.X, v.Y, v.Z)
}
