package guish

import "cogentcore.org/core/math32"

// --- ID counter ---

// nodeIDCounter is a plain counter; guish is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is an element of the 3D scene. Identity is the pointer; ID is a
// stable integer handle used by the signal registry. A nil *Node is the
// "no node" value throughout the package.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians.
	Position math32.Vector3
	Rotation math32.Vector3
	Scale    math32.Vector3

	// Computed, refreshed by updateWorldTransform.
	worldMatrix    math32.Matrix4
	transformDirty bool

	// Visibility & picking
	Visible  bool
	Pickable bool

	// Geometry. Group nodes have a nil Mesh.
	Mesh  *Mesh
	Color Color

	// Metadata
	UserData any
	EntityID uint32

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = math32.Vec3(1, 1, 1)
	n.Color = ColorWhite
	n.Visible = true
	n.Pickable = true
	n.transformDirty = true
	n.worldMatrix.SetIdentity()
}

// NewGroup creates a node with no geometry, used to group and transform
// its children. Registering a group captures hits on all its descendants.
func NewGroup(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a node that renders and is picked through mesh.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := &Node{Name: name, Mesh: mesh}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("guish: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("guish: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("guish: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Path returns the chain of nodes from the topmost ancestor down to n,
// inclusive. Picking reports this as the hit's ancestor path.
func (n *Node) Path() []*Node {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	path := make([]*Node, depth)
	for p := n; p != nil; p = p.Parent {
		depth--
		path[depth] = p
	}
	return path
}

// MarkDirty flags the node's transform for recomputation. Call after
// changing Position, Rotation or Scale directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Registrations in a Dispatcher
// are not touched; call Dispatcher.UnregisterNode first.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Mesh = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// String returns the node name, used when printing event targets.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
