package guish

import (
	"cogentcore.org/core/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenColor) and call Update(dt) each frame, or hand it to
// Scene.AddTween. The group writes values straight into the node and marks
// it dirty. If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func tweenVector(node *Node, field *math32.Vector3, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(field.X, to.X, duration, fn)
	g.tweens[1] = gween.New(field.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(field.Z, to.Z, duration, fn)
	g.fields[0] = &field.X
	g.fields[1] = &field.Y
	g.fields[2] = &field.Z
	return g
}

// TweenPosition animates node.Position to the given point.
func TweenPosition(node *Node, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVector(node, &node.Position, to, duration, fn)
}

// TweenScale animates node.Scale to the given factors.
func TweenScale(node *Node, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVector(node, &node.Scale, to, duration, fn)
}

// TweenRotation animates node.Rotation (Euler angles, radians).
func TweenRotation(node *Node, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVector(node, &node.Rotation, to, duration, fn)
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(node.Color.R, to.R, duration, fn)
	g.tweens[1] = gween.New(node.Color.G, to.G, duration, fn)
	g.tweens[2] = gween.New(node.Color.B, to.B, duration, fn)
	g.tweens[3] = gween.New(node.Color.A, to.A, duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}
