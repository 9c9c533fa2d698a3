// Package guish turns picking and raw input over a 3D scene graph into
// GUI-style events on scene nodes, drawn and driven by [Ebitengine].
//
// Register a node with the [Dispatcher], subscribe to its signals, and the
// dispatcher raises MouseEnter, MouseLeave, MouseMove, MouseDown, MouseUp,
// Click, DoubleClick, KeyDown, KeyUp, MouseWheelUp and MouseWheelDown on
// it as the user interacts with the scene.
//
// # Quick start
//
//	scene := guish.NewScene()
//	box := guish.NewMeshNode("box", guish.NewBoxMesh(1, 1, 1))
//	scene.Root().AddChild(box)
//
//	d := scene.Dispatcher()
//	d.RegisterNode(box)
//	d.Subscribe(box, guish.EventClick, func(p guish.HandlerParams) {
//		fmt.Println("clicked", p.Node, "at", p.Hit.Point)
//	})
//
//	guish.Run(scene, guish.RunConfig{Title: "guish", Width: 640, Height: 480})
//
// # Observed nodes
//
// Only registered nodes receive events. When the pointer is over a mesh,
// the event goes to the nearest registered node on the path from that mesh
// up to its root, so registering a group captures events for its whole
// subtree.
//
// # Focus
//
// Keyboard and wheel events go to the node holding keyboard or wheel
// focus. Focus is set explicitly with [Dispatcher.SetKeyboardFocus] and
// [Dispatcher.SetMouseWheelFocus], or moved automatically by a
// [FocusPolicy]: [ManualFocus], [MouseOverFocus] or [MouseDownFocus].
// Custom policies are a [FocusPolicyFactory] away.
//
// # Scene adapters
//
// The dispatcher only needs a [SceneAdapter]. [Scene] is one, picking
// through its own node tree with its orbit [Camera]; other engines can
// implement the interface and feed [Dispatcher.Handle] directly.
//
// # Concurrency
//
// Everything runs synchronously on the caller's goroutine. Callbacks run
// inside Handle and block it.
//
// [Ebitengine]: https://ebitengine.org
package guish
