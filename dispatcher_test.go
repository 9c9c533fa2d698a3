package guish

import (
	"errors"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

// fakeScene is a SceneAdapter whose hits are set directly by the test.
type fakeScene struct {
	root   *Node
	hits   map[*Node][]Hit
	err    error
	rays   []Ray
	roots  []*Node
	errFor *Node
}

func newFakeScene() *fakeScene {
	return &fakeScene{root: NewGroup("scene"), hits: make(map[*Node][]Hit)}
}

func (f *fakeScene) PointerRay(x, y float32) Ray {
	r := Ray{Origin: math32.Vec3(x, y, 10), Dir: math32.Vec3(0, 0, -1)}
	f.rays = append(f.rays, r)
	return r
}

func (f *fakeScene) Intersect(ray Ray, root *Node) ([]Hit, error) {
	f.roots = append(f.roots, root)
	if f.err != nil && (f.errFor == nil || f.errFor == root) {
		return nil, f.err
	}
	return f.hits[root], nil
}

func (f *fakeScene) SceneRoot() *Node { return f.root }

// point puts n alone under the pointer at p, facing the pointer.
func (f *fakeScene) point(n *Node, p math32.Vector3) {
	f.hits[f.root] = []Hit{frontHit(n, p)}
}

func (f *fakeScene) clear() {
	f.hits[f.root] = nil
}

func frontHit(n *Node, p math32.Vector3) Hit {
	return Hit{Node: n, Path: n.Path(), Point: p, LocalPoint: p, Normal: math32.Vec3(0, 0, 1), Distance: 10 - p.Z}
}

func backHit(n *Node, p math32.Vector3) Hit {
	h := frontHit(n, p)
	h.Normal = math32.Vec3(0, 0, -1)
	return h
}

// recorder collects "Kind node" strings for every event on the nodes it watches.
type recorder struct {
	events []string
}

func (r *recorder) watch(t *testing.T, d *Dispatcher, nodes ...*Node) {
	t.Helper()
	for _, n := range nodes {
		for _, kind := range EventKinds() {
			_, err := d.Subscribe(n, kind, func(p HandlerParams) {
				r.events = append(r.events, kind.String()+" "+p.Node.Name)
			})
			require.NoError(t, err)
		}
	}
}

func (r *recorder) take() []string {
	ev := r.events
	r.events = nil
	return ev
}

func frame(x, y float32) InputEvent {
	return InputEvent{Type: InputFrame, X: x, Y: y}
}

func press(b MouseButton, at float64) InputEvent {
	return InputEvent{Type: InputButtonPress, Button: b, Time: at}
}

func release(b MouseButton, at float64) InputEvent {
	return InputEvent{Type: InputButtonRelease, Button: b, Time: at}
}

func handle(t *testing.T, d *Dispatcher, evs ...InputEvent) {
	t.Helper()
	for _, ev := range evs {
		_, err := d.Handle(ev)
		require.NoError(t, err)
	}
}

// setup returns a dispatcher over a fake scene with registered mesh nodes
// named after names, all children of the scene root.
func setup(t *testing.T, names ...string) (*Dispatcher, *fakeScene, []*Node, *recorder) {
	t.Helper()
	fs := newFakeScene()
	d := NewDispatcher(fs)
	nodes := make([]*Node, len(names))
	for i, name := range names {
		nodes[i] = NewMeshNode(name, NewQuadMesh(1, 1))
		fs.root.AddChild(nodes[i])
		d.RegisterNode(nodes[i])
	}
	rec := &recorder{}
	rec.watch(t, d, nodes...)
	return d, fs, nodes, rec
}

// --- Enter / leave / move ---

func TestFrameEnterThenLeave(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	a := n[0]

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter A"}, rec.take())
	assert.Same(t, a, d.NodeUnderPointer())

	fs.clear()
	handle(t, d, frame(0.9, 0.9))
	assert.Equal(t, []string{"MouseLeave A"}, rec.take())
	assert.Nil(t, d.NodeUnderPointer())
}

func TestFrameMoveOnlyOnPointChange(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	a := n[0]

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), frame(0, 0), frame(0, 0))
	assert.Equal(t, []string{"MouseEnter A"}, rec.take())

	fs.point(a, math32.Vec3(0.1, 0, 0))
	handle(t, d, frame(0.1, 0), frame(0.1, 0))
	assert.Equal(t, []string{"MouseMove A"}, rec.take())

	fs.point(a, math32.Vec3(0.2, 0, 0))
	handle(t, d, frame(0.2, 0))
	assert.Equal(t, []string{"MouseMove A"}, rec.take())
}

func TestFrameMoveWhenNodeSlidesUnderPointer(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	a := n[0]

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter A"}, rec.take())

	// Same world point, but the node moved so the local point differs.
	h := frontHit(a, math32.Vec3(0, 0, 0))
	h.LocalPoint = math32.Vec3(-0.1, 0, 0)
	fs.hits[fs.root] = []Hit{h}
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseMove A"}, rec.take())
}

func TestFrameNoEventsOverEmptySpace(t *testing.T) {
	d, _, _, rec := setup(t, "A")
	handle(t, d, frame(0, 0), frame(0.5, 0.5))
	assert.Empty(t, rec.take())
	assert.Nil(t, d.NodeUnderPointer())
}

func TestFrameLeaveBeforeEnter(t *testing.T) {
	d, fs, n, rec := setup(t, "A", "B")

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	rec.take()

	fs.point(n[1], math32.Vec3(1, 0, 0))
	handle(t, d, frame(0.5, 0))
	assert.Equal(t, []string{"MouseLeave A", "MouseEnter B"}, rec.take())
}

func TestFrameObservesNearestRegisteredAncestor(t *testing.T) {
	fs := newFakeScene()
	d := NewDispatcher(fs)

	group := NewGroup("group")
	inner := NewGroup("inner")
	leaf := NewMeshNode("leaf", NewQuadMesh(1, 1))
	fs.root.AddChild(group)
	group.AddChild(inner)
	inner.AddChild(leaf)

	d.RegisterNode(group)
	rec := &recorder{}
	rec.watch(t, d, group)

	fs.point(leaf, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter group"}, rec.take())

	// Registering a closer ancestor moves events to it.
	d.RegisterNode(inner)
	rec.watch(t, d, inner)
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseLeave group", "MouseEnter inner"}, rec.take())
}

func TestFrameHitWithoutObservedNode(t *testing.T) {
	d, fs, _, rec := setup(t, "A")
	stray := NewMeshNode("stray", NewQuadMesh(1, 1))
	fs.root.AddChild(stray)

	fs.point(stray, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	assert.Empty(t, rec.take())
	assert.Nil(t, d.NodeUnderPointer())
}

func TestFrameUsesPointerRay(t *testing.T) {
	d, fs, _, _ := setup(t, "A")
	handle(t, d, frame(0.25, -0.5))
	require.Len(t, fs.rays, 1)
	assert.Equal(t, math32.Vec3(0.25, -0.5, 10), fs.rays[0].Origin)
}

// --- Back faces ---

func TestBackFaceIgnored(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	d.SetIgnoreBackFaces(true)

	fs.hits[fs.root] = []Hit{backHit(n[0], math32.Vec3(0, 0, 0))}
	handle(t, d, frame(0, 0))
	assert.Empty(t, rec.take())
	assert.Nil(t, d.NodeUnderPointer())
}

func TestBackFaceSkippedForFrontFace(t *testing.T) {
	d, fs, n, rec := setup(t, "A", "B")
	d.SetIgnoreBackFaces(true)

	fs.hits[fs.root] = []Hit{
		backHit(n[0], math32.Vec3(0, 0, 1)),
		frontHit(n[1], math32.Vec3(0, 0, -1)),
	}
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter B"}, rec.take())
}

func TestBackFaceTakenWhenNotIgnoring(t *testing.T) {
	d, fs, n, rec := setup(t, "A")

	fs.hits[fs.root] = []Hit{backHit(n[0], math32.Vec3(0, 0, 0))}
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter A"}, rec.take())
}

// --- Picking roots ---

func TestPickingRootsInOrder(t *testing.T) {
	fs := newFakeScene()
	d := NewDispatcher(fs)
	r1, r2 := NewGroup("r1"), NewGroup("r2")
	a := NewMeshNode("A", NewQuadMesh(1, 1))
	b := NewMeshNode("B", NewQuadMesh(1, 1))
	r1.AddChild(a)
	r2.AddChild(b)
	d.RegisterNode(a)
	d.RegisterNode(b)
	rec := &recorder{}
	rec.watch(t, d, a, b)

	d.SetPickingRoots([]*Node{r1, r2})
	fs.hits[r2] = []Hit{frontHit(b, math32.Vec3(0, 0, 5))}
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter B"}, rec.take(), "empty first root falls through")
	assert.Equal(t, []*Node{r1, r2}, fs.roots)

	// First root wins even when a later root's hit is nearer.
	fs.hits[r1] = []Hit{frontHit(a, math32.Vec3(0, 0, 0))}
	fs.roots = nil
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseLeave B", "MouseEnter A"}, rec.take())
	assert.Equal(t, []*Node{r1}, fs.roots)
}

func TestPickingRootAllBackFacesFallsThrough(t *testing.T) {
	fs := newFakeScene()
	d := NewDispatcher(fs, WithIgnoreBackFaces(true))
	r1, r2 := NewGroup("r1"), NewGroup("r2")
	a := NewMeshNode("A", NewQuadMesh(1, 1))
	b := NewMeshNode("B", NewQuadMesh(1, 1))
	r1.AddChild(a)
	r2.AddChild(b)
	d.RegisterNode(a)
	d.RegisterNode(b)

	d.SetPickingRoots([]*Node{r1, r2})
	fs.hits[r1] = []Hit{backHit(a, math32.Vec3(0, 0, 0))}
	fs.hits[r2] = []Hit{frontHit(b, math32.Vec3(0, 0, 0))}
	handle(t, d, frame(0, 0))
	assert.Same(t, b, d.NodeUnderPointer())
}

func TestPickingRootsDefaultToSceneRoot(t *testing.T) {
	d, fs, _, _ := setup(t, "A")
	assert.Equal(t, []*Node{fs.root}, d.PickingRoots())

	other := NewGroup("other")
	d.SetPickingRoot(other)
	assert.Equal(t, []*Node{other}, d.PickingRoots())

	d.SetPickingRoots(nil)
	assert.Equal(t, []*Node{fs.root}, d.PickingRoots())
}

// --- Buttons, clicks ---

func TestClickSequence(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	rec.take()

	handle(t, d, press(MouseButtonLeft, 1.0), release(MouseButtonLeft, 1.05))
	assert.Equal(t, []string{"MouseDown A", "MouseUp A", "Click A"}, rec.take())

	handle(t, d, press(MouseButtonLeft, 1.1), release(MouseButtonLeft, 1.15))
	assert.Equal(t, []string{"MouseDown A", "MouseUp A", "Click A", "DoubleClick A"}, rec.take())
}

func TestTripleClickFiresDoubleClickAgain(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))

	for i := range 3 {
		at := 1 + float64(i)*0.1
		handle(t, d, press(MouseButtonLeft, at), release(MouseButtonLeft, at+0.02))
	}
	var doubles int
	for _, e := range rec.take() {
		if e == "DoubleClick A" {
			doubles++
		}
	}
	assert.Equal(t, 2, doubles)
}

func TestDoubleClickInterval(t *testing.T) {
	tests := []struct {
		name   string
		gap    float64
		double bool
	}{
		{"fast", 0.1, true},
		{"just under", 0.29, true},
		{"at limit", 0.3, false},
		{"slow", 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, fs, n, rec := setup(t, "A")
			fs.point(n[0], math32.Vec3(0, 0, 0))
			handle(t, d, frame(0, 0))

			handle(t, d, press(MouseButtonLeft, 1), release(MouseButtonLeft, 1))
			rec.take()
			handle(t, d, press(MouseButtonLeft, 1+tt.gap), release(MouseButtonLeft, 1+tt.gap))
			got := rec.take()
			assert.Equal(t, tt.double, len(got) == 4 && got[3] == "DoubleClick A", "events %v", got)
		})
	}
}

func TestDoubleClickIntervalOption(t *testing.T) {
	fs := newFakeScene()
	d := NewDispatcher(fs, WithDoubleClickInterval(1))
	a := NewMeshNode("A", NewQuadMesh(1, 1))
	fs.root.AddChild(a)
	d.RegisterNode(a)
	rec := &recorder{}
	rec.watch(t, d, a)

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0),
		press(MouseButtonLeft, 1), release(MouseButtonLeft, 1),
		press(MouseButtonLeft, 1.8), release(MouseButtonLeft, 1.8))
	assert.Contains(t, rec.take(), "DoubleClick A")
}

func TestDoubleClickRequiresSameNode(t *testing.T) {
	d, fs, n, rec := setup(t, "A", "B")

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1), release(MouseButtonLeft, 1))
	fs.point(n[1], math32.Vec3(1, 0, 0))
	handle(t, d, frame(1, 0))
	rec.take()

	handle(t, d, press(MouseButtonLeft, 1.1), release(MouseButtonLeft, 1.1))
	assert.Equal(t, []string{"MouseDown B", "MouseUp B", "Click B"}, rec.take())
}

func TestNoClickWhenReleasedOnOtherNode(t *testing.T) {
	d, fs, n, rec := setup(t, "A", "B")

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1))
	fs.point(n[1], math32.Vec3(1, 0, 0))
	handle(t, d, frame(1, 0), release(MouseButtonLeft, 1.1))

	assert.Equal(t, []string{
		"MouseEnter A", "MouseDown A",
		"MouseLeave A", "MouseEnter B", "MouseUp B",
	}, rec.take())
}

func TestReleaseOverNothingRaisesNothing(t *testing.T) {
	d, fs, n, rec := setup(t, "A")

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1))
	fs.clear()
	handle(t, d, frame(1, 1), release(MouseButtonLeft, 1.1))
	assert.Equal(t, []string{"MouseEnter A", "MouseDown A", "MouseLeave A"}, rec.take())
}

func TestClickTrackingPerButton(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	rec.take()

	// Right press, left release: no click for either button.
	handle(t, d, press(MouseButtonRight, 1), release(MouseButtonLeft, 1))
	assert.Equal(t, []string{"MouseDown A", "MouseUp A"}, rec.take())

	// Left click then right click in quick succession: no double click.
	handle(t, d,
		press(MouseButtonLeft, 2), release(MouseButtonLeft, 2),
		press(MouseButtonRight, 2.1), release(MouseButtonRight, 2.1))
	assert.NotContains(t, rec.take(), "DoubleClick A")
}

func TestPressOverNothingThenReleaseOnNode(t *testing.T) {
	d, fs, n, rec := setup(t, "A")

	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1))
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), release(MouseButtonLeft, 1.1))
	assert.Equal(t, []string{"MouseEnter A", "MouseUp A"}, rec.take())
}

func TestInvalidButton(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	rec.take()

	for _, typ := range []InputType{InputButtonPress, InputButtonRelease} {
		_, err := d.Handle(InputEvent{Type: typ, Button: MouseButton(7)})
		assert.ErrorIs(t, err, ErrInvalidButton)
	}
	assert.Empty(t, rec.take())
}

// --- Keyboard and wheel ---

func TestKeyEventsGoToKeyboardFocus(t *testing.T) {
	d, fs, n, rec := setup(t, "A", "B")

	handle(t, d, InputEvent{Type: InputKeyPress})
	assert.Empty(t, rec.take(), "no focus, no event")

	d.SetKeyboardFocus(n[1])
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	rec.take()

	handle(t, d, InputEvent{Type: InputKeyPress, Rune: 'x'}, InputEvent{Type: InputKeyRelease, Rune: 'x'})
	assert.Equal(t, []string{"KeyDown B", "KeyUp B"}, rec.take())
}

func TestScrollGoesToWheelFocus(t *testing.T) {
	d, _, n, rec := setup(t, "A")
	d.SetMouseWheelFocus(n[0])

	for _, dir := range []ScrollDirection{ScrollUp, ScrollDown, ScrollLeft, ScrollRight, ScrollNone} {
		handle(t, d, InputEvent{Type: InputScroll, Scroll: dir})
	}
	assert.Equal(t, []string{"MouseWheelUp A", "MouseWheelDown A"}, rec.take())
}

func TestKeyEventOnUnregisteredFocus(t *testing.T) {
	d, _, _, _ := setup(t, "A")
	d.SetKeyboardFocus(NewGroup("loose"))
	_, err := d.Handle(InputEvent{Type: InputKeyPress})
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestWheelEventOnUnregisteredFocus(t *testing.T) {
	d, _, _, _ := setup(t, "A")
	d.SetMouseWheelFocus(NewGroup("loose"))
	_, err := d.Handle(InputEvent{Type: InputScroll, Scroll: ScrollDown})
	assert.ErrorIs(t, err, ErrUnknownNode)
}

// --- Focus policies through the dispatcher ---

func TestMouseOverFocusFollowsPointer(t *testing.T) {
	d, fs, n, _ := setup(t, "A", "B")
	d.SetKeyboardFocusPolicy(NewMouseOverFocus)
	d.SetKeyboardFocus(n[1])

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	assert.Same(t, n[0], d.KeyboardFocus())
	assert.Nil(t, d.MouseWheelFocus(), "wheel slot stays manual")

	fs.clear()
	handle(t, d, frame(1, 1))
	assert.Same(t, n[0], d.KeyboardFocus(), "empty space keeps focus")
}

func TestMouseDownFocusOnlyOnPress(t *testing.T) {
	fs := newFakeScene()
	d := NewDispatcher(fs, WithMouseWheelFocusPolicy(NewMouseDownFocus))
	a := NewMeshNode("A", NewQuadMesh(1, 1))
	fs.root.AddChild(a)
	d.RegisterNode(a)

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d,
		frame(0, 0),
		release(MouseButtonLeft, 0),
		InputEvent{Type: InputKeyPress},
		InputEvent{Type: InputScroll, Scroll: ScrollUp})
	assert.Nil(t, d.MouseWheelFocus())

	handle(t, d, press(MouseButtonMiddle, 1))
	assert.Same(t, a, d.MouseWheelFocus())
}

func TestManualFocusNeverChanges(t *testing.T) {
	d, fs, n, _ := setup(t, "A", "B")
	d.SetKeyboardFocus(n[1])

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 0), release(MouseButtonLeft, 0))
	assert.Same(t, n[1], d.KeyboardFocus())
	assert.Nil(t, d.MouseWheelFocus())
}

func TestPolicySwapKeepsFocus(t *testing.T) {
	d, _, n, _ := setup(t, "A")
	d.SetKeyboardFocus(n[0])
	d.SetKeyboardFocusPolicy(NewMouseDownFocus)
	assert.Same(t, n[0], d.KeyboardFocus())
	assert.Equal(t, "mouse-down", d.KeyboardFocusPolicy().(*MouseDownFocus).String())
}

func TestFocusUpdatedAfterKeyDelivered(t *testing.T) {
	d, fs, n, rec := setup(t, "A", "B")
	d.SetKeyboardFocusPolicy(NewMouseOverFocus)
	d.SetKeyboardFocus(n[1])

	// The first frame over A moves focus, but only after the frame was
	// dispatched; the key that follows goes to A.
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), InputEvent{Type: InputKeyPress})
	assert.Equal(t, []string{"MouseEnter A", "KeyDown A"}, rec.take())
}

// --- Errors ---

func TestSceneQueryFailure(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	d.SetKeyboardFocusPolicy(NewMouseOverFocus)

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	rec.take()

	boom := errors.New("boom")
	fs.err = boom
	consumed, err := d.Handle(frame(0, 0))
	assert.False(t, consumed)
	assert.ErrorIs(t, err, ErrSceneQuery)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"MouseLeave A"}, rec.take())
	assert.Nil(t, d.NodeUnderPointer())
	assert.Same(t, n[0], d.KeyboardFocus())
	assert.Equal(t, uint64(1), d.Stats().QueryFailures)

	fs.err = nil
	handle(t, d, frame(0, 0))
	assert.Equal(t, []string{"MouseEnter A"}, rec.take())
}

func TestSceneQueryFailureStopsAtFailingRoot(t *testing.T) {
	fs := newFakeScene()
	d := NewDispatcher(fs)
	r1, r2 := NewGroup("r1"), NewGroup("r2")
	b := NewMeshNode("B", NewQuadMesh(1, 1))
	r2.AddChild(b)
	d.RegisterNode(b)
	d.SetPickingRoots([]*Node{r1, r2})

	fs.err = errors.New("boom")
	fs.errFor = r1
	fs.hits[r2] = []Hit{frontHit(b, math32.Vec3(0, 0, 0))}
	_, err := d.Handle(frame(0, 0))
	assert.ErrorIs(t, err, ErrSceneQuery)
	assert.Nil(t, d.NodeUnderPointer())
	assert.Equal(t, []*Node{r1}, fs.roots)
}

func TestSignalErrors(t *testing.T) {
	d, _, n, _ := setup(t, "A")

	_, err := d.Signal(NewGroup("loose"), EventClick)
	assert.ErrorIs(t, err, ErrUnknownNode)

	_, err = d.Signal(n[0], EventKind(200))
	assert.ErrorIs(t, err, ErrUnknownEventKind)

	_, err = d.SignalByName(n[0], "Bogus")
	assert.ErrorIs(t, err, ErrUnknownEventKind)

	sig, err := d.SignalByName(n[0], "MouseWheelDown")
	require.NoError(t, err)
	assert.Equal(t, EventMouseWheelDown, sig.Kind())
	assert.Same(t, n[0], sig.Node())
}

// --- Registration lifecycle ---

func TestUnregisterNodeClearsState(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	a := n[0]
	d.SetKeyboardFocus(a)
	d.SetMouseWheelFocus(a)

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1), release(MouseButtonLeft, 1))
	rec.take()

	require.True(t, d.UnregisterNode(a))
	assert.False(t, d.IsRegistered(a))
	assert.Nil(t, d.NodeUnderPointer())
	assert.Nil(t, d.KeyboardFocus())
	assert.Nil(t, d.MouseWheelFocus())
	assert.Empty(t, rec.take(), "no MouseLeave on unregister")

	// Still under the pointer but no longer observed.
	handle(t, d, frame(0, 0), InputEvent{Type: InputKeyPress})
	assert.Empty(t, rec.take())

	assert.False(t, d.UnregisterNode(a))
}

func TestReregisterAfterUnregisterForgetsClick(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	a := n[0]
	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1), release(MouseButtonLeft, 1))

	d.UnregisterNode(a)
	d.RegisterNode(a)
	rec.watch(t, d, a)
	rec.take()

	handle(t, d, frame(0, 0), press(MouseButtonLeft, 1.1), release(MouseButtonLeft, 1.1))
	assert.Equal(t, []string{"MouseEnter A", "MouseDown A", "MouseUp A", "Click A"}, rec.take())
}

func TestReregisterDropsSubscriptions(t *testing.T) {
	d, fs, n, rec := setup(t, "A")
	d.RegisterNode(n[0])

	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0))
	assert.Empty(t, rec.take())
}

// --- Consumption, hit record, store ---

func TestConsumesPerInputType(t *testing.T) {
	d, _, _, _ := setup(t, "A")
	for typ := InputFrame; typ < inputTypeCount; typ++ {
		consumed, _ := d.Handle(InputEvent{Type: typ})
		assert.False(t, consumed, "default for %s", typ)
	}

	d.SetConsumes(InputKeyPress, true)
	consumed, err := d.Handle(InputEvent{Type: InputKeyPress})
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, _ = d.Handle(InputEvent{Type: InputKeyRelease})
	assert.False(t, consumed)
}

func TestHitRecordKeptAfterMiss(t *testing.T) {
	d, fs, n, _ := setup(t, "A")
	p := math32.Vec3(0.5, 0.25, 0)
	fs.point(n[0], p)
	handle(t, d, frame(0, 0))
	assert.Equal(t, p, d.HitUnderPointer().Point)

	fs.clear()
	handle(t, d, frame(1, 1))
	assert.Equal(t, p, d.HitUnderPointer().Point)
}

func TestHandlerParams(t *testing.T) {
	d, fs, n, _ := setup(t, "A")
	var got HandlerParams
	_, err := d.Subscribe(n[0], EventMouseDown, func(p HandlerParams) { got = p })
	require.NoError(t, err)

	p := math32.Vec3(0.1, 0.2, 0)
	fs.point(n[0], p)
	ev := press(MouseButtonRight, 3)
	ev.Modifiers = ModShift
	handle(t, d, frame(0, 0), ev)

	assert.Same(t, n[0], got.Node)
	assert.Equal(t, MouseButtonRight, got.Event.Button)
	assert.Equal(t, ModShift, got.Event.Modifiers)
	assert.Equal(t, p, got.Hit.Point)
}

type sliceStore struct{ events []NodeEvent }

func (s *sliceStore) EmitEvent(e NodeEvent) { s.events = append(s.events, e) }

func TestEntityStoreReceivesRaisedEvents(t *testing.T) {
	fs := newFakeScene()
	store := &sliceStore{}
	d := NewDispatcher(fs, WithEntityStore(store))
	a := NewMeshNode("A", NewQuadMesh(1, 1))
	a.EntityID = 5
	fs.root.AddChild(a)
	d.RegisterNode(a)

	fs.point(a, math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 0))

	require.Len(t, store.events, 2)
	assert.Equal(t, EventMouseEnter, store.events[0].Kind)
	assert.Equal(t, EventMouseDown, store.events[1].Kind)
	assert.Equal(t, uint32(5), store.events[1].EntityID)
	assert.Equal(t, a.ID, store.events[1].NodeID)
}

func TestStatsCountRaisedEvents(t *testing.T) {
	d, fs, n, _ := setup(t, "A")
	fs.point(n[0], math32.Vec3(0, 0, 0))
	handle(t, d, frame(0, 0), press(MouseButtonLeft, 0), release(MouseButtonLeft, 0))

	st := d.Stats()
	assert.Equal(t, uint64(1), st.Raised[EventClick])
	assert.Equal(t, uint64(1), st.Events[InputButtonPress])
	assert.Equal(t, "raised 4 | MouseEnter 1 | MouseDown 1 | MouseUp 1 | Click 1 | query failures 0",
		formatStats(&d.stats))

	d.ResetStats()
	assert.Empty(t, d.Stats().Raised)
}
