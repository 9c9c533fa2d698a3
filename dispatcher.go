package guish

import (
	"errors"
	"log/slog"
	"slices"

	"cogentcore.org/core/math32"
)

// DefaultDoubleClickInterval is the maximum time in seconds between two
// clicks on the same node for the second to also raise DoubleClick.
const DefaultDoubleClickInterval = 0.3

// SceneAdapter is what the dispatcher needs from the 3D engine.
type SceneAdapter interface {
	// PointerRay returns the world-space ray under the normalized pointer
	// position (x, y in [-1, 1], y up).
	PointerRay(x, y float32) Ray
	// Intersect returns the hits of ray against the subtree at root,
	// ordered front to back. Node identity must be stable across calls.
	Intersect(ray Ray, root *Node) ([]Hit, error)
	// SceneRoot is the default picking root.
	SceneRoot() *Node
}

// buttonState is the click bookkeeping for one mouse button.
type buttonState struct {
	mouseDown *Node
	click     *Node
	clickTime float64
}

// Dispatcher turns raw host input into node-scoped events. It is not safe
// for concurrent use; hosts that deliver input from several goroutines
// must serialize calls to Handle.
type Dispatcher struct {
	adapter  SceneAdapter
	registry *Registry
	logger   *slog.Logger
	store    EntityStore

	ignoreBackFaces     bool
	doubleClickInterval float64
	pickingRoots        []*Node
	consumes            [inputTypeCount]bool

	nodeUnderPointer *Node
	// pointUnderPointer is in the hit node's local space, so a node moving
	// under a still pointer raises MouseMove.
	pointUnderPointer math32.Vector3
	hitUnderPointer   Hit

	keyboardFocus    FocusSlot
	wheelFocus       FocusSlot
	keyboardPolicy   FocusPolicy
	wheelFocusPolicy FocusPolicy

	buttons [mouseButtonCount]buttonState

	stats dispatchStats
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithKeyboardFocusPolicy sets the initial keyboard focus policy.
func WithKeyboardFocusPolicy(f FocusPolicyFactory) DispatcherOption {
	return func(d *Dispatcher) { d.keyboardPolicy = f(&d.keyboardFocus) }
}

// WithMouseWheelFocusPolicy sets the initial mouse wheel focus policy.
func WithMouseWheelFocusPolicy(f FocusPolicyFactory) DispatcherOption {
	return func(d *Dispatcher) { d.wheelFocusPolicy = f(&d.wheelFocus) }
}

// WithLogger sets the logger used for dispatch tracing and, on a Scene, for
// scene query warnings. Without it slog.Default() is used.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithDoubleClickInterval overrides DefaultDoubleClickInterval.
func WithDoubleClickInterval(seconds float64) DispatcherOption {
	return func(d *Dispatcher) { d.doubleClickInterval = seconds }
}

// WithIgnoreBackFaces enables back-face skipping when picking.
func WithIgnoreBackFaces(ignore bool) DispatcherOption {
	return func(d *Dispatcher) { d.ignoreBackFaces = ignore }
}

// WithEntityStore forwards every raised event to store.
func WithEntityStore(store EntityStore) DispatcherOption {
	return func(d *Dispatcher) { d.store = store }
}

// NewDispatcher creates a dispatcher picking through adapter. Both focus
// policies default to manual.
func NewDispatcher(adapter SceneAdapter, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		adapter:             adapter,
		registry:            NewRegistry(),
		logger:              slog.Default(),
		doubleClickInterval: DefaultDoubleClickInterval,
	}
	for i := range d.buttons {
		d.buttons[i].clickTime = -1
	}
	d.keyboardPolicy = NewManualFocus(&d.keyboardFocus)
	d.wheelFocusPolicy = NewManualFocus(&d.wheelFocus)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// --- Registration ---

// RegisterNode makes n observable. Re-registering drops its callbacks.
func (d *Dispatcher) RegisterNode(n *Node) {
	d.registry.Register(n)
}

// UnregisterNode stops observing n and forgets every reference the
// dispatcher holds to it: pointer hover, focus and click tracking. No
// MouseLeave is raised. Returns false if n was not registered.
func (d *Dispatcher) UnregisterNode(n *Node) bool {
	if !d.registry.Unregister(n) {
		return false
	}
	if d.nodeUnderPointer == n {
		d.nodeUnderPointer = nil
		d.pointUnderPointer = math32.Vector3{}
	}
	if d.keyboardFocus.node == n {
		d.keyboardFocus.node = nil
	}
	if d.wheelFocus.node == n {
		d.wheelFocus.node = nil
	}
	for i := range d.buttons {
		b := &d.buttons[i]
		if b.mouseDown == n {
			b.mouseDown = nil
		}
		if b.click == n {
			b.click = nil
			b.clickTime = -1
		}
	}
	return true
}

// IsRegistered reports whether n is observed.
func (d *Dispatcher) IsRegistered(n *Node) bool {
	return d.registry.IsRegistered(n)
}

// Signal returns the signal of kind for n.
func (d *Dispatcher) Signal(n *Node, kind EventKind) (*Signal, error) {
	return d.registry.Signal(n, kind)
}

// SignalByName returns the signal for n by event name, e.g. "MouseEnter".
func (d *Dispatcher) SignalByName(n *Node, name string) (*Signal, error) {
	return d.registry.SignalByName(n, name)
}

// Subscribe connects fn to the signal of kind for n.
func (d *Dispatcher) Subscribe(n *Node, kind EventKind, fn Handler) (SignalHandle, error) {
	return d.registry.Subscribe(n, kind, fn)
}

// --- Focus ---

// SetKeyboardFocus gives keyboard focus to n (nil clears it).
func (d *Dispatcher) SetKeyboardFocus(n *Node) { d.keyboardFocus.Set(n) }

// SetMouseWheelFocus gives mouse wheel focus to n (nil clears it).
func (d *Dispatcher) SetMouseWheelFocus(n *Node) { d.wheelFocus.Set(n) }

// KeyboardFocus returns the node with keyboard focus, or nil.
func (d *Dispatcher) KeyboardFocus() *Node { return d.keyboardFocus.Node() }

// MouseWheelFocus returns the node with mouse wheel focus, or nil.
func (d *Dispatcher) MouseWheelFocus() *Node { return d.wheelFocus.Node() }

// SetKeyboardFocusPolicy replaces the keyboard focus policy. The current
// focus is kept.
func (d *Dispatcher) SetKeyboardFocusPolicy(f FocusPolicyFactory) {
	d.keyboardPolicy = f(&d.keyboardFocus)
}

// SetMouseWheelFocusPolicy replaces the mouse wheel focus policy. The
// current focus is kept.
func (d *Dispatcher) SetMouseWheelFocusPolicy(f FocusPolicyFactory) {
	d.wheelFocusPolicy = f(&d.wheelFocus)
}

// KeyboardFocusPolicy returns the active keyboard focus policy.
func (d *Dispatcher) KeyboardFocusPolicy() FocusPolicy { return d.keyboardPolicy }

// MouseWheelFocusPolicy returns the active mouse wheel focus policy.
func (d *Dispatcher) MouseWheelFocusPolicy() FocusPolicy { return d.wheelFocusPolicy }

// --- Picking configuration ---

// SetPickingRoots sets the subtrees searched for the node under the
// pointer, in order. The first root with a usable hit wins. An empty list
// restores the default, the adapter's scene root.
func (d *Dispatcher) SetPickingRoots(roots []*Node) {
	d.pickingRoots = slices.Clone(roots)
}

// SetPickingRoot is SetPickingRoots with a single root.
func (d *Dispatcher) SetPickingRoot(root *Node) {
	d.SetPickingRoots([]*Node{root})
}

// PickingRoots returns the roots used for the next frame.
func (d *Dispatcher) PickingRoots() []*Node {
	if len(d.pickingRoots) == 0 {
		return []*Node{d.adapter.SceneRoot()}
	}
	return d.pickingRoots
}

// SetIgnoreBackFaces controls whether back-facing hits are skipped.
func (d *Dispatcher) SetIgnoreBackFaces(ignore bool) { d.ignoreBackFaces = ignore }

// SetConsumes sets what Handle reports as "consumed" for events of type t,
// so a host can stop passing them down its handler chain. All types
// default to false.
func (d *Dispatcher) SetConsumes(t InputType, consumed bool) {
	if t < inputTypeCount {
		d.consumes[t] = consumed
	}
}

// NodeUnderPointer returns the observed node under the pointer, or nil.
func (d *Dispatcher) NodeUnderPointer() *Node { return d.nodeUnderPointer }

// HitUnderPointer returns the most recent successful pick.
func (d *Dispatcher) HitUnderPointer() Hit { return d.hitUnderPointer }

// --- Dispatch ---

// Handle processes one host event. Errors from the registry or an invalid
// button abort the event. A scene query failure only clears the node under
// the pointer for this frame; the event is still completed and the error
// (matching ErrSceneQuery) is returned.
func (d *Dispatcher) Handle(ev InputEvent) (bool, error) {
	if ev.Type < inputTypeCount {
		d.stats.events[ev.Type]++
	}
	var err error
	switch ev.Type {
	case InputFrame:
		err = d.handleFrame(ev)
	case InputButtonPress:
		err = d.handlePress(ev)
	case InputButtonRelease:
		err = d.handleRelease(ev)
	case InputKeyPress:
		err = d.raiseOn(d.keyboardFocus.node, EventKeyDown, ev)
	case InputKeyRelease:
		err = d.raiseOn(d.keyboardFocus.node, EventKeyUp, ev)
	case InputScroll:
		err = d.handleScroll(ev)
	}
	if err != nil && !errors.Is(err, ErrSceneQuery) {
		return false, err
	}

	d.keyboardPolicy.UpdateFocus(ev, d.nodeUnderPointer)
	d.wheelFocusPolicy.UpdateFocus(ev, d.nodeUnderPointer)

	var consumed bool
	if ev.Type < inputTypeCount {
		consumed = d.consumes[ev.Type]
	}
	return consumed, err
}

func (d *Dispatcher) handleFrame(ev InputEvent) error {
	ray := d.adapter.PointerRay(ev.X, ev.Y)

	var (
		current  *Node
		point    math32.Vector3
		queryErr error
	)
	for _, root := range d.PickingRoots() {
		hits, err := d.adapter.Intersect(ray, root)
		if err != nil {
			queryErr = sceneQueryError(root, err)
			d.stats.queryFailures++
			break
		}
		hit, ok := d.selectHit(ray, hits)
		if !ok {
			continue
		}
		current = d.registry.ObservedNode(hit.Path)
		if globalDebug && current != nil && !d.registry.IsRegistered(current) {
			panic("guish debug: observed node is not registered")
		}
		point = hit.LocalPoint
		d.hitUnderPointer = hit
		break
	}

	prev, prevPoint := d.nodeUnderPointer, d.pointUnderPointer
	d.nodeUnderPointer, d.pointUnderPointer = current, point

	if current == prev {
		if prev != nil && point != prevPoint {
			if err := d.raise(current, EventMouseMove, ev); err != nil {
				return err
			}
		}
		return queryErr
	}
	if err := d.raiseOn(prev, EventMouseLeave, ev); err != nil {
		return err
	}
	if err := d.raiseOn(current, EventMouseEnter, ev); err != nil {
		return err
	}
	return queryErr
}

// selectHit returns the first hit, or with back-face ignoring the first
// front-facing one.
func (d *Dispatcher) selectHit(ray Ray, hits []Hit) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	if !d.ignoreBackFaces {
		return hits[0], true
	}
	for _, h := range hits {
		if h.FrontFacing(ray) {
			return h, true
		}
	}
	return Hit{}, false
}

func (d *Dispatcher) handlePress(ev InputEvent) error {
	if ev.Button >= mouseButtonCount {
		return invalidButtonError(ev.Button)
	}
	if err := d.raiseOn(d.nodeUnderPointer, EventMouseDown, ev); err != nil {
		return err
	}
	d.buttons[ev.Button].mouseDown = d.nodeUnderPointer
	return nil
}

func (d *Dispatcher) handleRelease(ev InputEvent) error {
	if ev.Button >= mouseButtonCount {
		return invalidButtonError(ev.Button)
	}
	n := d.nodeUnderPointer
	if n == nil {
		return nil
	}
	if err := d.raise(n, EventMouseUp, ev); err != nil {
		return err
	}

	b := &d.buttons[ev.Button]
	if n != b.mouseDown {
		return nil
	}
	if err := d.raise(n, EventClick, ev); err != nil {
		return err
	}
	if ev.Time-b.clickTime < d.doubleClickInterval && n == b.click {
		if err := d.raise(n, EventDoubleClick, ev); err != nil {
			return err
		}
	}
	b.click = n
	b.clickTime = ev.Time
	return nil
}

func (d *Dispatcher) handleScroll(ev InputEvent) error {
	switch ev.Scroll {
	case ScrollUp:
		return d.raiseOn(d.wheelFocus.node, EventMouseWheelUp, ev)
	case ScrollDown:
		return d.raiseOn(d.wheelFocus.node, EventMouseWheelDown, ev)
	}
	return nil
}

// raiseOn raises kind on n, skipping nil nodes.
func (d *Dispatcher) raiseOn(n *Node, kind EventKind, ev InputEvent) error {
	if n == nil {
		return nil
	}
	return d.raise(n, kind, ev)
}

func (d *Dispatcher) raise(n *Node, kind EventKind, ev InputEvent) error {
	d.logger.Debug("raise", "event", kind, "node", n.Name, "id", n.ID)
	if err := d.registry.Raise(n, kind, HandlerParams{Node: n, Event: ev, Hit: d.hitUnderPointer}); err != nil {
		return err
	}
	d.stats.raised[kind]++
	if d.store != nil {
		d.store.EmitEvent(NodeEvent{
			Kind:     kind,
			NodeID:   n.ID,
			EntityID: n.EntityID,
			Input:    ev,
			Point:    d.hitUnderPointer.Point,
		})
	}
	return nil
}
