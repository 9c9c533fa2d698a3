package guish

import (
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// errDisposedRoot is returned by Scene.Intersect for a disposed picking root.
var errDisposedRoot = errors.New("picking root is disposed")

// EventHandler receives host events. Handlers form a chain; a handler that
// reports the event as consumed stops it from reaching later handlers.
type EventHandler interface {
	Handle(ev InputEvent) (consumed bool, err error)
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ev InputEvent) (bool, error)

// Handle calls f(ev).
func (f EventHandlerFunc) Handle(ev InputEvent) (bool, error) { return f(ev) }

// Scene is the top-level object that owns the node tree, the camera, the
// dispatcher and the host side of input.
type Scene struct {
	root       *Node
	camera     *Camera
	dispatcher *Dispatcher
	handlers   []EventHandler
	logger     *slog.Logger
	debug      bool

	// ClearColor fills the screen before the scene is drawn.
	ClearColor Color
	// OnUpdate, if set, runs once per tick before input is delivered.
	OnUpdate func(dt float32)

	hud    *HUD
	tweens []*TweenGroup

	// Host state
	clock       float64
	injectQueue []injectedEvent
	testRunner  *TestRunner
	pointerX    float64
	pointerY    float64
	eventBuf    []InputEvent
	keyBuf      []ebiten.Key

	// Render state
	tris     []triangle
	vertices []ebiten.Vertex
	indices  []uint16
	lastDraw frameStats
}

// NewScene creates a scene with an empty root group, a camera covering a
// 640x480 viewport and a dispatcher configured by opts. The dispatcher
// picks through the scene and is the first handler in the chain.
func NewScene(opts ...DispatcherOption) *Scene {
	s := &Scene{
		root:       NewGroup("root"),
		camera:     newCamera(Rect{Width: 640, Height: 480}),
		ClearColor: Color{0.1, 0.1, 0.12, 1},
		hud:        &HUD{X: 8, Y: 8},
	}
	s.dispatcher = NewDispatcher(s, opts...)
	s.logger = s.dispatcher.logger
	s.handlers = []EventHandler{s.dispatcher}
	return s
}

// Root returns the scene's root group node.
func (s *Scene) Root() *Node { return s.root }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Dispatcher returns the event dispatcher.
func (s *Scene) Dispatcher() *Dispatcher { return s.dispatcher }

// HUD returns the text overlay.
func (s *Scene) HUD() *HUD { return s.hud }

// Clock returns the scene time in seconds, as stamped on host events.
func (s *Scene) Clock() float64 { return s.clock }

// AddEventHandler appends h to the handler chain, after the dispatcher.
func (s *Scene) AddEventHandler(h EventHandler) {
	s.handlers = append(s.handlers, h)
}

// AddTween runs g every tick until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and per-frame dispatch
// stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// --- SceneAdapter ---

// PointerRay implements SceneAdapter using the scene camera.
func (s *Scene) PointerRay(x, y float32) Ray {
	return s.camera.PointerRay(x, y)
}

// Intersect implements SceneAdapter with two-sided mesh picking.
func (s *Scene) Intersect(ray Ray, root *Node) ([]Hit, error) {
	if root == nil {
		return nil, nil
	}
	if root.IsDisposed() {
		return nil, errDisposedRoot
	}
	return IntersectNode(ray, root), nil
}

// SceneRoot implements SceneAdapter.
func (s *Scene) SceneRoot() *Node { return s.root }

// --- Update ---

// Update advances animations, refreshes transforms, then collects host
// events (polled from ebiten, or injected) and delivers them to the
// handler chain. Scene query failures are logged; any other dispatch error
// is returned.
func (s *Scene) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return s.tick(dt, (*Scene).pollInput)
}

// tick is Update with the input source factored out for tests.
func (s *Scene) tick(dt float32, poll func(*Scene) []InputEvent) error {
	s.clock += float64(dt)

	s.camera.update(dt)
	s.updateTweens(dt)
	s.hud.update(dt)
	if s.OnUpdate != nil {
		s.OnUpdate(dt)
	}

	// Refresh world transforms so rendering sees this frame's positions.
	updateWorldTransform(s.root, identityMatrix(), false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	var events []InputEvent
	if len(s.injectQueue) > 0 {
		events = s.processInjectedInput()
	} else if poll != nil {
		events = poll(s)
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	for _, ev := range events {
		if err := s.deliver(ev); err != nil {
			return err
		}
	}
	if s.debug {
		s.lastDraw.dispatchTime = time.Since(t0)
	}
	return nil
}

// deliver passes ev down the handler chain.
func (s *Scene) deliver(ev InputEvent) error {
	for _, h := range s.handlers {
		consumed, err := h.Handle(ev)
		if err != nil {
			if !errors.Is(err, ErrSceneQuery) {
				return err
			}
			s.logger.Warn("scene query failed", "error", err)
		}
		if consumed {
			return nil
		}
	}
	return nil
}

func (s *Scene) updateTweens(dt float32) {
	if len(s.tweens) == 0 {
		return
	}
	for _, g := range s.tweens {
		g.Update(dt)
	}
	s.tweens = slices.DeleteFunc(s.tweens, func(g *TweenGroup) bool { return g.Done })
}
