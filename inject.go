package guish

import "github.com/hajimehoshi/ebiten/v2"

// injectedEvent represents a single queued synthetic event. Screen
// coordinates are used (matching what a tester sees on screen) and
// converted to normalized coordinates via the camera, identical to real
// mouse input.
type injectedEvent struct {
	typ              InputType
	screenX, screenY float64
	button           MouseButton
	key              ebiten.Key
	scroll           ScrollDirection
	mods             KeyModifiers
}

// InjectMove queues a pointer move to the given screen coordinates.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedEvent{typ: InputFrame, screenX: x, screenY: y})
}

// InjectPress queues a button press at the given screen coordinates. The
// event is consumed on a later Update, one queued event per frame.
func (s *Scene) InjectPress(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, injectedEvent{
		typ: InputButtonPress, screenX: x, screenY: y, button: button,
	})
}

// InjectRelease queues a button release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, injectedEvent{
		typ: InputButtonRelease, screenX: x, screenY: y, button: button,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64, button MouseButton) {
	s.InjectPress(x, y, button)
	s.InjectRelease(x, y, button)
}

// InjectKey queues a key press and release at the current pointer
// position. Consumes two frames.
func (s *Scene) InjectKey(key ebiten.Key, mods KeyModifiers) {
	x, y := s.lastInjectedPointer()
	s.injectQueue = append(s.injectQueue,
		injectedEvent{typ: InputKeyPress, screenX: x, screenY: y, key: key, mods: mods},
		injectedEvent{typ: InputKeyRelease, screenX: x, screenY: y, key: key, mods: mods},
	)
}

// InjectScroll queues a wheel event at the current pointer position.
func (s *Scene) InjectScroll(dir ScrollDirection) {
	x, y := s.lastInjectedPointer()
	s.injectQueue = append(s.injectQueue, injectedEvent{typ: InputScroll, screenX: x, screenY: y, scroll: dir})
}

// lastInjectedPointer is where the pointer will be once the queue drains.
func (s *Scene) lastInjectedPointer() (float64, float64) {
	if n := len(s.injectQueue); n > 0 {
		last := s.injectQueue[n-1]
		return last.screenX, last.screenY
	}
	return s.pointerX, s.pointerY
}

// processInjectedInput pops one event from the inject queue and returns the
// host events for this frame: a Frame at the event's position, followed by
// the event itself unless it is a plain move. Real input is skipped while
// the queue is non-empty.
func (s *Scene) processInjectedInput() []InputEvent {
	if len(s.injectQueue) == 0 {
		return nil
	}
	ie := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.pointerX, s.pointerY = ie.screenX, ie.screenY
	base := s.baseEvent(ie.mods)

	evs := append(s.eventBuf[:0], withType(base, InputFrame))
	switch ie.typ {
	case InputButtonPress, InputButtonRelease:
		ev := withType(base, ie.typ)
		ev.Button = ie.button
		evs = append(evs, ev)
	case InputKeyPress, InputKeyRelease:
		evs = append(evs, keyEvent(base, ie.typ, ie.key))
	case InputScroll:
		ev := withType(base, InputScroll)
		ev.Scroll = ie.scroll
		evs = append(evs, ev)
	}
	s.eventBuf = evs
	return evs
}
