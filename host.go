package guish

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenButtons maps MouseButton to the ebiten button it polls.
var ebitenButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
	MouseButtonRight:  ebiten.MouseButtonRight,
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// pollInput turns this tick's ebiten input state into host events: one
// Frame carrying the cursor position, then button, key and wheel events.
func (s *Scene) pollInput() []InputEvent {
	mx, my := ebiten.CursorPosition()
	s.pointerX, s.pointerY = float64(mx), float64(my)
	base := s.baseEvent(readModifiers())

	evs := s.eventBuf[:0]
	evs = append(evs, withType(base, InputFrame))

	for b, eb := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(eb) {
			ev := withType(base, InputButtonPress)
			ev.Button = MouseButton(b)
			evs = append(evs, ev)
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			ev := withType(base, InputButtonRelease)
			ev.Button = MouseButton(b)
			evs = append(evs, ev)
		}
	}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		evs = append(evs, keyEvent(base, InputKeyPress, k))
	}
	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		evs = append(evs, keyEvent(base, InputKeyRelease, k))
	}

	if dir := scrollDirection(ebiten.Wheel()); dir != ScrollNone {
		ev := withType(base, InputScroll)
		ev.Scroll = dir
		evs = append(evs, ev)
	}

	s.eventBuf = evs
	return evs
}

// baseEvent stamps the current pointer position and clock.
func (s *Scene) baseEvent(mods KeyModifiers) InputEvent {
	x, y := s.camera.ScreenToNormalized(s.pointerX, s.pointerY)
	return InputEvent{X: x, Y: y, Time: s.clock, Modifiers: mods}
}

func withType(ev InputEvent, t InputType) InputEvent {
	ev.Type = t
	return ev
}

func keyEvent(base InputEvent, t InputType, k ebiten.Key) InputEvent {
	ev := withType(base, t)
	ev.Key = k
	ev.Rune = keyRune(k, base.Modifiers)
	return ev
}

// scrollDirection picks the dominant wheel axis.
func scrollDirection(dx, dy float64) ScrollDirection {
	switch {
	case dy > 0:
		return ScrollUp
	case dy < 0:
		return ScrollDown
	case dx > 0:
		return ScrollRight
	case dx < 0:
		return ScrollLeft
	}
	return ScrollNone
}

// keyRune returns the character a key types on a US layout, or 0 for keys
// without one.
func keyRune(k ebiten.Key, mods KeyModifiers) rune {
	name := k.String()
	switch {
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		if mods&ModShift != 0 {
			return rune(name[0])
		}
		return rune(name[0] - 'A' + 'a')
	case len(name) == 6 && name[:5] == "Digit":
		return rune(name[5])
	case name == "Space":
		return ' '
	}
	return 0
}

// keyByName returns the ebiten key whose String() is name.
func keyByName(name string) (ebiten.Key, bool) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
