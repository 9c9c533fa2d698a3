package guish

import (
	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputType identifies a raw event delivered by the host.
type InputType uint8

const (
	InputFrame         InputType = iota // one per rendered frame, carries the pointer position
	InputButtonPress                    // mouse button pressed
	InputButtonRelease                  // mouse button released
	InputKeyPress                       // keyboard key pressed
	InputKeyRelease                     // keyboard key released
	InputScroll                         // mouse wheel scrolled

	inputTypeCount
)

func (t InputType) String() string {
	switch t {
	case InputFrame:
		return "Frame"
	case InputButtonPress:
		return "ButtonPress"
	case InputButtonRelease:
		return "ButtonRelease"
	case InputKeyPress:
		return "KeyPress"
	case InputKeyRelease:
		return "KeyRelease"
	case InputScroll:
		return "Scroll"
	}
	return "InputType(?)"
}

// InputEvent is one raw host event. Fields not meaningful for Type are zero.
type InputEvent struct {
	Type InputType

	// X and Y are the pointer position normalized to [-1, 1] over the
	// viewport, with Y pointing up.
	X, Y float32
	// Time is the host clock in seconds.
	Time float64

	Button MouseButton
	Key    ebiten.Key
	// Rune is the printable character for Key, or 0.
	Rune      rune
	Scroll    ScrollDirection
	Modifiers KeyModifiers
}

// HandlerParams is passed to every signal callback.
type HandlerParams struct {
	// Node is the node the event was raised on.
	Node *Node
	// Event is the raw host event that triggered the signal.
	Event InputEvent
	// Hit is the most recent successful pick. For keyboard and wheel
	// events it refers to the pointer, not the focused node.
	Hit Hit
}

// Handler is a signal callback.
type Handler func(HandlerParams)

// EntityStore is the interface for optional ECS integration.
// When set on a Dispatcher, every raised event is forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event NodeEvent)
}

// NodeEvent carries a raised event for the ECS bridge.
type NodeEvent struct {
	Kind     EventKind
	NodeID   uint32
	EntityID uint32
	Input    InputEvent
	// Point is the world-space pick point at the time of the event.
	Point math32.Vector3
}
