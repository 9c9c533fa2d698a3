package guish

import (
	"image/color"
	"strconv"

	"cogentcore.org/core/math32"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	return math32.Clamp(v, 0, 1)
}

// Rect is an axis-aligned screen rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// EventKind identifies a node-scoped UI event. The set is closed.
type EventKind uint8

const (
	EventMouseEnter     EventKind = iota // pointer started hovering the node
	EventMouseLeave                      // pointer stopped hovering the node
	EventMouseMove                       // pointer moved while hovering the node
	EventMouseDown                       // button pressed over the node
	EventMouseUp                         // button released over the node
	EventClick                           // press and release over the same node
	EventDoubleClick                     // second click on the same node within the interval
	EventMouseWheelUp                    // wheel scrolled up while the node has wheel focus
	EventMouseWheelDown                  // wheel scrolled down while the node has wheel focus
	EventKeyDown                         // key pressed while the node has keyboard focus
	EventKeyUp                           // key released while the node has keyboard focus

	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	EventMouseEnter:     "MouseEnter",
	EventMouseLeave:     "MouseLeave",
	EventMouseMove:      "MouseMove",
	EventMouseDown:      "MouseDown",
	EventMouseUp:        "MouseUp",
	EventClick:          "Click",
	EventDoubleClick:    "DoubleClick",
	EventMouseWheelUp:   "MouseWheelUp",
	EventMouseWheelDown: "MouseWheelDown",
	EventKeyDown:        "KeyDown",
	EventKeyUp:          "KeyUp",
}

// EventKinds returns every event kind in declaration order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, eventKindCount)
	for i := range kinds {
		kinds[i] = EventKind(i)
	}
	return kinds
}

// Valid reports whether k is one of the defined event kinds.
func (k EventKind) Valid() bool {
	return k < eventKindCount
}

func (k EventKind) String() string {
	if !k.Valid() {
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
	return eventKindNames[k]
}

// ParseEventKind maps an event name such as "MouseEnter" to its kind.
func ParseEventKind(name string) (EventKind, error) {
	for i, n := range eventKindNames {
		if n == name {
			return EventKind(i), nil
		}
	}
	return 0, unknownKindError(name)
}

// MouseButton identifies one of the three supported mouse buttons.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonRight                     // secondary (right) mouse button

	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	}
	return "MouseButton(" + strconv.Itoa(int(b)) + ")"
}

// ScrollDirection is the direction reported by a Scroll host event.
type ScrollDirection uint8

const (
	ScrollNone  ScrollDirection = iota // no vertical motion (ignored)
	ScrollUp                           // wheel moved away from the user
	ScrollDown                         // wheel moved towards the user
	ScrollLeft                         // horizontal scroll (ignored)
	ScrollRight                        // horizontal scroll (ignored)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
