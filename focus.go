package guish

import "fmt"

// FocusSlot holds the node that receives keyboard or wheel events.
// A nil node means no focus.
type FocusSlot struct {
	node *Node
}

// Node returns the focused node, or nil.
func (s *FocusSlot) Node() *Node {
	return s.node
}

// Set moves focus to n (nil clears it).
func (s *FocusSlot) Set(n *Node) {
	s.node = n
}

// FocusPolicy decides whether focus moves in response to an input event.
// A policy writes only to the slot it was created for.
type FocusPolicy interface {
	UpdateFocus(ev InputEvent, nodeUnderPointer *Node)
}

// FocusPolicyFactory creates a policy bound to slot. Adding a policy
// means writing a factory.
type FocusPolicyFactory func(slot *FocusSlot) FocusPolicy

// ManualFocus never changes focus; only explicit calls to
// SetKeyboardFocus or SetMouseWheelFocus do.
type ManualFocus struct{}

// NewManualFocus is the FocusPolicyFactory for ManualFocus.
func NewManualFocus(*FocusSlot) FocusPolicy { return ManualFocus{} }

// UpdateFocus does nothing.
func (ManualFocus) UpdateFocus(InputEvent, *Node) {}

func (ManualFocus) String() string { return "manual" }

// MouseOverFocus makes focus follow the pointer: whenever a node is under
// the pointer, it gets focus. Moving over empty space keeps the old focus.
type MouseOverFocus struct {
	slot *FocusSlot
}

// NewMouseOverFocus is the FocusPolicyFactory for MouseOverFocus.
func NewMouseOverFocus(slot *FocusSlot) FocusPolicy { return &MouseOverFocus{slot: slot} }

// UpdateFocus moves focus to nodeUnderPointer if it is a node.
func (p *MouseOverFocus) UpdateFocus(_ InputEvent, nodeUnderPointer *Node) {
	if nodeUnderPointer != nil && nodeUnderPointer != p.slot.node {
		p.slot.node = nodeUnderPointer
	}
}

func (p *MouseOverFocus) String() string { return "mouse-over" }

// MouseDownFocus moves focus to the node under the pointer when a mouse
// button is pressed over it.
type MouseDownFocus struct {
	slot *FocusSlot
}

// NewMouseDownFocus is the FocusPolicyFactory for MouseDownFocus.
func NewMouseDownFocus(slot *FocusSlot) FocusPolicy { return &MouseDownFocus{slot: slot} }

// UpdateFocus reacts to ButtonPress events only.
func (p *MouseDownFocus) UpdateFocus(ev InputEvent, nodeUnderPointer *Node) {
	if ev.Type == InputButtonPress && nodeUnderPointer != nil {
		p.slot.node = nodeUnderPointer
	}
}

func (p *MouseDownFocus) String() string { return "mouse-down" }

// Focus policy names accepted by FocusPolicyByName and RunConfig.
const (
	FocusPolicyManual    = "manual"
	FocusPolicyMouseOver = "mouse-over"
	FocusPolicyMouseDown = "mouse-down"
)

// FocusPolicyByName returns the factory for a built-in policy name.
// An empty name selects the manual policy.
func FocusPolicyByName(name string) (FocusPolicyFactory, error) {
	switch name {
	case "", FocusPolicyManual:
		return NewManualFocus, nil
	case FocusPolicyMouseOver:
		return NewMouseOverFocus, nil
	case FocusPolicyMouseDown:
		return NewMouseDownFocus, nil
	}
	return nil, fmt.Errorf("guish: unknown focus policy %q", name)
}
