package guish

import (
	"errors"
	"fmt"
)

// Dispatch errors. They indicate a broken contract between the host, the
// scene adapter and the code that registers nodes, so they are always
// returned to the caller instead of being dropped. Match with errors.Is.
var (
	// ErrUnknownNode is returned when a signal is requested or raised for a
	// node that was never registered.
	ErrUnknownNode = errors.New("guish: unknown node")

	// ErrUnknownEventKind is returned for an event kind (or event name)
	// outside the fixed set.
	ErrUnknownEventKind = errors.New("guish: unknown event kind")

	// ErrInvalidButton is returned when the host delivers a button code
	// other than left, middle or right.
	ErrInvalidButton = errors.New("guish: invalid mouse button")

	// ErrSceneQuery wraps a failure reported by the scene adapter while
	// intersecting the pointer ray.
	ErrSceneQuery = errors.New("guish: scene query failed")
)

func unknownNodeError(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: <nil>", ErrUnknownNode)
	}
	return fmt.Errorf("%w: %q (id %d)", ErrUnknownNode, n.Name, n.ID)
}

func unknownKindError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEventKind, name)
}

func invalidButtonError(b MouseButton) error {
	return fmt.Errorf("%w: code %d", ErrInvalidButton, uint8(b))
}

func sceneQueryError(root *Node, err error) error {
	name := "<nil>"
	if root != nil {
		name = root.Name
	}
	return fmt.Errorf("%w: root %q: %w", ErrSceneQuery, name, err)
}
