package guish

import "slices"

// --- Signal ---

type slot struct {
	id uint32
	fn Handler
}

// Signal is the callback list for one (node, event kind) pair. Callbacks
// run in the order they were connected.
type Signal struct {
	node   *Node
	kind   EventKind
	slots  []slot
	nextID uint32
}

// SignalHandle allows disconnecting a callback from its signal.
type SignalHandle struct {
	id  uint32
	sig *Signal
}

// Connect appends fn to the signal. Panics if fn is nil.
func (s *Signal) Connect(fn Handler) SignalHandle {
	if fn == nil {
		panic("guish: cannot connect nil handler")
	}
	s.nextID++
	s.slots = append(s.slots, slot{id: s.nextID, fn: fn})
	return SignalHandle{id: s.nextID, sig: s}
}

// Len returns the number of connected callbacks.
func (s *Signal) Len() int {
	return len(s.slots)
}

// Node returns the node this signal belongs to.
func (s *Signal) Node() *Node {
	return s.node
}

// Kind returns the event kind this signal carries.
func (s *Signal) Kind() EventKind {
	return s.kind
}

// emit calls every callback over a snapshot of the list, so callbacks may
// connect, disconnect or raise again while it runs.
func (s *Signal) emit(p HandlerParams) {
	switch len(s.slots) {
	case 0:
		return
	case 1:
		s.slots[0].fn(p)
		return
	}
	for _, sl := range slices.Clone(s.slots) {
		sl.fn(p)
	}
}

// Disconnect removes the callback from its signal. Calling it more than
// once, or on the zero handle, is a no-op.
func (h SignalHandle) Disconnect() {
	if h.sig == nil {
		return
	}
	s := h.sig
	for i := range s.slots {
		if s.slots[i].id == h.id {
			s.slots = slices.Delete(s.slots, i, i+1)
			return
		}
	}
}

// --- Registry ---

type nodeSignals struct {
	node    *Node
	signals [eventKindCount]*Signal
}

// Registry maps observed nodes to their signals. Nodes are looked up by
// their stable ID; the pointer is kept to confirm identity and to keep the
// node alive while it is observed.
type Registry struct {
	nodes map[uint32]*nodeSignals
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[uint32]*nodeSignals)}
}

// Register starts observing n, creating an empty signal for every event
// kind. Registering an already observed node drops all its callbacks.
// Panics if n is nil or disposed.
func (r *Registry) Register(n *Node) {
	if n == nil {
		panic("guish: cannot register nil node")
	}
	if n.disposed {
		panic("guish: cannot register disposed node")
	}
	ns := &nodeSignals{node: n}
	for i := range ns.signals {
		ns.signals[i] = &Signal{node: n, kind: EventKind(i)}
	}
	r.nodes[n.ID] = ns
}

// Unregister stops observing n. Returns false if n was not registered.
func (r *Registry) Unregister(n *Node) bool {
	if r.lookup(n) == nil {
		return false
	}
	delete(r.nodes, n.ID)
	return true
}

// IsRegistered reports whether n is observed.
func (r *Registry) IsRegistered(n *Node) bool {
	return r.lookup(n) != nil
}

// Len returns the number of observed nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

func (r *Registry) lookup(n *Node) *nodeSignals {
	if n == nil {
		return nil
	}
	ns := r.nodes[n.ID]
	if ns == nil || ns.node != n {
		return nil
	}
	return ns
}

// Signal returns the signal for (n, kind).
func (r *Registry) Signal(n *Node, kind EventKind) (*Signal, error) {
	ns := r.lookup(n)
	if ns == nil {
		return nil, unknownNodeError(n)
	}
	if !kind.Valid() {
		return nil, unknownKindError(kind.String())
	}
	return ns.signals[kind], nil
}

// SignalByName is like Signal but takes the event name, e.g. "Click".
func (r *Registry) SignalByName(n *Node, name string) (*Signal, error) {
	if r.lookup(n) == nil {
		return nil, unknownNodeError(n)
	}
	kind, err := ParseEventKind(name)
	if err != nil {
		return nil, err
	}
	return r.Signal(n, kind)
}

// Subscribe connects fn to the signal for (n, kind).
func (r *Registry) Subscribe(n *Node, kind EventKind, fn Handler) (SignalHandle, error) {
	sig, err := r.Signal(n, kind)
	if err != nil {
		return SignalHandle{}, err
	}
	return sig.Connect(fn), nil
}

// Raise invokes every callback for (n, kind) synchronously, in connection
// order.
func (r *Registry) Raise(n *Node, kind EventKind, p HandlerParams) error {
	sig, err := r.Signal(n, kind)
	if err != nil {
		return err
	}
	sig.emit(p)
	return nil
}

// ObservedNode walks path from its last element (nearest) towards the
// first (root) and returns the first registered node, or nil.
func (r *Registry) ObservedNode(path []*Node) *Node {
	for i := len(path) - 1; i >= 0; i-- {
		if r.lookup(path[i]) != nil {
			return path[i]
		}
	}
	return nil
}
