package ecs

import (
	"github.com/phanxgames/guish"

	"github.com/yohamta/donburi"
)

// NodeRef is the component linking an entity to the guish node it drives.
type NodeRef struct {
	Node *guish.Node
}

// NodeComponent holds a NodeRef on bound entities.
var NodeComponent = donburi.NewComponentType[NodeRef]()

// Bindings pairs guish nodes with Donburi entities so systems handling
// NodeEventType can get back to the entity an event belongs to.
type Bindings struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewBindings creates an empty binding table for world.
func NewBindings(world donburi.World) *Bindings {
	return &Bindings{world: world, entities: make(map[uint32]donburi.Entity)}
}

// Bind creates an entity with a NodeComponent pointing at n and stamps the
// entity ID on n, so every NodeEvent raised on n carries it. Binding a node
// twice returns the existing entity.
func (b *Bindings) Bind(n *guish.Node) donburi.Entity {
	if e, ok := b.entities[n.ID]; ok && b.world.Valid(e) {
		return e
	}
	e := b.world.Create(NodeComponent)
	NodeComponent.Set(b.world.Entry(e), &NodeRef{Node: n})
	n.EntityID = uint32(e.Id())
	b.entities[n.ID] = e
	return e
}

// Unbind removes n's entity from the world and clears n.EntityID.
func (b *Bindings) Unbind(n *guish.Node) {
	e, ok := b.entities[n.ID]
	if !ok {
		return
	}
	delete(b.entities, n.ID)
	if b.world.Valid(e) {
		b.world.Remove(e)
	}
	n.EntityID = 0
}

// Entry returns the entry of the entity bound to the node an event was
// raised on. ok is false if the node is unbound or the entity is gone.
func (b *Bindings) Entry(ev guish.NodeEvent) (entry *donburi.Entry, ok bool) {
	e, found := b.entities[ev.NodeID]
	if !found || !b.world.Valid(e) {
		return nil, false
	}
	return b.world.Entry(e), true
}
